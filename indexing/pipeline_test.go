package indexing

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/symptomit/ai/hashed"
	"github.com/poiesic/symptomit/ai/mock"
	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/normalize"
	"github.com/poiesic/symptomit/storage/badger"
)

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, *badger.Backend) {
	t.Helper()
	conceptRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	normalizer, err := normalize.NewNormalizer()
	require.NoError(t, err)

	pipeline, err := NewPipeline(conceptRepo, hashed.NewEmbedder(64), normalizer, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)
	return pipeline, backend
}

func demoConcepts() []*core.Concept {
	return []*core.Concept{
		{Label: "Common Cold", Description: "runny nose, sneezing, mild fatigue"},
		{Label: "Asthma", Description: "wheezing, shortness of breath"},
		{Label: "Knee Pain", Description: ""},
	}
}

func TestNewPipeline_Validation(t *testing.T) {
	conceptRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	normalizer, err := normalize.NewNormalizer()
	require.NoError(t, err)
	embedder := hashed.NewEmbedder(64)

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil, embedder, normalizer)
		assert.ErrorIs(t, err, ErrConceptRepositoryRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewPipeline(conceptRepo, nil, normalizer)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("nil normalizer", func(t *testing.T) {
		_, err := NewPipeline(conceptRepo, embedder, nil)
		assert.ErrorIs(t, err, ErrNormalizerRequired)
	})

	t.Run("options", func(t *testing.T) {
		pipeline, err := NewPipeline(conceptRepo, embedder, normalizer,
			WithPoolSize(2), WithBatchSize(8), WithLogger(slog.Default()))
		require.NoError(t, err)
		pipeline.Release()
	})
}

func TestRun_PersistsVectors(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	ctx := context.Background()

	require.NoError(t, pipeline.Run(ctx, demoConcepts()))

	stored, err := pipeline.conceptRepository.GetAllConcepts(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, concept := range stored {
		assert.NotZero(t, concept.Id)
		assert.Len(t, concept.Vector, 64, "concept %q", concept.Label)
	}
}

func TestRun_EmptyDescriptionUsesLabel(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	ctx := context.Background()

	require.NoError(t, pipeline.Run(ctx, []*core.Concept{{Label: "Knee Pain"}}))

	concept, err := pipeline.conceptRepository.FindConceptByLabel(ctx, "knee pain")
	require.NoError(t, err)
	require.NotNil(t, concept)
	assert.Len(t, concept.Vector, 64)
}

func TestRun_EmptyInput(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	assert.NoError(t, pipeline.Run(context.Background(), nil))
}

func TestRun_SmallBatches(t *testing.T) {
	pipeline, _ := newTestPipeline(t, WithBatchSize(1), WithPoolSize(2))
	ctx := context.Background()

	require.NoError(t, pipeline.Run(ctx, demoConcepts()))

	stored, err := pipeline.conceptRepository.GetAllConcepts(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestRun_Deterministic(t *testing.T) {
	ctx := context.Background()

	vectorsFor := func(t *testing.T) map[string][]float32 {
		pipeline, _ := newTestPipeline(t)
		require.NoError(t, pipeline.Run(ctx, demoConcepts()))
		stored, err := pipeline.conceptRepository.GetAllConcepts(ctx)
		require.NoError(t, err)
		out := make(map[string][]float32, len(stored))
		for _, concept := range stored {
			out[concept.Label] = concept.Vector
		}
		return out
	}

	first := vectorsFor(t)
	second := vectorsFor(t)
	assert.Equal(t, first, second)
}

func TestRun_EmbedderFailure(t *testing.T) {
	conceptRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	normalizer, err := normalize.NewNormalizer()
	require.NoError(t, err)

	embedFailed := errors.New("embed failed")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, embedFailed
	}

	pipeline, err := NewPipeline(conceptRepo, embedder, normalizer)
	require.NoError(t, err)
	defer pipeline.Release()

	err = pipeline.Run(context.Background(), demoConcepts())
	assert.ErrorIs(t, err, embedFailed)

	stored, err := conceptRepo.GetAllConcepts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestReindex(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	ctx := context.Background()

	concepts := demoConcepts()
	for i := range concepts {
		concepts[i].Vector = nil
	}
	_, err := pipeline.conceptRepository.PutConcepts(ctx, concepts...)
	require.NoError(t, err)

	require.NoError(t, pipeline.Reindex(ctx))

	stored, err := pipeline.conceptRepository.GetAllConcepts(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, concept := range stored {
		assert.Len(t, concept.Vector, 64)
	}
}
