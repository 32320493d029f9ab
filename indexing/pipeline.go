package indexing

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/symptomit/ai"
	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/normalize"
	"github.com/poiesic/symptomit/storage"
)

const defaultBatchSize = 32

// Pipeline precomputes embedding vectors for knowledge-base concepts and
// persists them, so query-time matching never embeds candidate text.
// Batches are embedded concurrently on a worker pool.
type Pipeline struct {
	conceptRepository storage.ConceptRepository
	embedder          ai.Embedder
	normalizer        *normalize.Normalizer
	pool              *ants.Pool
	batchSize         int
	logger            *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many concepts are embedded per worker task.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an indexing pipeline.
func NewPipeline(
	conceptRepository storage.ConceptRepository,
	embedder ai.Embedder,
	normalizer *normalize.Normalizer,
	opts ...Option,
) (*Pipeline, error) {
	if conceptRepository == nil {
		return nil, ErrConceptRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		conceptRepository: conceptRepository,
		embedder:          embedder,
		normalizer:        normalizer,
		pool:              pool,
		batchSize:         defaultBatchSize,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "indexing")
	return p, nil
}

// Run embeds the given concepts and persists them with vectors populated.
// Concepts without description text are embedded from their label. Batch
// failures are collected and joined; one failed batch does not stop the rest.
func (p *Pipeline) Run(ctx context.Context, concepts []*core.Concept) error {
	if len(concepts) == 0 {
		return nil
	}
	p.logger.Info("indexing concepts", "concepts", len(concepts), "batch_size", p.batchSize)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	}

	for start := 0; start < len(concepts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(concepts) {
			end = len(concepts)
		}
		batch := concepts[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.indexBatch(ctx, batch); err != nil {
				p.logger.Error("error indexing batch", "err", err)
				fail(err)
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Reindex re-embeds every stored concept, picking up embedder or normalizer
// changes.
func (p *Pipeline) Reindex(ctx context.Context) error {
	concepts, err := p.conceptRepository.GetAllConcepts(ctx)
	if err != nil {
		return err
	}
	return p.Run(ctx, concepts)
}

// indexBatch embeds one batch and persists the updated concepts.
func (p *Pipeline) indexBatch(ctx context.Context, batch []*core.Concept) error {
	texts := make([]string, len(batch))
	for i, concept := range batch {
		source := concept.Description
		if source == "" {
			source = concept.Label
		}
		normText, _ := p.normalizer.Normalize(source)
		if normText == "" {
			normText = source
		}
		texts[i] = normText
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return ErrEmbeddingMismatch
	}

	for i := range batch {
		batch[i].Vector = vectors[i]
	}
	_, err = p.conceptRepository.PutConcepts(ctx, batch...)
	return err
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
