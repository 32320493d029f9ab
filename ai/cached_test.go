package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder is a minimal Embedder stub that counts inner calls.
type countingEmbedder struct {
	calls int
}

func (c *countingEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	c.calls++
	return []float32{float32(len(text)), 1}, nil
}

func (c *countingEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	c.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func TestCachedEmbedder_ReadThrough(t *testing.T) {
	inner := &countingEmbedder{}
	cached, err := NewCachedEmbedder(inner, 8)
	require.NoError(t, err)

	ctx := context.Background()

	first, err := cached.EmbedText(ctx, "runny nose")
	require.NoError(t, err)
	second, err := cached.EmbedText(ctx, "runny nose")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second lookup should be served from cache")
}

func TestCachedEmbedder_BatchPartialHit(t *testing.T) {
	inner := &countingEmbedder{}
	cached, err := NewCachedEmbedder(inner, 8)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = cached.EmbedText(ctx, "fever")
	require.NoError(t, err)

	vecs, err := cached.EmbedTexts(ctx, []string{"fever", "chills", "fever"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	assert.Equal(t, vecs[0], vecs[2])
	assert.Equal(t, 2, inner.calls, "one EmbedText plus one batch for the misses")
}

func TestCachedEmbedder_Eviction(t *testing.T) {
	inner := &countingEmbedder{}
	cached, err := NewCachedEmbedder(inner, 1)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = cached.EmbedText(ctx, "first")
	require.NoError(t, err)
	_, err = cached.EmbedText(ctx, "second")
	require.NoError(t, err)
	_, err = cached.EmbedText(ctx, "first")
	require.NoError(t, err)

	assert.Equal(t, 3, inner.calls, "capacity 1 evicts the older entry")
}
