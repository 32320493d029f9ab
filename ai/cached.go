package ai

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedEmbedder decorates an Embedder with a bounded read-through cache
// keyed by exact input text. Values for a key are deterministic, so
// last-writer-wins under concurrent insertion is acceptable.
//
// The cache is an optimization only; correctness never depends on it.
type CachedEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder wraps inner with an LRU cache of the given capacity.
func NewCachedEmbedder(inner Embedder, capacity int) (*CachedEmbedder, error) {
	if capacity < 1 {
		capacity = 1
	}
	cache, err := lru.New[string, []float32](capacity)
	if err != nil {
		return nil, err
	}
	return &CachedEmbedder{
		inner: inner,
		cache: cache,
	}, nil
}

// EmbedText returns the cached vector for text, embedding on a miss.
func (c *CachedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		return vec, nil
	}
	vec, err := c.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, vec)
	return vec, nil
}

// EmbedTexts embeds a batch, serving individual texts from cache where
// possible and delegating the misses in one call.
func (c *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	missing := make([]string, 0, len(texts))
	missingAt := make([]int, 0, len(texts))

	for i, text := range texts {
		if vec, ok := c.cache.Get(text); ok {
			out[i] = vec
			continue
		}
		missing = append(missing, text)
		missingAt = append(missingAt, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	embedded, err := c.inner.EmbedTexts(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missing) {
		return nil, ErrEmbeddingMismatch
	}
	for i, vec := range embedded {
		c.cache.Add(missing[i], vec)
		out[missingAt[i]] = vec
	}
	return out, nil
}
