package hashed

import (
	"log/slog"

	"github.com/poiesic/symptomit/ai"
)

// Provider implements ai.Provider using the hashed fallback embedder.
// It is always available and never fails to construct.
type Provider struct {
	embedder *Embedder
	logger   *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a fallback provider with vectors of dim buckets.
//
// Returns ai.Provider interface for consistency with production constructors.
func NewProvider(dim int) ai.Provider {
	return &Provider{
		embedder: NewEmbedder(dim),
		logger:   slog.Default().With("component", "hashed-provider"),
	}
}

// Embedder returns the hashed embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is a no-op: the hashed embedder holds no resources.
func (p *Provider) Close() error {
	return nil
}
