package similarity

import (
	"context"
	"log/slog"

	"github.com/poiesic/symptomit/ai"
	"github.com/poiesic/symptomit/core"
)

// Scorer combines lexical and semantic similarity into a hybrid score.
// Embeddings are requested through the configured embedder, which callers
// normally wrap in an ai.CachedEmbedder so repeated comparisons against the
// same vocabulary stay cheap.
type Scorer struct {
	embedder ai.Embedder
	lexical  LexicalScorer
	logger   *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithLexicalScorer selects the lexical similarity strategy.
// Default is JaroWinkler.
func WithLexicalScorer(lexical LexicalScorer) Option {
	return func(s *Scorer) error {
		if lexical == nil {
			lexical = &JaroWinkler{}
		}
		s.lexical = lexical
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a hybrid scorer backed by the given embedder.
func NewScorer(embedder ai.Embedder, opts ...Option) (*Scorer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Scorer{
		embedder: embedder,
		lexical:  &JaroWinkler{},
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Lexical returns the lexical ratio between a and b in [0,1].
func (s *Scorer) Lexical(a, b string) float64 {
	return core.Clamp01(s.lexical.Ratio(a, b))
}

// Semantic returns the clamped cosine similarity between the embeddings of a
// and b. Negative cosine is treated as 0 so ranking stays in [0,1].
// Embedding failures degrade to a 0 score rather than propagating.
func (s *Scorer) Semantic(ctx context.Context, a, b string) float64 {
	va, err := s.embedder.EmbedText(ctx, a)
	if err != nil {
		s.logger.Warn("embedding failed, semantic score degraded to 0", "err", err)
		return 0.0
	}
	vb, err := s.embedder.EmbedText(ctx, b)
	if err != nil {
		s.logger.Warn("embedding failed, semantic score degraded to 0", "err", err)
		return 0.0
	}
	return core.Clamp01(Cosine(va, vb))
}

// Hybrid blends lexical and semantic similarity as wLex*lexical +
// wSem*semantic. The weights are not renormalized; call sites choose weights
// summing to 1 by convention.
func (s *Scorer) Hybrid(ctx context.Context, a, b string, wLex, wSem float64) float64 {
	lex := s.Lexical(a, b)
	sem := s.Semantic(ctx, a, b)
	return core.Clamp01(wLex*lex + wSem*sem)
}

// BestMatch scans the vocabulary linearly and returns the term with the
// strictly greatest hybrid score against candidate, together with that score.
// Ties keep the first term in iteration order, so results are deterministic
// for a fixed vocabulary ordering. An empty vocabulary yields ("", -1).
func (s *Scorer) BestMatch(ctx context.Context, candidate string, vocabulary []string, wLex, wSem float64) (string, float64) {
	bestTerm := ""
	bestScore := -1.0
	for _, term := range vocabulary {
		score := s.Hybrid(ctx, candidate, term, wLex, wSem)
		if score > bestScore {
			bestScore = score
			bestTerm = term
		}
	}
	return bestTerm, bestScore
}
