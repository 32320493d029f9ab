package hashed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/poiesic/symptomit/ai"
)

// DefaultDimension is the vector width used when none is configured.
const DefaultDimension = 256

// Embedder is a deterministic hashed bag-of-words embedder. It requires no
// trained model or network access: each token is hashed into one of a fixed
// number of buckets and the accumulated counts are L2-normalized.
//
// Identical text always yields a bit-identical vector. The type holds no
// mutable state, so it is safe for concurrent use.
type Embedder struct {
	dim int
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder creates a hashed embedder producing vectors of dim buckets.
// Non-positive dims fall back to DefaultDimension.
func NewEmbedder(dim int) *Embedder {
	if dim < 1 {
		dim = DefaultDimension
	}
	return &Embedder{dim: dim}
}

// Dimension returns the width of produced vectors.
func (e *Embedder) Dimension() int {
	return e.dim
}

// EmbedText generates a deterministic embedding for a single text.
func (e *Embedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)
	for _, tok := range splitAlphanumeric(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[h.Sum32()%uint32(e.dim)] += 1.0
	}
	return normalize(vec), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// splitAlphanumeric splits text on runs of non-alphanumeric characters.
func splitAlphanumeric(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalize scales vec to unit length in place. An all-zero vector is
// returned unchanged: the norm is treated as 1 to avoid division by zero.
func normalize(vec []float32) []float32 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vec
	}
	norm := float32(math.Sqrt(sumSquares))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
