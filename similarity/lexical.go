package similarity

import (
	"github.com/xrash/smetrics"

	"github.com/poiesic/symptomit/core"
)

// LexicalScorer computes a string-similarity ratio in [0,1], ignoring
// meaning. Implementations are selected at startup: the Jaro-Winkler scorer
// when fuzzy matching is wanted, the exact scorer as the degraded fallback.
type LexicalScorer interface {
	Ratio(a, b string) float64
}

// JaroWinkler scores strings with the Jaro-Winkler metric, which favors
// strings sharing a common prefix. This suits symptom phrases, where the
// head noun usually comes first.
type JaroWinkler struct {
	// BoostThreshold is the minimum Jaro score before the prefix bonus
	// applies. Zero value selects the conventional 0.7.
	BoostThreshold float64

	// PrefixSize is the maximum shared-prefix length rewarded by the bonus.
	// Zero value selects the conventional 4.
	PrefixSize int
}

var _ LexicalScorer = (*JaroWinkler)(nil)

// Ratio returns the Jaro-Winkler similarity of a and b, clamped to [0,1].
func (j *JaroWinkler) Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	boost := j.BoostThreshold
	if boost == 0 {
		boost = 0.7
	}
	prefix := j.PrefixSize
	if prefix == 0 {
		prefix = 4
	}
	return core.Clamp01(smetrics.JaroWinkler(a, b, boost, prefix))
}

// Exact is the fallback lexical scorer used when no fuzzy-matching backend is
// available: 1.0 on equality, 0.0 otherwise. Degraded precision, not failure.
type Exact struct{}

var _ LexicalScorer = (*Exact)(nil)

// Ratio returns 1.0 if the strings are equal and 0.0 otherwise.
func (Exact) Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0.0
}
