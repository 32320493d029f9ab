package match

import "github.com/poiesic/symptomit/core"

// MatchMonitor receives notifications as a query moves through the matching
// pipeline. Implementations must be safe for concurrent use when the Matcher
// is shared across goroutines.
type MatchMonitor interface {
	// QueryNormalized fires once per query after normalization.
	QueryNormalized(normalizedText string, tokens []string)
	// CandidateScored fires for every knowledge-base candidate considered.
	CandidateScored(conceptId core.ID, label string, semantic, nameOverlap, score float64)
	// CandidateSkipped fires when a candidate cannot be scored.
	CandidateSkipped(skipped core.SkippedCandidate)
	// FallbackEmitted fires when the low-confidence fallback result is used.
	FallbackEmitted(conceptId core.ID, label string, score float64)
}

type noopMonitor struct{}

func (noopMonitor) QueryNormalized(string, []string)                           {}
func (noopMonitor) CandidateScored(core.ID, string, float64, float64, float64) {}
func (noopMonitor) CandidateSkipped(core.SkippedCandidate)                     {}
func (noopMonitor) FallbackEmitted(core.ID, string, float64)                   {}
