package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing of the entity's label.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Concept is a canonical concept in the knowledge base: the standard label a
// free-text phrase resolves to, together with its synonyms, classification,
// associated outcomes, and free-text description.
// Concepts are immutable after the knowledge base is loaded.
type Concept struct {
	Id          ID
	Label       string
	Synonyms    []string
	Category    string
	Description string
	Outcomes    []Outcome
	Vector      []float32 // Embedding vector (populated by the indexing pipeline)
}

// Outcome is an outcome associated with a concept, carrying a prior weight
// in [0,1] and optional supporting suggestions.
type Outcome struct {
	Name        string
	Prior       float64
	Suggestions []string
}

// PatternRule maps trigger phrases to a broader explanatory hypothesis.
// Rules are static and evaluated in declaration order.
type PatternRule struct {
	Id          string
	Title       string
	Triggers    []string
	Rationale   string
	Suggestions []string
}

// MatchResult is a single ranked candidate produced for one query.
// Results are ephemeral and never persisted.
type MatchResult struct {
	ConceptId     ID
	Label         string
	Score         float64
	Snippet       string // Human-readable evidence for the match
	Outcomes      []ScoredOutcome
	LowConfidence bool
}

// ScoredOutcome is an Outcome whose prior has been blended with the match
// score of the concept that carries it.
type ScoredOutcome struct {
	Name        string
	Confidence  float64
	Suggestions []string
}

// Hypothesis is a broader physiological hypothesis inferred from normalized
// tokens when no direct concept match is strong enough.
type Hypothesis struct {
	RuleId      string
	Title       string
	Rationale   string
	Suggestions []string
	Score       float64
}

// SkippedCandidate records a knowledge-base entry that could not be scored.
// One malformed entry must not abort the overall ranking, but skips stay
// observable to callers and tests.
type SkippedCandidate struct {
	ConceptId ID
	Label     string
	Reason    string
}

// SimilarConcept pairs a stored concept with its similarity to a probe
// vector.
type SimilarConcept struct {
	Concept *Concept
	Score   float32
}

// Clamp01 clamps v to the [0,1] interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
