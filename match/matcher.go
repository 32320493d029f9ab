// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/poiesic/symptomit/ai"
	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/knowledge"
	"github.com/poiesic/symptomit/normalize"
	"github.com/poiesic/symptomit/similarity"
)

const (
	// DefaultThreshold gates candidate acceptance when the caller passes no
	// explicit threshold.
	DefaultThreshold = 0.5

	// substringBoost is the name-overlap score assigned when one normalized
	// string contains the other. Literal name matches are high precision, so
	// they score near the top of the range.
	substringBoost = 0.95

	// strongNameOverlap marks a name match strong enough to relax the
	// acceptance threshold for that candidate.
	strongNameOverlap = 0.8

	// relaxedThreshold is the floor applied to strongly name-matched
	// candidates.
	relaxedThreshold = 0.2

	snippetTokenLimit = 6
	snippetMaxLen     = 60
)

// Matcher scores a normalized query against every knowledge-base candidate
// and returns the accepted matches, ranked. It is stateless per query and
// safe for concurrent use.
type Matcher struct {
	base       *knowledge.Base
	normalizer *normalize.Normalizer
	embedder   ai.Embedder
	monitor    MatchMonitor
	logger     *slog.Logger
}

type Option func(*Matcher)

// WithMonitor installs a pipeline monitor. Default is a no-op.
func WithMonitor(monitor MatchMonitor) Option {
	return func(m *Matcher) {
		m.monitor = monitor
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		m.logger = logger
	}
}

func NewMatcher(base *knowledge.Base, normalizer *normalize.Normalizer, embedder ai.Embedder, opts ...Option) (*Matcher, error) {
	if base == nil {
		return nil, ErrBaseRequired
	}
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	m := &Matcher{
		base:       base,
		normalizer: normalizer,
		embedder:   embedder,
		monitor:    noopMonitor{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "matcher")
	return m, nil
}

// Match ranks knowledge-base candidates against queryText. A threshold of 0
// or less selects DefaultThreshold. An empty or stopword-only query returns
// no matches without touching the embedder, and an empty knowledge base is a
// valid zero-result state.
func (m *Matcher) Match(ctx context.Context, queryText string, threshold float64) ([]core.MatchResult, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	normText, tokens := m.normalizer.Normalize(queryText)
	m.monitor.QueryNormalized(normText, tokens)
	if len(tokens) == 0 {
		return nil, nil
	}

	queryVec, err := m.embedder.EmbedText(ctx, normText)
	if err != nil {
		m.logger.Warn("query embedding failed, semantic scores degraded to zero", "error", err)
		queryVec = nil
	}
	queryTokens := tokenSet(tokens)

	var (
		accepted    []core.MatchResult
		best        *knowledge.Entry
		bestScore   = -1.0
		bestOverlap []string
	)
	for i := range m.base.Entries() {
		entry := &m.base.Entries()[i]
		if entry.Concept.Label == "" {
			m.monitor.CandidateSkipped(core.SkippedCandidate{
				ConceptId: entry.Concept.Id,
				Reason:    "empty label",
			})
			continue
		}

		semantic := core.Clamp01(similarity.Cosine(queryVec, m.candidateVector(ctx, entry)))
		nameOverlap := m.nameOverlap(entry, queryTokens, normText)
		score := math.Max(semantic, nameOverlap)
		m.monitor.CandidateScored(entry.Concept.Id, entry.Concept.Label, semantic, nameOverlap, score)

		if score > bestScore {
			bestScore = score
			best = entry
			bestOverlap = sharedTokens(tokens, entry.NormBlob)
		}

		dynThreshold := threshold
		if nameOverlap >= strongNameOverlap {
			dynThreshold = math.Min(threshold, relaxedThreshold)
		}
		if score < dynThreshold {
			continue
		}
		accepted = append(accepted, m.buildResult(entry, tokens, nameOverlap, score, false))
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Score > accepted[j].Score
	})

	if len(accepted) == 0 && best != nil && len(bestOverlap) > 0 {
		result := m.buildResult(best, tokens, 0, bestScore, true)
		m.monitor.FallbackEmitted(best.Concept.Id, best.Concept.Label, result.Score)
		m.logger.Debug("emitting low-confidence fallback", "label", best.Concept.Label, "score", result.Score)
		accepted = append(accepted, result)
	}
	return accepted, nil
}

// candidateVector prefers the precomputed concept vector and embeds the
// normalized description on the fly when indexing has not run yet.
func (m *Matcher) candidateVector(ctx context.Context, entry *knowledge.Entry) []float32 {
	if len(entry.Concept.Vector) > 0 {
		return entry.Concept.Vector
	}
	if entry.NormBlob == "" {
		return nil
	}
	vec, err := m.embedder.EmbedText(ctx, entry.NormBlob)
	if err != nil {
		m.logger.Warn("candidate embedding failed", "label", entry.Concept.Label, "error", err)
		return nil
	}
	return vec
}

// nameOverlap scores the candidate label against the query independently of
// embeddings: token intersection over the label's own token count, boosted to
// a fixed constant when one normalized string contains the other.
func (m *Matcher) nameOverlap(entry *knowledge.Entry, queryTokens map[string]struct{}, normText string) float64 {
	overlap := 0.0
	if len(entry.LabelTokens) > 0 && len(queryTokens) > 0 {
		inter := 0
		for tok := range entry.LabelTokens {
			if _, ok := queryTokens[tok]; ok {
				inter++
			}
		}
		overlap = float64(inter) / float64(len(entry.LabelTokens))
	}
	if entry.NormLabel != "" &&
		(strings.Contains(normText, entry.NormLabel) || strings.Contains(entry.NormLabel, normText)) {
		overlap = math.Max(overlap, substringBoost)
	}
	return overlap
}

func (m *Matcher) buildResult(entry *knowledge.Entry, tokens []string, nameOverlap, score float64, lowConfidence bool) core.MatchResult {
	matched := sharedTokens(tokens, entry.NormBlob)
	var snippet string
	switch {
	case len(matched) > 0:
		snippet = strings.Join(matched, ", ")
	case nameOverlap >= strongNameOverlap:
		snippet = "name match: " + entry.Concept.Label
	default:
		snippet = truncate(entry.Concept.Description, snippetMaxLen)
	}
	return core.MatchResult{
		ConceptId:     entry.Concept.Id,
		Label:         entry.Concept.Label,
		Score:         round(score, 4),
		Snippet:       snippet,
		Outcomes:      scoreOutcomes(entry.Concept.Outcomes, score),
		LowConfidence: lowConfidence,
	}
}

// scoreOutcomes scales outcome priors by the match score and sorts them by
// confidence descending, keeping declaration order on ties.
func scoreOutcomes(outcomes []core.Outcome, matchScore float64) []core.ScoredOutcome {
	if len(outcomes) == 0 {
		return nil
	}
	scored := make([]core.ScoredOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		scored = append(scored, core.ScoredOutcome{
			Name:        outcome.Name,
			Confidence:  round(core.Clamp01(0.5*matchScore+0.5*outcome.Prior), 3),
			Suggestions: outcome.Suggestions,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})
	return scored
}

// sharedTokens lists, in query order, up to snippetTokenLimit query tokens
// that appear in the candidate's normalized text. Underscored phrase tokens
// are compared in their spaced form because normalized text reverts
// underscores.
func sharedTokens(tokens []string, normBlob string) []string {
	if normBlob == "" {
		return nil
	}
	var shared []string
	for _, tok := range tokens {
		if len(shared) >= snippetTokenLimit {
			break
		}
		needle := strings.ReplaceAll(tok, "_", " ")
		if strings.Contains(normBlob, needle) {
			shared = append(shared, tok)
		}
	}
	return shared
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// truncate cuts text to at most limit characters on a rune boundary, so
// multibyte description text is never split mid-sequence.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func round(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
