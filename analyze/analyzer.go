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

package analyze

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/knowledge"
	"github.com/poiesic/symptomit/normalize"
	"github.com/poiesic/symptomit/similarity"
)

const (
	// lexicalWeight and semanticWeight blend the two similarity signals when
	// a phrase has no exact synonym entry.
	lexicalWeight  = 0.3
	semanticWeight = 0.7

	// researchThreshold separates confident resolutions from phrases that
	// need manual research.
	researchThreshold = 0.6
)

// PhraseReport is the analysis of one input phrase.
type PhraseReport struct {
	// Phrase is the normalized input phrase as analyzed.
	Phrase string
	// Canonical is the resolved concept label; equals Phrase when nothing
	// resolved.
	Canonical string
	// Category is the resolved concept's category, or "unknown".
	Category string
	// Score is the resolution confidence: 1.0 for an exact synonym hit,
	// otherwise the hybrid similarity of the best vocabulary match.
	Score float64
	// Outcomes carries the resolved concept's outcomes scaled by Score,
	// highest confidence first. Empty when NeedsResearch is set.
	Outcomes []core.ScoredOutcome
	// NeedsResearch marks phrases that resolved weakly or to a concept with
	// no outcome data.
	NeedsResearch bool
}

// Analyzer resolves each phrase of a free-text description to a canonical
// concept. Unlike the Matcher, which ranks the whole query against every
// candidate, the Analyzer answers "what does each phrase mean" one phrase at
// a time.
type Analyzer struct {
	base   *knowledge.Base
	scorer *similarity.Scorer
	logger *slog.Logger
}

type Option func(*Analyzer)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

func NewAnalyzer(base *knowledge.Base, scorer *similarity.Scorer, opts ...Option) (*Analyzer, error) {
	if base == nil {
		return nil, ErrBaseRequired
	}
	if scorer == nil {
		return nil, ErrScorerRequired
	}
	a := &Analyzer{
		base:   base,
		scorer: scorer,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "analyzer")
	return a, nil
}

// Analyze splits text into phrases and resolves each one. Empty input yields
// an empty report list.
func (a *Analyzer) Analyze(ctx context.Context, text string) []PhraseReport {
	var reports []PhraseReport
	for _, raw := range normalize.SplitPhrases(text) {
		phrase := normalize.NormalizePhrase(raw)
		if phrase == "" {
			continue
		}
		reports = append(reports, a.analyzePhrase(ctx, phrase))
	}
	return reports
}

func (a *Analyzer) analyzePhrase(ctx context.Context, phrase string) PhraseReport {
	canonical := ""
	score := 0.0
	if concept, ok := a.base.Lookup(phrase); ok {
		canonical = concept.Label
		score = 1.0
	} else if vocab := a.base.Vocabulary(); len(vocab) > 0 {
		canonical, score = a.scorer.BestMatch(ctx, phrase, vocab, lexicalWeight, semanticWeight)
	}

	report := PhraseReport{
		Phrase:    phrase,
		Canonical: canonical,
		Category:  "unknown",
		Score:     score,
	}

	var concept core.Concept
	resolved := false
	if canonical != "" {
		concept, resolved = a.base.ByLabel(canonical)
	}
	if resolved {
		report.Category = a.base.Category(concept.Id)
	}

	if !resolved || score < researchThreshold || len(concept.Outcomes) == 0 {
		if report.Canonical == "" {
			report.Canonical = phrase
		}
		report.NeedsResearch = true
		a.logger.Debug("phrase needs research", "phrase", phrase, "score", score)
		return report
	}

	report.Outcomes = scoreOutcomes(concept.Outcomes, score)
	return report
}

// scoreOutcomes blends the phrase resolution score with each outcome's prior.
func scoreOutcomes(outcomes []core.Outcome, score float64) []core.ScoredOutcome {
	scored := make([]core.ScoredOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		scored = append(scored, core.ScoredOutcome{
			Name:        outcome.Name,
			Confidence:  round3(core.Clamp01(0.5*score + 0.5*outcome.Prior)),
			Suggestions: outcome.Suggestions,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})
	return scored
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
