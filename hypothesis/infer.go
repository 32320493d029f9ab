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

package hypothesis

import (
	"log/slog"
	"strings"

	"github.com/poiesic/symptomit/core"
)

// Inferencer scans normalized queries against a pattern rule table and
// produces hypotheses for every rule whose triggers fire.
type Inferencer struct {
	rules  []core.PatternRule
	logger *slog.Logger
}

type Option func(*Inferencer)

// WithRules replaces the built-in rule table, typically with built-ins plus
// rules loaded from a rule file.
func WithRules(rules []core.PatternRule) Option {
	return func(i *Inferencer) {
		i.rules = rules
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Inferencer) {
		i.logger = logger
	}
}

func NewInferencer(opts ...Option) *Inferencer {
	inf := &Inferencer{
		rules:  DefaultRules(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(inf)
	}
	inf.logger = inf.logger.With("component", "hypothesis")
	return inf
}

// Rules returns the active rule table in declaration order.
func (i *Inferencer) Rules() []core.PatternRule {
	return i.rules
}

// Infer returns one hypothesis per triggered rule, in rule declaration order.
// A rule fires when any trigger appears as a substring of the normalized text
// or of the space-joined token list. Multi-word tokens keep their underscores
// in the token list, so triggers written with spaces are matched against the
// normalized text while single-token triggers hit either form.
func (i *Inferencer) Infer(normalizedText string, tokens []string) []core.Hypothesis {
	joined := strings.Join(tokens, " ")
	var hypotheses []core.Hypothesis
	for _, rule := range i.rules {
		if !triggered(rule, normalizedText, joined) {
			continue
		}
		i.logger.Debug("pattern rule triggered", "rule", rule.Id)
		hypotheses = append(hypotheses, core.Hypothesis{
			RuleId:      rule.Id,
			Title:       rule.Title,
			Rationale:   rule.Rationale,
			Suggestions: rule.Suggestions,
			Score:       DefaultScore,
		})
	}
	return hypotheses
}

func triggered(rule core.PatternRule, normalizedText, joinedTokens string) bool {
	for _, trigger := range rule.Triggers {
		if trigger == "" {
			continue
		}
		if strings.Contains(normalizedText, trigger) || strings.Contains(joinedTokens, trigger) {
			return true
		}
	}
	return false
}
