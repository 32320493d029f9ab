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


package core

import "fmt"

// ValidateConcept validates a Concept according to domain rules.
//
// Validation rules:
//   - Label must not be empty
//   - Every outcome prior must lie in [0,1]
//
// NOT validated (populated later):
//   - Vector (can be empty until the indexing pipeline runs)
//   - Id (derived from the label at load time)
func ValidateConcept(concept *Concept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}

	if concept.Label == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptyLabel)
	}

	for _, outcome := range concept.Outcomes {
		if outcome.Prior < 0 || outcome.Prior > 1 {
			return fmt.Errorf("%w: %w: outcome %q has prior %v",
				ErrInvalidConcept, ErrPriorOutOfRange, outcome.Name, outcome.Prior)
		}
	}

	return nil
}

// ValidatePatternRule validates a PatternRule according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - At least one non-empty trigger must be declared
func ValidatePatternRule(rule *PatternRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule is nil", ErrInvalidPatternRule)
	}

	if rule.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPatternRule, ErrEmptyRuleId)
	}

	triggers := 0
	for _, trigger := range rule.Triggers {
		if trigger != "" {
			triggers++
		}
	}
	if triggers == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPatternRule, ErrNoTriggers)
	}

	return nil
}
