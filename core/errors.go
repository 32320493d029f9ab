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

import "errors"

// Domain validation errors
var (
	// ErrInvalidConcept indicates a Concept failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrInvalidPatternRule indicates a PatternRule failed validation.
	ErrInvalidPatternRule = errors.New("invalid pattern rule")

	// ErrEmptyLabel indicates the concept Label field is empty.
	ErrEmptyLabel = errors.New("concept label cannot be empty")

	// ErrPriorOutOfRange indicates an outcome prior outside [0,1].
	ErrPriorOutOfRange = errors.New("outcome prior must be in [0,1]")

	// ErrEmptyRuleId indicates the rule Id field is empty.
	ErrEmptyRuleId = errors.New("rule id cannot be empty")

	// ErrNoTriggers indicates a rule without trigger phrases.
	ErrNoTriggers = errors.New("rule must declare at least one trigger")
)
