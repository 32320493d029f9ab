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

// Package match ranks knowledge-base concepts against a free-text query.
//
// Two independent signals are computed per candidate: cosine similarity
// between the query embedding and the candidate's description embedding, and
// a name-overlap score from label token intersection with a substring boost.
// The effective score is the maximum of the two rather than a blend; a name
// match is high-precision evidence that weak semantic similarity should not
// dilute. Strong name matches also relax the acceptance threshold so a
// literal label hit is never filtered out by a strict semantic bar. When
// nothing clears the threshold but some candidate shares a token with the
// query, a single low-confidence fallback result is emitted.
package match
