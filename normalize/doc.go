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


// Package normalize canonicalizes free-text symptom descriptions.
//
// The Normalizer lowercases input, preserves known multi-word phrases as
// single underscored tokens, strips punctuation, drops stopwords, applies a
// light suffix-based lemmatization, and rewrites colloquial phrasing to
// canonical domain terms. An optional Lexicon adds a bounded number of
// related terms per token to improve recall.
//
// Normalization is deterministic for a fixed configuration and performs no
// I/O, so it is safe on the per-query hot path.
package normalize
