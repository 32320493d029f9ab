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


// Package ai provides abstractions for the embedding services used in
// Symptomit.
//
// The package defines the Embedder and Provider interfaces and follows the
// dependency inversion principle, allowing the matching core to depend on
// abstractions rather than concrete implementations.
//
// # Implementation Packages
//
// Three implementation sub-packages exist:
//
//   - ai/openai: trained embedding models via OpenAI-compatible APIs
//   - ai/hashed: deterministic hashed bag-of-words fallback, always available
//   - ai/mock: test doubles for unit testing without external dependencies
//
// The fallback path means embedding never fails hard: when no trained model
// is configured or reachable, callers construct a hashed provider instead and
// the rest of the system is unaffected except for recall quality.
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, hashed.NewProvider) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable behavior injection and call-count assertions.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    provider = hashed.NewProvider(config.FallbackDimension)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "runny nose sneez")
package ai
