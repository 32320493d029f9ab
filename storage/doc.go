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

// Package storage provides the storage abstraction layer for symptomit.
//
// This package defines repository interfaces that decouple storage
// implementation from the matching engine. Repositories persist concepts
// together with the embedding vectors computed by the indexing pipeline, so
// precomputed vectors survive restarts, plus any pattern rules imported from
// rule files.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the interfaces defined here:
//
//	repo, err := badger.NewConceptRepository(backend) // storage.ConceptRepository
//
// Consumers stay decoupled from BadgerDB specifics and tests can substitute
// in-memory implementations without modification.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. All methods accept context.Context for
// cancellation; pass context.Background() when no timeout applies.
package storage
