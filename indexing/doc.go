// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indexing precomputes embedding vectors for knowledge-base
// concepts.
//
// The pipeline normalizes each concept's description, embeds the result in
// batches on a worker pool, and persists the vectors through the concept
// repository. Matching then reads stored vectors instead of embedding
// candidate text per query.
package indexing
