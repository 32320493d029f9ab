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


// Package similarity scores text pairs with a hybrid of lexical and semantic
// signals.
//
// Lexical similarity is a string ratio (Jaro-Winkler by default, exact match
// in degraded mode); semantic similarity is the cosine of the two texts'
// embedding vectors, clamped to [0,1]. The two are blended with caller-chosen
// weights. All scores stay within [0,1].
package similarity
