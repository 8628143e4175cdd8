// Copyright 2025 Sieve Labs
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


// Package scoring computes per-chunk relevance scores.
//
// Four independent sub-scores, each in [0,1]:
//   - semantic: cosine similarity between query and chunk embeddings
//   - lexical: weighted expanded-term overlap
//   - exact match: verbatim query and key-phrase hits
//   - context relevance: context-clue and domain-vocabulary hits
//
// The three primary scores blend under an enum-indexed weight table selected
// by Mode, perturbed per query analysis and renormalized. High-priority
// queries multiply the result by a capped priority boost. Chunks below the
// dynamically derived threshold are dropped.
//
// Scoring is a pure function of its inputs; an Engine holds only compiled
// rule tables and is safe for concurrent use.
package scoring
