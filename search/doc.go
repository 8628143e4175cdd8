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


// Package search orchestrates the relevance pipeline: cache lookup, query
// analysis, query embedding, parallel per-document scoring, diversity-aware
// ranking, result enrichment, and cache write-back.
//
// Degradation is the rule, not the exception. A failed embedding disables
// only the semantic sub-score, a failed cache tier is a miss, and a panic
// while scoring one chunk skips that chunk. The only caller-visible errors
// are an empty query and an unreachable document source.
package search
