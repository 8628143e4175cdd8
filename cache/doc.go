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


// Package cache implements the two-tier semantic result cache.
//
// The hit test is "nearest stored query within tolerance", not equality:
// an exact-text fast path is tried first, then the tiers are scanned for the
// stored entry whose query embedding is most cosine-similar to the incoming
// one, above a configurable threshold. Rephrasings of the same question
// therefore hit without recomputation.
//
// Entries carry the document-id set their results depend on, and
// InvalidateByDocuments eagerly removes them when those documents change.
// TTL expiry applies in both tiers: the fast tier checks it on read, the
// durable badger tier additionally enforces it natively.
package cache
