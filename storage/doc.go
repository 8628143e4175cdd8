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


// Package storage defines the storage contracts the search core depends on:
// CacheStore, the durable key/value backend for the semantic cache's second
// tier, and DocumentSource, the read-only corpus supplier.
//
// Constructors in backend packages return these interfaces so callers never
// couple to a specific store. The badger subpackage provides the standard
// CacheStore implementation; FileSource in this package is a JSON-file
// DocumentSource for the CLI and tests.
//
// All implementations must be thread-safe. Every method takes a
// context.Context for cancellation; cache-store failures are expected to be
// degraded around (treated as a miss on read, a no-op on write), never
// propagated into a search failure.
package storage
