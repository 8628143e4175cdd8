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


// Package core defines the domain model shared by every other package:
// documents and chunks as read by the search core, query analysis values,
// scored chunks, search results, cache entries, and feedback records.
//
// Types here are plain values with no behavior beyond validation and a few
// derived predicates. Serialization for the durable cache tier lives in
// mus.go as hand-written MUS serializers.
package core
