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


// Package query analyzes raw query text into a structured QueryAnalysis:
// intent, complexity, expanded terms, key phrases, domains, entities,
// context clues, and business-priority class.
//
// Classification is table-driven. Intent, clue, and priority detection run
// over ordered (pattern, tag) rule lists, and the vocabulary tables
// (synonyms, domain keyword families, priority patterns) can be replaced per
// deployment from a YAML file via LoadRuleSet.
//
// Analysis is pure: no I/O, deterministic for a given query and rule set.
package query
