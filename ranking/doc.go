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


// Package ranking orders scored chunks into the final result list.
//
// Ranking runs in two stages after a stable score-descending sort: a
// diversity pass caps how many results any single document contributes
// (with a backfill floor so small corpora still fill the set), and a
// coverage pass round-robins across documents so several sources are
// represented even when one document dominates the score distribution.
package ranking
