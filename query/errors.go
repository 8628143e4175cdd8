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


package query

import "errors"

var (
	// ErrRuleSetRequired is returned when a nil rule set is provided.
	ErrRuleSetRequired = errors.New("rule set required")

	// ErrUnknownDomain indicates a rule file names a domain the scorer does not know.
	ErrUnknownDomain = errors.New("unknown domain")

	// ErrInvalidPattern indicates a rule pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid rule pattern")

	// ErrInvalidRuleFile indicates a rule file that is not valid YAML.
	ErrInvalidRuleFile = errors.New("invalid rule file")
)
