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


package scoring

import "errors"

var (
	// ErrRuleSetRequired is returned when a nil rule set is provided.
	ErrRuleSetRequired = errors.New("rule set required")

	// ErrUnknownMode indicates an unrecognized search mode name.
	ErrUnknownMode = errors.New("unknown search mode")

	// ErrInvalidBoostCap indicates a boost cap below 1.
	ErrInvalidBoostCap = errors.New("boost cap must be at least 1")
)
