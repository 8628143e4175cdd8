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

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRuleSet reads a YAML rule file and merges it over the defaults.
// Sections present in the file replace the corresponding default section
// wholesale; absent sections keep their defaults. The merged rule set is
// validated before being returned.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	return ParseRuleSet(data)
}

// ParseRuleSet parses YAML rule data and merges it over the defaults.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var loaded RuleSet
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRuleFile, err)
	}

	rules := DefaultRuleSet()
	if len(loaded.Synonyms) > 0 {
		rules.Synonyms = loaded.Synonyms
	}
	if len(loaded.Domains) > 0 {
		rules.Domains = loaded.Domains
	}
	if len(loaded.HighPriorityPatterns) > 0 {
		rules.HighPriorityPatterns = loaded.HighPriorityPatterns
	}
	if len(loaded.MediumPriorityTerms) > 0 {
		rules.MediumPriorityTerms = loaded.MediumPriorityTerms
	}
	if len(loaded.CriticalDocumentPatterns) > 0 {
		rules.CriticalDocumentPatterns = loaded.CriticalDocumentPatterns
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}
