package query

import (
	"fmt"
	"regexp"

	"github.com/sievelabs/sieve/core"
)

// RuleSet holds the data-driven vocabulary tables the analyzer and scorer
// consult. Tables are plain data so deployments can override them from a
// YAML file (see LoadRuleSet) without touching control flow.
type RuleSet struct {
	// Synonyms maps a query term to its expansion set.
	Synonyms map[string][]string `yaml:"synonyms"`

	// Domains maps a domain name (finance, hr, marketing, technical) to its
	// keyword family.
	Domains map[string][]string `yaml:"domains"`

	// HighPriorityPatterns are regular expressions identifying
	// business-critical queries, e.g. compensation combined with a named
	// entity. A query matching any of them is classed high priority.
	HighPriorityPatterns []string `yaml:"high_priority_patterns"`

	// MediumPriorityTerms are general strategic/operational vocabulary
	// granting medium priority.
	MediumPriorityTerms []string `yaml:"medium_priority_terms"`

	// CriticalDocumentPatterns are regular expressions matched against
	// document names during scoring to grant a priority boost.
	CriticalDocumentPatterns []string `yaml:"critical_document_patterns"`
}

// DefaultRuleSet returns the compiled-in vocabulary tables.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Synonyms: map[string][]string{
			"salary":      {"compensation", "pay", "wages", "remuneration", "income"},
			"employee":    {"staff", "personnel", "worker", "headcount"},
			"revenue":     {"sales", "income", "turnover", "earnings"},
			"cost":        {"expense", "expenditure", "spend", "outlay"},
			"budget":      {"forecast", "allocation", "plan"},
			"profit":      {"margin", "earnings", "net income"},
			"customer":    {"client", "account", "buyer"},
			"contract":    {"agreement", "terms", "deal"},
			"vacation":    {"leave", "pto", "time off", "holiday"},
			"manager":     {"supervisor", "lead", "director"},
			"policy":      {"procedure", "guideline", "rule"},
			"performance": {"results", "kpi", "metrics"},
		},
		Domains: map[string][]string{
			"finance": {
				"revenue", "salary", "budget", "cost", "profit", "margin",
				"forecast", "invoice", "payroll", "expense", "fiscal",
				"quarterly", "earnings", "compensation", "fp&a",
			},
			"hr": {
				"employee", "hiring", "onboarding", "benefits", "vacation",
				"leave", "performance review", "compensation", "salary",
				"headcount", "recruiting", "termination", "director",
			},
			"marketing": {
				"campaign", "brand", "conversion", "engagement", "audience",
				"funnel", "leads", "seo", "content", "social media",
			},
			"technical": {
				"api", "deployment", "architecture", "database", "latency",
				"infrastructure", "pipeline", "integration", "migration",
				"incident", "configuration",
			},
		},
		HighPriorityPatterns: []string{
			`(salary|compensation|pay|wages)\b.*\b[A-Z][a-z]+`,
			`\b[A-Z][a-z]+('s)?\b.*\b(salary|compensation|pay|bonus|equity)`,
			`\b(termination|severance|legal|lawsuit|breach)\b`,
			`\b(acquisition|merger|layoff|restructuring)\b`,
		},
		MediumPriorityTerms: []string{
			"strategy", "roadmap", "plan", "budget", "policy", "process",
			"performance", "review", "quarterly", "objective", "target",
		},
		CriticalDocumentPatterns: []string{
			`(?i)\b(agreement|contract)\b`,
			`(?i)\b(policy|handbook)\b`,
			`(?i)\b(financial|budget|payroll)\b`,
			`(?i)\b(board|executive)\b`,
		},
	}
}

// Validate checks that all rule patterns compile and domain names are known.
func (r *RuleSet) Validate() error {
	for name := range r.Domains {
		if _, err := ParseDomain(name); err != nil {
			return err
		}
	}
	for _, p := range r.HighPriorityPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidPattern, p, err)
		}
	}
	for _, p := range r.CriticalDocumentPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidPattern, p, err)
		}
	}
	return nil
}

// DomainVocabulary returns the domain keyword families keyed by core.Domain.
// Unknown domain names are skipped; Validate catches them earlier.
func (r *RuleSet) DomainVocabulary() map[core.Domain][]string {
	vocab := make(map[core.Domain][]string, len(r.Domains))
	for name, words := range r.Domains {
		domain, err := ParseDomain(name)
		if err != nil {
			continue
		}
		vocab[domain] = words
	}
	return vocab
}

// ParseDomain maps a rule-table domain name to its core.Domain value.
func ParseDomain(name string) (core.Domain, error) {
	switch name {
	case "finance":
		return core.DomainFinance, nil
	case "hr":
		return core.DomainHR, nil
	case "marketing":
		return core.DomainMarketing, nil
	case "technical":
		return core.DomainTechnical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDomain, name)
	}
}

// intentRule pairs a pattern with the intent it signals. Rules are tested in
// order; the first match wins.
type intentRule struct {
	pattern *regexp.Regexp
	intent  core.Intent
}

var intentRules = []intentRule{
	{regexp.MustCompile(`(?i)^\s*(what|who|when|where|which)\b`), core.IntentFactual},
	{regexp.MustCompile(`(?i)(^\s*how\s+to\b|\bsteps\b|\binstructions\b)`), core.IntentProcedural},
	{regexp.MustCompile(`(?i)\b(analyze|analyse|compare|comparison|versus|vs\.?|why|evaluate)\b`), core.IntentAnalytical},
	{regexp.MustCompile(`(?i)\b(create|design|generate|draft|write|build)\b`), core.IntentCreative},
}

// clueQueryPatterns detect context clues in query text.
var clueQueryPatterns = map[core.ContextClue]*regexp.Regexp{
	core.ClueTemporal: regexp.MustCompile(
		`(?i)\b(today|yesterday|recent|recently|latest|current|now|this (year|quarter|month|week)|last (year|quarter|month|week)|20\d{2})\b`),
	core.CluePeriodic: regexp.MustCompile(
		`(?i)\b(annual|annually|quarterly|monthly|weekly|daily|per (year|quarter|month|week))\b`),
	core.ClueComparative: regexp.MustCompile(
		`(?i)\b(versus|vs\.?|compare|compared|more than|less than|higher|lower|better|worse|difference between)\b`),
	core.ClueQuantitative: regexp.MustCompile(
		`(?i)(\bhow (much|many)\b|\b(total|average|sum|count|percent|percentage|number of)\b|\d|[$€£%])`),
}

// clueContentPatterns detect whether chunk content satisfies a clue.
// They are looser than the query-side patterns: content expresses quantities
// and dates as literals rather than question forms.
var clueContentPatterns = map[core.ContextClue]*regexp.Regexp{
	core.ClueTemporal: regexp.MustCompile(
		`(?i)\b(20\d{2}|january|february|march|april|may|june|july|august|september|october|november|december|q[1-4])\b`),
	core.CluePeriodic: regexp.MustCompile(
		`(?i)\b(annual|annually|quarterly|monthly|weekly|daily|per annum)\b`),
	core.ClueComparative: regexp.MustCompile(
		`(?i)\b(versus|vs\.?|higher|lower|increase|decrease|growth|decline|more than|less than)\b`),
	core.ClueQuantitative: regexp.MustCompile(
		`\d|[$€£%]`),
}

// ClueContentPattern returns the content-side pattern for a clue, or nil for
// clues (like specific-entity) that are matched against analysis data instead.
func ClueContentPattern(c core.ContextClue) *regexp.Regexp {
	return clueContentPatterns[c]
}

// entityPattern matches capitalized tokens treated as named entities.
var entityPattern = regexp.MustCompile(`\b[A-Z][A-Za-z&]+(?:'s)?\b`)

// quotedPattern extracts quoted substrings used verbatim as key phrases.
var quotedPattern = regexp.MustCompile(`["']([^"']+)["']`)

// conjunctionPattern detects conjunctions for the complexity heuristic.
var conjunctionPattern = regexp.MustCompile(`(?i)\b(and|or|but|while|whereas|plus|as well as)\b`)
