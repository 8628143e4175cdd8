package query

import (
	"regexp"
	"strings"

	"github.com/sievelabs/sieve/core"
)

// Analyzer turns raw query text into a structured QueryAnalysis.
// Analysis is pure and deterministic: no I/O, no clock, no randomness.
type Analyzer struct {
	rules        *RuleSet
	domainVocab  map[core.Domain][]string
	highPriority []*regexp.Regexp
	mediumTerms  map[string]bool
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithRules sets a custom rule set.
// Default is DefaultRuleSet().
func WithRules(rules *RuleSet) Option {
	return func(a *Analyzer) error {
		if rules == nil {
			return ErrRuleSetRequired
		}
		if err := rules.Validate(); err != nil {
			return err
		}
		a.rules = rules
		return nil
	}
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		rules: DefaultRuleSet(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	a.domainVocab = a.rules.DomainVocabulary()
	a.highPriority = make([]*regexp.Regexp, 0, len(a.rules.HighPriorityPatterns))
	for _, p := range a.rules.HighPriorityPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		a.highPriority = append(a.highPriority, re)
	}
	a.mediumTerms = make(map[string]bool, len(a.rules.MediumPriorityTerms))
	for _, t := range a.rules.MediumPriorityTerms {
		a.mediumTerms[strings.ToLower(t)] = true
	}

	return a, nil
}

// Rules returns the rule set the analyzer was built with. The scoring engine
// shares the same tables for domain bonuses and document boosts.
func (a *Analyzer) Rules() *RuleSet {
	return a.rules
}

// Analyze produces a QueryAnalysis for the given query text.
func (a *Analyzer) Analyze(query string) *core.QueryAnalysis {
	trimmed := strings.TrimSpace(query)
	tokens := tokenize(trimmed)

	analysis := &core.QueryAnalysis{
		Original:   trimmed,
		Intent:     classifyIntent(trimmed),
		Complexity: classifyComplexity(trimmed, tokens),
		Terms:      extractTerms(tokens),
		Entities:   extractEntities(trimmed),
		KeyPhrases: extractKeyPhrases(trimmed, tokens),
	}
	analysis.Expanded = a.expandTerms(analysis.Terms, analysis.Entities)
	analysis.Domains = a.detectDomains(trimmed)
	analysis.Clues = detectClues(trimmed, analysis.Entities)
	analysis.Priority = a.classifyPriority(trimmed, analysis)

	return analysis
}

// classifyIntent tests intent rules in fixed priority order; first match wins.
// Queries matching no rule are navigational.
func classifyIntent(query string) core.Intent {
	for _, rule := range intentRules {
		if rule.pattern.MatchString(query) {
			return rule.intent
		}
	}
	return core.IntentNavigational
}

// classifyComplexity grades by word count and conjunction presence:
// at most 5 words without a conjunction is simple, at most 12 words is
// moderate, everything else is complex.
func classifyComplexity(query string, tokens []string) core.Complexity {
	words := len(tokens)
	hasConjunction := conjunctionPattern.MatchString(query)

	switch {
	case words <= 5 && !hasConjunction:
		return core.ComplexitySimple
	case words <= 12:
		return core.ComplexityModerate
	default:
		return core.ComplexityComplex
	}
}

// stopWords are filtered out of query terms. Question-leading words are
// included: they shape intent, not content.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "who": true, "when": true,
	"where": true, "which": true, "how": true, "why": true, "does": true,
	"did": true,
}

// extractTerms keeps lowercased non-stop-word tokens longer than 2 characters.
func extractTerms(tokens []string) []string {
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		cleaned := normalizeToken(tok)
		if len(cleaned) > 2 && !stopWords[cleaned] {
			terms = append(terms, cleaned)
		}
	}
	return terms
}

// expandTerms unions the original terms with synonym-table expansions and
// lowercased entity forms. Order is deterministic: originals first, then
// synonyms in term order, then entities.
func (a *Analyzer) expandTerms(terms, entities []string) []string {
	seen := make(map[string]bool, len(terms)*2)
	expanded := make([]string, 0, len(terms)*2)

	add := func(term string) {
		if term != "" && !seen[term] {
			seen[term] = true
			expanded = append(expanded, term)
		}
	}

	for _, term := range terms {
		add(term)
	}
	for _, term := range terms {
		for _, syn := range a.rules.Synonyms[term] {
			add(strings.ToLower(syn))
		}
	}
	for _, entity := range entities {
		add(strings.ToLower(entity))
	}

	return expanded
}

// extractKeyPhrases collects quoted substrings verbatim plus every contiguous
// 2-word and 3-word window over the tokenized query, filtered to length > 5.
func extractKeyPhrases(query string, tokens []string) []string {
	seen := make(map[string]bool)
	var phrases []string

	add := func(phrase string) {
		if len(phrase) > 5 && !seen[phrase] {
			seen[phrase] = true
			phrases = append(phrases, phrase)
		}
	}

	for _, match := range quotedPattern.FindAllStringSubmatch(query, -1) {
		add(strings.TrimSpace(match[1]))
	}

	lowered := make([]string, len(tokens))
	for i, tok := range tokens {
		lowered[i] = normalizeToken(tok)
	}
	for size := 2; size <= 3; size++ {
		for i := 0; i+size <= len(lowered); i++ {
			add(strings.Join(lowered[i:i+size], " "))
		}
	}

	return phrases
}

// detectDomains tests keyword-family membership. A query may belong to zero,
// one, or several domains.
func (a *Analyzer) detectDomains(query string) []core.Domain {
	lowered := strings.ToLower(query)
	var domains []core.Domain
	// Fixed iteration order keeps analysis deterministic.
	for _, domain := range []core.Domain{core.DomainFinance, core.DomainHR, core.DomainMarketing, core.DomainTechnical} {
		for _, word := range a.domainVocab[domain] {
			if strings.Contains(lowered, strings.ToLower(word)) {
				domains = append(domains, domain)
				break
			}
		}
	}
	return domains
}

// extractEntities collects capitalized tokens, skipping question-leading words
// and conjunctions. Possessive suffixes are stripped.
func extractEntities(query string) []string {
	skip := map[string]bool{
		"what": true, "who": true, "when": true, "where": true, "which": true,
		"how": true, "why": true, "the": true, "and": true, "for": true,
		"does": true, "did": true, "was": true, "are": true, "is": true,
	}

	seen := make(map[string]bool)
	var entities []string
	for _, match := range entityPattern.FindAllString(query, -1) {
		cleaned := strings.TrimSuffix(match, "'s")
		if skip[strings.ToLower(cleaned)] || len(cleaned) < 2 {
			continue
		}
		if !seen[cleaned] {
			seen[cleaned] = true
			entities = append(entities, cleaned)
		}
	}
	return entities
}

// detectClues runs each clue's pattern family independently.
// The specific-entity clue is driven by entity extraction, not a pattern.
func detectClues(query string, entities []string) []core.ContextClue {
	var clues []core.ContextClue
	for _, clue := range []core.ContextClue{core.ClueTemporal, core.CluePeriodic, core.ClueComparative, core.ClueQuantitative} {
		if clueQueryPatterns[clue].MatchString(query) {
			clues = append(clues, clue)
		}
	}
	if len(entities) > 0 {
		clues = append(clues, core.ClueSpecificEntity)
	}
	return clues
}

// classifyPriority derives the business-priority class. It must run during
// analysis because scoring thresholds and weights depend on it.
func (a *Analyzer) classifyPriority(query string, analysis *core.QueryAnalysis) core.Priority {
	for _, re := range a.highPriority {
		if re.MatchString(query) {
			return core.PriorityHigh
		}
	}

	// Compensation-adjacent domains combined with a named entity are
	// business-critical even without a curated pattern match.
	if len(analysis.Entities) > 0 &&
		(analysis.InDomain(core.DomainFinance) || analysis.InDomain(core.DomainHR)) {
		return core.PriorityHigh
	}

	for _, term := range analysis.Terms {
		if a.mediumTerms[term] {
			return core.PriorityMedium
		}
	}

	return core.PriorityLow
}

// tokenize splits on whitespace.
func tokenize(query string) []string {
	return strings.Fields(query)
}

// normalizeToken lowercases a token and trims surrounding punctuation,
// including possessive suffixes.
func normalizeToken(token string) string {
	cleaned := strings.ToLower(strings.Trim(token, ".,!?;:'\"-()[]{}"))
	cleaned = strings.TrimSuffix(cleaned, "'s")
	return cleaned
}
