package scoring

import (
	"regexp"
	"strings"

	"github.com/sievelabs/sieve/core"
	"github.com/sievelabs/sieve/query"
)

const (
	// defaultBoostCap bounds the priority-boost multiplier. Hand-tuned; the
	// exact value is not load-bearing beyond "some cap exists".
	defaultBoostCap = 4.0

	// defaultMinThreshold is the floor under the dynamic drop threshold.
	defaultMinThreshold = 0.05

	// contextWeight is the fixed contribution of context relevance to the
	// combined score, outside the normalized weight triple.
	contextWeight = 0.1

	// clueIncrement is the context-relevance credit per satisfied clue.
	clueIncrement = 0.25

	// domainBonus is the context-relevance credit for chunk content matching
	// the query's detected domain vocabulary.
	domainBonus = 0.3
)

// Engine computes relevance scores for individual chunks. It is stateless
// after construction and safe for concurrent use.
type Engine struct {
	domainVocab map[core.Domain][]string
	criticalDoc []*regexp.Regexp
	boostCap    float64
	minScore    float64
}

// Option configures an Engine.
type Option func(*Engine) error

// WithBoostCap overrides the priority-boost multiplier cap.
// Default is 4.0.
func WithBoostCap(limit float64) Option {
	return func(e *Engine) error {
		if limit < 1 {
			return ErrInvalidBoostCap
		}
		e.boostCap = limit
		return nil
	}
}

// WithMinThreshold overrides the floor under the dynamic drop threshold.
// Default is 0.05.
func WithMinThreshold(min float64) Option {
	return func(e *Engine) error {
		e.minScore = min
		return nil
	}
}

// NewEngine creates a scoring engine sharing the analyzer's rule tables.
func NewEngine(rules *query.RuleSet, opts ...Option) (*Engine, error) {
	if rules == nil {
		return nil, ErrRuleSetRequired
	}

	e := &Engine{
		domainVocab: rules.DomainVocabulary(),
		boostCap:    defaultBoostCap,
		minScore:    defaultMinThreshold,
	}

	for _, p := range rules.CriticalDocumentPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		e.criticalDoc = append(e.criticalDoc, re)
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Score computes the four sub-scores for one chunk, blends them under the
// mode- and analysis-adjusted weights, and applies the priority boost.
// Returns nil when the combined score falls below the dynamic threshold.
func (e *Engine) Score(
	chunk *core.DocumentChunk,
	doc *core.Document,
	rawQuery string,
	analysis *core.QueryAnalysis,
	queryEmbedding []float32,
	mode Mode,
	baseThreshold float64,
) *core.ScoredChunk {
	content := strings.ToLower(chunk.Content)

	scores := core.SubScores{
		Semantic:         semanticScore(queryEmbedding, chunk.Embedding),
		Lexical:          lexicalScore(content, analysis.Expanded),
		ExactMatch:       exactMatchScore(content, rawQuery, analysis.Terms, analysis.KeyPhrases),
		ContextRelevance: e.contextScore(content, analysis),
		PriorityBoost:    e.priorityBoost(doc, content, analysis),
	}

	weights := AdjustWeights(BaseWeights(mode), analysis)
	combined := weights.Semantic*scores.Semantic +
		weights.Lexical*scores.Lexical +
		weights.ExactMatch*scores.ExactMatch +
		scores.ContextRelevance*contextWeight

	if analysis.Priority == core.PriorityHigh && scores.PriorityBoost > 1 {
		combined *= scores.PriorityBoost
	}

	if combined < DynamicThreshold(baseThreshold, analysis, e.minScore) {
		return nil
	}

	return &core.ScoredChunk{
		Chunk:    chunk,
		Document: doc,
		Scores:   scores,
		Combined: combined,
	}
}

// semanticScore is cosine similarity clamped to [0,1]. Absent or mismatched
// embeddings yield 0, never an error.
func semanticScore(queryEmbedding, chunkEmbedding []float32) float64 {
	sim := core.CosineSimilarity(queryEmbedding, chunkEmbedding)
	if sim < 0 {
		return 0
	}
	return sim
}

// lexicalScore is the weighted fraction of expanded terms present in the
// content: full substring matches count 1.0, stem-like partial matches 0.5.
func lexicalScore(content string, expanded []string) float64 {
	if len(expanded) == 0 {
		return 0
	}

	var hits float64
	for _, term := range expanded {
		if strings.Contains(content, term) {
			hits += 1.0
			continue
		}
		if stem := stemOf(term); stem != "" && strings.Contains(content, stem) {
			hits += 0.5
		}
	}
	return hits / float64(len(expanded))
}

// stemOf returns a crude prefix stem: the term minus its last two characters,
// kept only when at least four characters remain.
func stemOf(term string) string {
	if len(term) < 6 {
		return ""
	}
	return term[:len(term)-2]
}

// exactMatchScore grants 1.0 for the full raw query appearing verbatim, 0.7
// when every query term appears in the content, plus up to 0.8 proportional
// to the fraction of key phrases found. Capped at 1.0.
func exactMatchScore(content, rawQuery string, terms, keyPhrases []string) float64 {
	var score float64

	normalized := strings.ToLower(strings.TrimSpace(rawQuery))
	if normalized != "" && strings.Contains(content, normalized) {
		score = 1.0
	} else if allTermsPresent(content, terms) {
		score = 0.7
	}

	if len(keyPhrases) > 0 {
		var found int
		for _, phrase := range keyPhrases {
			if strings.Contains(content, strings.ToLower(phrase)) {
				found++
			}
		}
		score += 0.8 * float64(found) / float64(len(keyPhrases))
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// allTermsPresent reports whether every query term appears in the content.
func allTermsPresent(content string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		if !strings.Contains(content, term) {
			return false
		}
	}
	return true
}

// contextScore grants a fixed increment per context clue that the content
// satisfies, plus a bonus when the content matches the query's detected
// domain vocabulary. Capped at 1.0.
func (e *Engine) contextScore(content string, analysis *core.QueryAnalysis) float64 {
	var score float64

	for _, clue := range analysis.Clues {
		if clue == core.ClueSpecificEntity {
			for _, entity := range analysis.Entities {
				if strings.Contains(content, strings.ToLower(entity)) {
					score += clueIncrement
					break
				}
			}
			continue
		}
		if pattern := query.ClueContentPattern(clue); pattern != nil && pattern.MatchString(content) {
			score += clueIncrement
		}
	}

	for _, domain := range analysis.Domains {
		matched := false
		for _, word := range e.domainVocab[domain] {
			if strings.Contains(content, strings.ToLower(word)) {
				matched = true
				break
			}
		}
		if matched {
			score += domainBonus
			break
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// priorityBoost starts at 1.0 and adds bonuses for critical document names
// and for query entities co-occurring in the content. Capped at boostCap.
func (e *Engine) priorityBoost(doc *core.Document, content string, analysis *core.QueryAnalysis) float64 {
	boost := 1.0

	for _, re := range e.criticalDoc {
		if re.MatchString(doc.Name) {
			boost += 1.0
			break
		}
	}

	for _, entity := range analysis.Entities {
		if strings.Contains(content, strings.ToLower(entity)) {
			boost += 0.5
		}
	}

	if boost > e.boostCap {
		boost = e.boostCap
	}
	return boost
}
