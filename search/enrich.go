package search

import (
	"fmt"
	"strings"

	"github.com/sievelabs/sieve/core"
)

const (
	// excerptLimit caps the relevant-text excerpt length in runes.
	excerptLimit = 300

	// confidenceHigh and confidenceMedium are the combined-score cutoffs
	// for the confidence tiers.
	confidenceHigh   = 0.75
	confidenceMedium = 0.45
)

// enrich converts a ranked chunk into a caller-facing result: matched terms,
// best excerpt, explanation, and confidence tier.
func enrich(sc *core.ScoredChunk, analysis *core.QueryAnalysis) core.SearchResult {
	content := strings.ToLower(sc.Chunk.Content)
	matched := matchedTerms(content, analysis.Expanded)

	return core.SearchResult{
		Content:      sc.Chunk.Content,
		Score:        sc.Combined,
		RelevantText: bestExcerpt(sc.Chunk.Content, matched),
		MatchedTerms: matched,
		Explanation:  explain(sc, matched, analysis),
		Confidence:   confidenceFor(sc.Combined),
		DocumentId:   sc.Document.Id,
		DocumentName: sc.Document.Name,
		DocumentType: sc.Document.Type,
		ChunkId:      sc.Chunk.Id,
		ChunkIndex:   sc.Chunk.Index,
	}
}

// matchedTerms returns the expanded terms that appear in the lowercased
// content, preserving expansion order.
func matchedTerms(content string, expanded []string) []string {
	var matched []string
	for _, term := range expanded {
		if strings.Contains(content, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// bestExcerpt picks the sentence with the most matched-term hits and trims it
// to the excerpt limit. Falls back to the head of the content when no sentence
// matches anything.
func bestExcerpt(content string, matched []string) string {
	sentences := splitSentences(content)
	if len(sentences) == 0 {
		return truncate(strings.TrimSpace(content), excerptLimit)
	}

	best := sentences[0]
	bestHits := -1
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		hits := 0
		for _, term := range matched {
			if strings.Contains(lower, term) {
				hits++
			}
		}
		if hits > bestHits {
			best = sentence
			bestHits = hits
		}
	}
	return truncate(strings.TrimSpace(best), excerptLimit)
}

// splitSentences breaks text on sentence-ending punctuation and newlines.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// truncate cuts s to at most limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// explain builds a short human-readable account of why the chunk matched.
func explain(sc *core.ScoredChunk, matched []string, analysis *core.QueryAnalysis) string {
	var parts []string

	switch {
	case sc.Scores.Semantic >= 0.7:
		parts = append(parts, "strong semantic similarity")
	case sc.Scores.Semantic >= 0.4:
		parts = append(parts, "moderate semantic similarity")
	}

	if len(matched) > 0 {
		parts = append(parts, fmt.Sprintf("matched %d of %d query terms", len(matched), len(analysis.Expanded)))
	}

	if sc.Scores.ExactMatch >= 0.8 {
		parts = append(parts, "contains an exact phrase match")
	}

	if sc.Scores.ContextRelevance > 0 {
		parts = append(parts, "relevant to the query context")
	}

	if analysis.Priority == core.PriorityHigh && sc.Scores.PriorityBoost > 1 {
		parts = append(parts, "boosted as a high-priority match")
	}

	if len(parts) == 0 {
		return "weak overall match"
	}
	return strings.Join(parts, "; ")
}

// confidenceFor maps a combined score to its confidence tier.
func confidenceFor(score float64) core.Confidence {
	switch {
	case score >= confidenceHigh:
		return core.ConfidenceHigh
	case score >= confidenceMedium:
		return core.ConfidenceMedium
	default:
		return core.ConfidenceLow
	}
}
