package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievelabs/sieve/core"
)

func TestMatchedTerms(t *testing.T) {
	content := "joao's base salary and annual compensation review"
	expanded := []string{"joao", "salary", "bonus", "compensation"}

	matched := matchedTerms(content, expanded)
	assert.Equal(t, []string{"joao", "salary", "compensation"}, matched)

	assert.Nil(t, matchedTerms("nothing relevant here", []string{"salary"}))
}

func TestBestExcerpt(t *testing.T) {
	t.Run("picks the densest sentence", func(t *testing.T) {
		content := "The office closes at six. Joao's salary is reviewed each April. Parking is free."
		excerpt := bestExcerpt(content, []string{"joao", "salary"})
		assert.Equal(t, "Joao's salary is reviewed each April", excerpt)
	})

	t.Run("falls back to first sentence without matches", func(t *testing.T) {
		content := "First sentence here. Second sentence there."
		assert.Equal(t, "First sentence here", bestExcerpt(content, nil))
	})

	t.Run("truncates long sentences", func(t *testing.T) {
		long := strings.Repeat("salary ", 100)
		excerpt := bestExcerpt(long, []string{"salary"})
		assert.LessOrEqual(t, len([]rune(excerpt)), excerptLimit)
		assert.True(t, strings.HasSuffix(excerpt, "..."))
	})
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, core.ConfidenceHigh, confidenceFor(0.75))
	assert.Equal(t, core.ConfidenceHigh, confidenceFor(1.6))
	assert.Equal(t, core.ConfidenceMedium, confidenceFor(0.45))
	assert.Equal(t, core.ConfidenceMedium, confidenceFor(0.74))
	assert.Equal(t, core.ConfidenceLow, confidenceFor(0.44))
	assert.Equal(t, core.ConfidenceLow, confidenceFor(0))
}

func TestExplain(t *testing.T) {
	doc := &core.Document{Id: "d1", Name: "Employee Agreement 2025"}
	chunk := &core.DocumentChunk{Id: "d1-0", DocumentId: "d1"}

	t.Run("weak match fallback", func(t *testing.T) {
		sc := &core.ScoredChunk{Chunk: chunk, Document: doc}
		assert.Equal(t, "weak overall match", explain(sc, nil, &core.QueryAnalysis{}))
	})

	t.Run("mentions matched terms and boost", func(t *testing.T) {
		sc := &core.ScoredChunk{
			Chunk:    chunk,
			Document: doc,
			Scores:   core.SubScores{Semantic: 0.8, ExactMatch: 0.9, ContextRelevance: 0.2, PriorityBoost: 2.5},
		}
		analysis := &core.QueryAnalysis{
			Priority: core.PriorityHigh,
			Expanded: []string{"joao", "salary", "compensation"},
		}

		text := explain(sc, []string{"joao", "salary"}, analysis)
		assert.Contains(t, text, "strong semantic similarity")
		assert.Contains(t, text, "matched 2 of 3 query terms")
		assert.Contains(t, text, "exact phrase match")
		assert.Contains(t, text, "high-priority")
	})
}

func TestEnrich(t *testing.T) {
	doc := &core.Document{Id: "d1", Name: "Employee Agreement 2025", Type: "contract"}
	chunk := &core.DocumentChunk{
		Id:         "d1-2",
		DocumentId: "d1",
		Content:    "Joao is Director of FP&A, base salary €95,000. Reviewed annually.",
		Index:      2,
	}
	sc := &core.ScoredChunk{
		Chunk:    chunk,
		Document: doc,
		Scores:   core.SubScores{ExactMatch: 0.7, Lexical: 0.6},
		Combined: 0.9,
	}
	analysis := &core.QueryAnalysis{Expanded: []string{"joao", "salary"}}

	result := enrich(sc, analysis)
	assert.Equal(t, chunk.Content, result.Content)
	assert.Equal(t, 0.9, result.Score)
	assert.Equal(t, core.ConfidenceHigh, result.Confidence)
	assert.Equal(t, []string{"joao", "salary"}, result.MatchedTerms)
	assert.Equal(t, "d1", result.DocumentId)
	assert.Equal(t, "Employee Agreement 2025", result.DocumentName)
	assert.Equal(t, "contract", result.DocumentType)
	assert.Equal(t, "d1-2", result.ChunkId)
	assert.Equal(t, 2, result.ChunkIndex)
	require.NotEmpty(t, result.RelevantText)
	assert.Contains(t, result.RelevantText, "salary")
}
