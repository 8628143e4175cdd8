package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievelabs/sieve/core"
	"github.com/sievelabs/sieve/query"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *query.Analyzer) {
	t.Helper()
	analyzer, err := query.NewAnalyzer()
	require.NoError(t, err)
	engine, err := NewEngine(analyzer.Rules(), opts...)
	require.NoError(t, err)
	return engine, analyzer
}

func TestNewEngine(t *testing.T) {
	t.Run("nil rules rejected", func(t *testing.T) {
		_, err := NewEngine(nil)
		assert.ErrorIs(t, err, ErrRuleSetRequired)
	})

	t.Run("boost cap below one rejected", func(t *testing.T) {
		analyzer, err := query.NewAnalyzer()
		require.NoError(t, err)
		_, err = NewEngine(analyzer.Rules(), WithBoostCap(0.5))
		assert.ErrorIs(t, err, ErrInvalidBoostCap)
	})
}

func TestScoreRelevantChunk(t *testing.T) {
	engine, analyzer := newTestEngine(t)

	doc := &core.Document{
		Id:    "d1",
		Name:  "Employee Agreement 2025",
		Type:  "contract",
		State: core.DocumentStateReady,
	}
	chunk := &core.DocumentChunk{
		Id:         "d1-0",
		DocumentId: "d1",
		Content:    "Joao is Director of FP&A for the Nordic region, base salary €95,000",
		Index:      0,
	}

	rawQuery := "What is Joao's salary?"
	analysis := analyzer.Analyze(rawQuery)

	scored := engine.Score(chunk, doc, rawQuery, analysis, nil, ModePrecise, 0.3)
	require.NotNil(t, scored)

	assert.Equal(t, chunk, scored.Chunk)
	assert.Equal(t, doc, scored.Document)

	// Every query term appears in the chunk.
	assert.InDelta(t, 0.7, scored.Scores.ExactMatch, 1e-9)
	assert.Greater(t, scored.Scores.Lexical, 0.0)
	assert.Greater(t, scored.Scores.ContextRelevance, 0.0)
	// Critical document name plus entity co-occurrence.
	assert.Greater(t, scored.Scores.PriorityBoost, 2.0)
	// Boost applies because the query is high priority.
	assert.Greater(t, scored.Combined, 0.7)
}

func TestScoreIrrelevantChunkDropped(t *testing.T) {
	engine, analyzer := newTestEngine(t)

	doc := &core.Document{Id: "d2", Name: "Lunch Menu", State: core.DocumentStateReady}
	chunk := &core.DocumentChunk{Id: "d2-0", DocumentId: "d2", Content: "Tuesday we serve pasta."}

	analysis := analyzer.Analyze("database migration runbook")
	scored := engine.Score(chunk, doc, "database migration runbook", analysis, nil, ModeBalanced, 0.3)
	assert.Nil(t, scored)
}

func TestScoreThresholdMonotonicity(t *testing.T) {
	engine, analyzer := newTestEngine(t)

	doc := &core.Document{Id: "d1", Name: "Notes", State: core.DocumentStateReady}
	chunk := &core.DocumentChunk{Id: "d1-0", DocumentId: "d1", Content: "the migration finished without incident"}

	rawQuery := "migration status"
	analysis := analyzer.Analyze(rawQuery)

	low := engine.Score(chunk, doc, rawQuery, analysis, nil, ModeLexical, 0.0)
	require.NotNil(t, low)

	// Raising the base threshold can only remove results, never add them.
	survivesLow := low != nil
	high := engine.Score(chunk, doc, rawQuery, analysis, nil, ModeLexical, 0.99)
	if high != nil {
		assert.True(t, survivesLow)
	}
}

func TestSemanticScoreFromEmbeddings(t *testing.T) {
	engine, analyzer := newTestEngine(t)

	embedding := []float32{0.6, 0.8, 0}
	doc := &core.Document{Id: "d1", Name: "Notes", State: core.DocumentStateReady}
	chunk := &core.DocumentChunk{
		Id: "d1-0", DocumentId: "d1",
		Content:   "completely unrelated text about gardening tulips",
		Embedding: embedding,
	}

	rawQuery := "gardening"
	analysis := analyzer.Analyze(rawQuery)

	scored := engine.Score(chunk, doc, rawQuery, analysis, embedding, ModeSemantic, 0.0)
	require.NotNil(t, scored)
	assert.InDelta(t, 1.0, scored.Scores.Semantic, 1e-6)

	// Missing query embedding degrades the semantic sub-score to zero.
	degraded := engine.Score(chunk, doc, rawQuery, analysis, nil, ModeSemantic, 0.0)
	require.NotNil(t, degraded)
	assert.Zero(t, degraded.Scores.Semantic)
}

func TestPriorityBoostCap(t *testing.T) {
	engine, analyzer := newTestEngine(t, WithBoostCap(1.5))

	doc := &core.Document{Id: "d1", Name: "Employee Agreement 2025", State: core.DocumentStateReady}
	chunk := &core.DocumentChunk{
		Id: "d1-0", DocumentId: "d1",
		Content: "Joao and Astrid and Henrik discuss salary at the Employee Agreement review",
	}

	rawQuery := "What is Joao's salary?"
	analysis := analyzer.Analyze(rawQuery)

	scored := engine.Score(chunk, doc, rawQuery, analysis, nil, ModeBalanced, 0.0)
	require.NotNil(t, scored)
	assert.LessOrEqual(t, scored.Scores.PriorityBoost, 1.5)
}

func TestScoreDeterminism(t *testing.T) {
	engine, analyzer := newTestEngine(t)

	doc := &core.Document{Id: "d1", Name: "Payroll Overview", State: core.DocumentStateReady}
	chunk := &core.DocumentChunk{
		Id: "d1-0", DocumentId: "d1",
		Content:   "payroll runs on the 25th of each month",
		Embedding: []float32{0.3, 0.1, 0.9},
	}

	rawQuery := "when does payroll run"
	analysis := analyzer.Analyze(rawQuery)
	embedding := []float32{0.2, 0.4, 0.7}

	first := engine.Score(chunk, doc, rawQuery, analysis, embedding, ModeBalanced, 0.0)
	second := engine.Score(chunk, doc, rawQuery, analysis, embedding, ModeBalanced, 0.0)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Combined, second.Combined)
}
