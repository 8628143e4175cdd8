package sieve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievelabs/sieve/ai/mock"
	"github.com/sievelabs/sieve/core"
	"github.com/sievelabs/sieve/search"
)

type staticSource struct {
	docs []*core.Document
}

func (s *staticSource) ListReadyDocuments(ctx context.Context) ([]*core.Document, error) {
	return s.docs, nil
}

func testSource() *staticSource {
	return &staticSource{docs: []*core.Document{
		{
			Id:    "doc-agreement",
			Name:  "Employee Agreement 2025",
			Type:  "contract",
			State: core.DocumentStateReady,
			Chunks: []core.DocumentChunk{
				{Id: "doc-agreement-0", DocumentId: "doc-agreement", Index: 0,
					Content: "Joao is Director of FP&A, base salary €95,000."},
			},
		},
		{
			Id:    "doc-handbook",
			Name:  "Company Handbook",
			Type:  "policy",
			State: core.DocumentStateReady,
			Chunks: []core.DocumentChunk{
				{Id: "doc-handbook-0", DocumentId: "doc-handbook", Index: 0,
					Content: "Salary bands are published each January."},
			},
		},
	}}
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	opts = append([]EngineOption{
		WithInMemoryStore(),
		WithEmbedder(mock.NewEmbedder()),
	}, opts...)

	engine, err := NewEngine("", testSource(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func TestEngineSearch(t *testing.T) {
	engine := newTestEngine(t)

	results, err := engine.Search(context.Background(), "What is Joao's salary?", nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	top := results[0]
	assert.Equal(t, "Employee Agreement 2025", top.DocumentName)
	assert.Equal(t, core.ConfidenceHigh, top.Confidence)
	assert.Contains(t, top.MatchedTerms, "salary")
	assert.Contains(t, top.MatchedTerms, "joao")
}

func TestEngineCacheLifecycle(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Search(ctx, "salary bands", nil)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	_, err = engine.Search(ctx, "salary bands", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), engine.Metrics().CacheHits)

	// Invalidation by document drops the cached entry.
	engine.InvalidateDocuments(ctx, []string{"doc-handbook"})
	_, err = engine.Search(ctx, "salary bands", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), engine.Metrics().CacheHits)

	require.NoError(t, engine.ClearCache(ctx))
	stats := engine.CacheStats()
	assert.GreaterOrEqual(t, stats.FastHits+stats.DurableHits, int64(1))
}

func TestEngineFeedback(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.RecordFeedback(ctx, "joao salary", "doc-agreement", 5))

	records, err := engine.Orchestrator().ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "joao salary", records[0].Query)
	assert.Equal(t, 5, records[0].Rating)
}

func TestEngineSearchOptions(t *testing.T) {
	engine := newTestEngine(t, WithSearchOptions(search.WithPoolSize(2)))

	results, err := engine.Search(context.Background(), "salary", &search.Options{Limit: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 1)
}
