package search

import "github.com/sievelabs/sieve/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	CacheHit(query string, results []core.SearchResult)
	AfterAnalysis(analysis *core.QueryAnalysis)
	EmbeddingDegraded(err error)
	AfterScoring(scored []*core.ScoredChunk)
	AfterRanking(ranked []*core.ScoredChunk)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) CacheHit(_ string, _ []core.SearchResult) {}
func (n *noopMonitor) AfterAnalysis(_ *core.QueryAnalysis)     {}
func (n *noopMonitor) EmbeddingDegraded(_ error)               {}
func (n *noopMonitor) AfterScoring(_ []*core.ScoredChunk)      {}
func (n *noopMonitor) AfterRanking(_ []*core.ScoredChunk)      {}
func (n *noopMonitor) Finish(_ []core.SearchResult)            {}
