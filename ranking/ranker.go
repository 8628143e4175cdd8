package ranking

import (
	"slices"
	"strings"

	"github.com/sievelabs/sieve/core"
)

// Config holds the diversity and coverage knobs.
type Config struct {
	// DocCap / HighPriorityDocCap bound how many results one document may
	// contribute during the diversity pass.
	DocCap             int
	HighPriorityDocCap int

	// HighPriorityFloor is the minimum diversified-set size below which the
	// pass backfills with remaining top-scored results. It applies to
	// high-priority queries only; for everything else the per-document cap
	// is a hard guarantee. A floor for every query would let one large
	// document exceed the cap whenever few documents qualify, so recall
	// backfill is reserved for the queries where losing a chunk costs most.
	HighPriorityFloor int

	// CandidateCap bounds the total candidate set after backfill.
	CandidateCap int

	// CoverageDocs is how many distinct documents the coverage pass targets.
	CoverageDocs int
}

// DefaultConfig returns the standard ranking configuration.
func DefaultConfig() *Config {
	return &Config{
		DocCap:             2,
		HighPriorityDocCap: 4,
		HighPriorityFloor:  15,
		CandidateCap:       20,
		CoverageDocs:       5,
	}
}

// Ranker orders scored chunks and enforces cross-document diversity.
//
// Naive top-K sorting concentrates every slot in one large, highly relevant
// document and starves smaller documents that are still topically relevant.
// The two-stage diversity/coverage design guarantees exploratory breadth
// without giving up precision at the top.
type Ranker struct {
	cfg *Config
}

// NewRanker creates a ranker. A nil config uses DefaultConfig.
func NewRanker(cfg *Config) *Ranker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Ranker{cfg: cfg}
}

// Rank sorts the scored chunks, applies per-document diversity caps, and
// round-robins across documents for coverage. Returns at most limit results.
// Output is deterministic for identical input sets regardless of input order.
func (r *Ranker) Rank(scored []*core.ScoredChunk, analysis *core.QueryAnalysis, limit int) []*core.ScoredChunk {
	if limit <= 0 || len(scored) == 0 {
		return nil
	}

	sorted := make([]*core.ScoredChunk, len(scored))
	copy(sorted, scored)
	sortScored(sorted)

	candidates := r.diversify(sorted, analysis.Priority)
	return r.coverage(candidates, limit)
}

// sortScored orders by combined score descending with a total tie-break:
// higher document id first, then lower chunk index. The total order makes
// ranking independent of the concurrent collection order upstream.
func sortScored(scored []*core.ScoredChunk) {
	slices.SortStableFunc(scored, func(a, b *core.ScoredChunk) int {
		if a.Combined != b.Combined {
			if a.Combined > b.Combined {
				return -1
			}
			return 1
		}
		if c := strings.Compare(b.Document.Id, a.Document.Id); c != 0 {
			return c
		}
		return a.Chunk.Index - b.Chunk.Index
	})
}

// diversify walks the sorted list accepting a result only while its document
// is under the per-document cap. For high-priority queries only, it backfills
// from the skipped remainder when the diversified set is under the floor:
// business-critical queries must not lose recall to the cap, while for
// everything else the cap is a hard guarantee.
func (r *Ranker) diversify(sorted []*core.ScoredChunk, priority core.Priority) []*core.ScoredChunk {
	docCap := r.cfg.DocCap
	floor := 0
	if priority == core.PriorityHigh {
		docCap = r.cfg.HighPriorityDocCap
		floor = r.cfg.HighPriorityFloor
	}

	perDoc := make(map[string]int)
	taken := make(map[*core.ScoredChunk]bool)
	diversified := make([]*core.ScoredChunk, 0, len(sorted))

	for _, sc := range sorted {
		if perDoc[sc.Document.Id] >= docCap {
			continue
		}
		perDoc[sc.Document.Id]++
		taken[sc] = true
		diversified = append(diversified, sc)
	}

	if len(diversified) < floor {
		for _, sc := range sorted {
			if len(diversified) >= r.cfg.CandidateCap {
				break
			}
			if !taken[sc] {
				taken[sc] = true
				diversified = append(diversified, sc)
			}
		}
	}

	if len(diversified) > r.cfg.CandidateCap {
		diversified = diversified[:r.cfg.CandidateCap]
	}
	return diversified
}

// coverage groups candidates by document (in order of each document's best
// candidate) and round-robins across the groups until limit results are
// collected or every group is exhausted. A document leaves the rotation once
// its own pool is consumed. Rotation width is capped at CoverageDocs so a
// long tail of barely relevant documents cannot dilute the result set;
// overflow candidates are kept rather than dropped, queued in score order
// behind the last rotated group so they surface only when slots remain after
// the rotated documents have been represented.
func (r *Ranker) coverage(candidates []*core.ScoredChunk, limit int) []*core.ScoredChunk {
	if len(candidates) == 0 {
		return nil
	}

	var docOrder []string
	groups := make(map[string][]*core.ScoredChunk)
	for _, sc := range candidates {
		id := sc.Document.Id
		if _, ok := groups[id]; !ok {
			docOrder = append(docOrder, id)
		}
		groups[id] = append(groups[id], sc)
	}

	if len(docOrder) > r.cfg.CoverageDocs {
		// Overflow documents fold into the last rotated group's tail via
		// the plain sorted order below.
		overflow := docOrder[r.cfg.CoverageDocs:]
		docOrder = docOrder[:r.cfg.CoverageDocs]
		var tail []*core.ScoredChunk
		for _, id := range overflow {
			tail = append(tail, groups[id]...)
		}
		sortScored(tail)
		last := docOrder[len(docOrder)-1]
		groups[last] = append(groups[last], tail...)
	}

	results := make([]*core.ScoredChunk, 0, limit)
	for len(results) < limit {
		progressed := false
		for _, id := range docOrder {
			pool := groups[id]
			if len(pool) == 0 {
				continue
			}
			groups[id] = pool[1:]
			results = append(results, pool[0])
			progressed = true
			if len(results) >= limit {
				break
			}
		}
		if !progressed {
			break
		}
	}
	return results
}
