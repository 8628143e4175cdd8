package search

import (
	"sync/atomic"
	"time"
)

// Metrics is a point-in-time snapshot of orchestrator activity.
type Metrics struct {
	TotalQueries    int64
	CacheHits       int64
	DegradedQueries int64
	AverageLatency  time.Duration
}

// CacheHitRate is the fraction of queries answered from the cache.
func (m Metrics) CacheHitRate() float64 {
	if m.TotalQueries == 0 {
		return 0
	}
	return float64(m.CacheHits) / float64(m.TotalQueries)
}

// queryCounters accumulates per-query metrics with atomic counters so
// concurrent searches never serialize on bookkeeping.
type queryCounters struct {
	totalQueries atomic.Int64
	cacheHits    atomic.Int64
	degraded     atomic.Int64
	latencyNanos atomic.Int64
}

func (q *queryCounters) record(elapsed time.Duration, cacheHit, degraded bool) {
	q.totalQueries.Add(1)
	q.latencyNanos.Add(int64(elapsed))
	if cacheHit {
		q.cacheHits.Add(1)
	}
	if degraded {
		q.degraded.Add(1)
	}
}

func (q *queryCounters) snapshot() Metrics {
	total := q.totalQueries.Load()
	m := Metrics{
		TotalQueries:    total,
		CacheHits:       q.cacheHits.Load(),
		DegradedQueries: q.degraded.Load(),
	}
	if total > 0 {
		m.AverageLatency = time.Duration(q.latencyNanos.Load() / total)
	}
	return m
}
