package cache

import "sync/atomic"

// Stats is a point-in-time snapshot of cache effectiveness. GetExact records
// hits only and leaves its misses to the follow-up Get, so a probe-then-Get
// lookup contributes exactly one event to these counters.
type Stats struct {
	FastHits    int64
	DurableHits int64
	Misses      int64
}

// HitRate is the fraction of lookups answered by either tier.
func (s Stats) HitRate() float64 {
	total := s.FastHits + s.DurableHits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.FastHits+s.DurableHits) / float64(total)
}

// tierCounters tracks hits and misses with atomic counters so concurrent
// searches never contend on a lock for bookkeeping.
type tierCounters struct {
	fastHits    atomic.Int64
	durableHits atomic.Int64
	misses      atomic.Int64
}

func (t *tierCounters) fastHit()    { t.fastHits.Add(1) }
func (t *tierCounters) durableHit() { t.durableHits.Add(1) }
func (t *tierCounters) miss()       { t.misses.Add(1) }

func (t *tierCounters) snapshot() Stats {
	return Stats{
		FastHits:    t.fastHits.Load(),
		DurableHits: t.durableHits.Load(),
		Misses:      t.misses.Load(),
	}
}
