package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sievelabs/sieve/core"
	"github.com/sievelabs/sieve/storage"
)

const (
	// entryPrefix namespaces semantic-cache entries in the durable store.
	entryPrefix = "scache"

	defaultTTL                 = 30 * time.Minute
	defaultFastCapacity        = 128
	defaultSimilarityThreshold = 0.95
)

// Config holds the semantic cache tuning knobs. The similarity threshold and
// TTL are hand-tuned values; they are configuration, not constants, because
// their exact values are not load-bearing.
type Config struct {
	// TTL is how long an entry stays valid in either tier.
	TTL time.Duration

	// FastCapacity bounds the in-memory tier; least recently used entries
	// are evicted beyond it.
	FastCapacity int

	// SimilarityThreshold is the minimum cosine similarity between a query
	// embedding and a stored entry's embedding for an approximate hit.
	// Around 0.95 and above means "the same query, rephrased".
	SimilarityThreshold float64
}

// DefaultConfig returns the standard cache configuration.
func DefaultConfig() *Config {
	return &Config{
		TTL:                 defaultTTL,
		FastCapacity:        defaultFastCapacity,
		SimilarityThreshold: defaultSimilarityThreshold,
	}
}

// SemanticCache is a two-tier result cache keyed by query semantics rather
// than exact text. The fast tier is a bounded in-memory LRU; the durable tier
// is a storage.CacheStore that survives restarts.
//
// Each entry is conceptually in one of four states: absent, fast-only,
// durable-only, or both. Set writes both tiers (durable best-effort), so the
// normal post-write state is "both". LRU eviction degrades an entry to
// durable-only; a Get that finds it there promotes it back to "both". Expiry
// and invalidation move entries to absent in both tiers.
type SemanticCache struct {
	cfg    *Config
	fast   *lru.Cache[core.ID, *core.CacheEntry]
	store  storage.CacheStore
	stats  tierCounters
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a SemanticCache.
type Option func(*SemanticCache) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *SemanticCache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithClock overrides the time source. Used by tests to exercise TTL expiry
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *SemanticCache) error {
		if now == nil {
			return ErrClockRequired
		}
		c.now = now
		return nil
	}
}

// New creates a semantic cache. A nil store disables the durable tier; the
// cache then runs fast-tier only, which is how tests and cache-less
// deployments use it. A nil config uses DefaultConfig.
func New(store storage.CacheStore, cfg *Config, opts ...Option) (*SemanticCache, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.FastCapacity <= 0 || cfg.TTL <= 0 || cfg.SimilarityThreshold <= 0 {
		return nil, ErrInvalidConfig
	}

	fast, err := lru.New[core.ID, *core.CacheEntry](cfg.FastCapacity)
	if err != nil {
		return nil, err
	}

	c := &SemanticCache{
		cfg:    cfg,
		fast:   fast,
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// GetExact probes both tiers for an exact text match only, without an
// embedding. It exists so callers can try the cache before paying for an
// embedding; a probe miss is not counted in stats, because the caller is
// expected to follow up with a full Get. Under that probe-then-Get pattern
// every lookup records exactly one stats event: the probe counts the hit,
// or the follow-up Get counts the hit or the miss.
func (c *SemanticCache) GetExact(ctx context.Context, query string) []core.SearchResult {
	now := c.now()
	key := keyFor(query)

	if entry, ok := c.fast.Get(key); ok {
		if entry.Expired(now) {
			c.fast.Remove(key)
		} else {
			c.stats.fastHit()
			return entry.Results
		}
	}

	if c.store == nil {
		return nil
	}

	value, err := c.store.Get(ctx, entryKey(key))
	if err != nil {
		if err != storage.ErrNotFound {
			c.logger.Warn("durable cache read failed", "err", err)
		}
		return nil
	}
	entry, err := storage.UnmarshalCacheEntry(value)
	if err != nil || entry.Expired(now) {
		return nil
	}
	c.promote(entry)
	c.stats.durableHit()
	return entry.Results
}

// Get returns cached results for the query, or nil on a miss.
//
// Lookup order: exact text match in the fast tier, approximate match in the
// fast tier, exact then approximate match in the durable tier. A durable-tier
// hit is promoted into the fast tier. Durable-tier failures are logged and
// treated as a miss; they never fail the caller.
func (c *SemanticCache) Get(ctx context.Context, query string, embedding []float32) []core.SearchResult {
	now := c.now()
	key := keyFor(query)

	if entry, ok := c.fast.Get(key); ok {
		if entry.Expired(now) {
			c.fast.Remove(key)
		} else {
			c.stats.fastHit()
			return entry.Results
		}
	}

	if entry := c.bestFastMatch(embedding, now); entry != nil {
		c.stats.fastHit()
		return entry.Results
	}

	if c.store == nil {
		c.stats.miss()
		return nil
	}

	if entry := c.durableLookup(ctx, key, embedding, now); entry != nil {
		c.promote(entry)
		c.stats.durableHit()
		return entry.Results
	}

	c.stats.miss()
	return nil
}

// Set caches results for the query. The fast tier is always written; the
// durable tier is best-effort. An existing entry for the same query is
// overwritten whole, so readers never observe a partial entry.
func (c *SemanticCache) Set(ctx context.Context, query string, embedding []float32, results []core.SearchResult, documentIds []string) {
	entry := &core.CacheEntry{
		Query:       normalizeQuery(query),
		Embedding:   embedding,
		Results:     results,
		DocumentIds: documentIds,
		CreatedAt:   c.now(),
		TTL:         c.cfg.TTL,
	}

	key := keyFor(query)
	c.fast.Add(key, entry)

	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, entryKey(key), storage.MarshalCacheEntry(entry), c.cfg.TTL); err != nil {
		c.logger.Warn("durable cache write failed", "err", err)
	}
}

// InvalidateByDocuments removes every entry whose dependency set intersects
// documentIds, in both tiers. Call it whenever a document is reprocessed,
// deleted, or its chunks change.
func (c *SemanticCache) InvalidateByDocuments(ctx context.Context, documentIds []string) {
	if len(documentIds) == 0 {
		return
	}
	ids := make(map[string]struct{}, len(documentIds))
	for _, id := range documentIds {
		ids[id] = struct{}{}
	}

	for _, key := range c.fast.Keys() {
		if entry, ok := c.fast.Peek(key); ok && entry.DependsOnAny(ids) {
			c.fast.Remove(key)
		}
	}

	if c.store == nil {
		return
	}
	var stale [][]byte
	err := c.store.Scan(ctx, []byte(entryPrefix+":"), func(key, value []byte) error {
		entry, err := storage.UnmarshalCacheEntry(value)
		if err != nil {
			// Unreadable entries are dropped along with the stale ones.
			stale = append(stale, key)
			return nil
		}
		if entry.DependsOnAny(ids) {
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("durable cache invalidation scan failed", "err", err)
		return
	}
	if len(stale) > 0 {
		if err := c.store.Delete(ctx, stale...); err != nil {
			c.logger.Warn("durable cache invalidation delete failed", "err", err)
		}
	}
}

// Clear empties both tiers.
func (c *SemanticCache) Clear(ctx context.Context) error {
	c.fast.Purge()
	if c.store == nil {
		return nil
	}
	return c.store.DeletePrefix(ctx, []byte(entryPrefix+":"))
}

// Stats returns hit/miss counters per tier and the combined hit rate.
func (c *SemanticCache) Stats() Stats {
	return c.stats.snapshot()
}

// bestFastMatch scans the fast tier for the live entry most similar to the
// query embedding, within the similarity threshold.
func (c *SemanticCache) bestFastMatch(embedding []float32, now time.Time) *core.CacheEntry {
	if len(embedding) == 0 {
		return nil
	}

	var best *core.CacheEntry
	bestSim := c.cfg.SimilarityThreshold
	for _, key := range c.fast.Keys() {
		entry, ok := c.fast.Peek(key)
		if !ok || entry.Expired(now) {
			continue
		}
		if sim := core.CosineSimilarity(embedding, entry.Embedding); sim >= bestSim {
			best = entry
			bestSim = sim
		}
	}
	return best
}

// durableLookup checks the durable tier: exact key first, then a similarity
// scan. Failures degrade to a miss.
func (c *SemanticCache) durableLookup(ctx context.Context, key core.ID, embedding []float32, now time.Time) *core.CacheEntry {
	value, err := c.store.Get(ctx, entryKey(key))
	if err == nil {
		if entry, err := storage.UnmarshalCacheEntry(value); err == nil && !entry.Expired(now) {
			return entry
		}
	} else if err != storage.ErrNotFound {
		c.logger.Warn("durable cache read failed", "err", err)
		return nil
	}

	if len(embedding) == 0 {
		return nil
	}

	var best *core.CacheEntry
	bestSim := c.cfg.SimilarityThreshold
	err = c.store.Scan(ctx, []byte(entryPrefix+":"), func(_, value []byte) error {
		entry, err := storage.UnmarshalCacheEntry(value)
		if err != nil {
			return nil
		}
		if entry.Expired(now) {
			return nil
		}
		if sim := core.CosineSimilarity(embedding, entry.Embedding); sim >= bestSim {
			best = entry
			bestSim = sim
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("durable cache scan failed", "err", err)
		return nil
	}
	return best
}

// promote copies a durable-tier entry into the fast tier
// (durable-only -> both).
func (c *SemanticCache) promote(entry *core.CacheEntry) {
	c.fast.Add(keyFor(entry.Query), entry)
}

// keyFor derives the content-based cache key for a query.
func keyFor(query string) core.ID {
	return core.IDFromContent(normalizeQuery(query))
}

// normalizeQuery canonicalizes query text for exact-match keying.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// entryKey builds the durable-store key for a cache entry.
func entryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", entryPrefix, id))
}
