package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/sievelabs/sieve/ai"
	"github.com/sievelabs/sieve/cache"
	"github.com/sievelabs/sieve/core"
	"github.com/sievelabs/sieve/query"
	"github.com/sievelabs/sieve/ranking"
	"github.com/sievelabs/sieve/scoring"
	"github.com/sievelabs/sieve/storage"
)

// defaultEmbedTimeout bounds the embedding call for the query vector.
// On expiry the search degrades to lexical scoring instead of blocking.
const defaultEmbedTimeout = 10 * time.Second

// Orchestrator runs the full search pipeline: cache lookup, query analysis,
// embedding, parallel scoring over the corpus, ranking, enrichment, and cache
// write-back. It is constructed once per process and safe for concurrent use.
type Orchestrator struct {
	source       storage.DocumentSource
	embedder     ai.Embedder
	cache        *cache.SemanticCache
	analyzer     *query.Analyzer
	engine       *scoring.Engine
	ranker       *ranking.Ranker
	pool         *ants.Pool
	feedback     *FeedbackRecorder
	embedTimeout time.Duration
	counters     queryCounters
	logger       *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithAnalyzer replaces the default query analyzer. The scoring engine is
// rebuilt from the analyzer's rule set so both see the same rules.
func WithAnalyzer(analyzer *query.Analyzer) Option {
	return func(o *Orchestrator) error {
		if analyzer == nil {
			return query.ErrRuleSetRequired
		}
		engine, err := scoring.NewEngine(analyzer.Rules())
		if err != nil {
			return err
		}
		o.analyzer = analyzer
		o.engine = engine
		return nil
	}
}

// WithEngine replaces the default scoring engine.
// A nil engine keeps the default.
func WithEngine(engine *scoring.Engine) Option {
	return func(o *Orchestrator) error {
		if engine != nil {
			o.engine = engine
		}
		return nil
	}
}

// WithRanker replaces the default ranker.
// A nil ranker keeps the default.
func WithRanker(ranker *ranking.Ranker) Option {
	return func(o *Orchestrator) error {
		if ranker != nil {
			o.ranker = ranker
		}
		return nil
	}
}

// WithPoolSize sets the worker pool size for parallel scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithEmbedTimeout bounds the query-embedding call.
// Default is 10 seconds.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) error {
		if timeout > 0 {
			o.embedTimeout = timeout
		}
		return nil
	}
}

// WithFeedbackStore enables RecordFeedback persistence.
func WithFeedbackStore(store storage.CacheStore) Option {
	return func(o *Orchestrator) error {
		if store == nil {
			o.feedback = nil
			return nil
		}
		recorder, err := NewFeedbackRecorder(store)
		if err != nil {
			return err
		}
		o.feedback = recorder
		return nil
	}
}

// NewOrchestrator creates a search orchestrator. The cache may be nil, which
// disables result caching entirely.
func NewOrchestrator(
	source storage.DocumentSource,
	embedder ai.Embedder,
	resultCache *cache.SemanticCache,
	opts ...Option,
) (*Orchestrator, error) {
	if source == nil {
		return nil, ErrDocumentSourceRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	analyzer, err := query.NewAnalyzer()
	if err != nil {
		return nil, err
	}
	engine, err := scoring.NewEngine(analyzer.Rules())
	if err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		source:       source,
		embedder:     embedder,
		cache:        resultCache,
		analyzer:     analyzer,
		engine:       engine,
		ranker:       ranking.NewRanker(nil),
		pool:         pool,
		embedTimeout: defaultEmbedTimeout,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// Search runs the pipeline for a query and returns ranked, enriched results.
func (o *Orchestrator) Search(ctx context.Context, rawQuery string, opts *Options) ([]core.SearchResult, error) {
	return o.SearchWithMonitor(ctx, rawQuery, opts, nil)
}

// SearchWithMonitor runs Search with per-stage monitoring callbacks.
//
// An empty query is rejected. An empty corpus, an embedding failure, and any
// cache-tier failure are not errors: the first returns an empty result list
// and the latter two degrade the search. The only hard failure is the
// document source itself being unreachable.
func (o *Orchestrator) SearchWithMonitor(ctx context.Context, rawQuery string, opts *Options, monitor SearchMonitor) ([]core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	searchQuery := strings.TrimSpace(rawQuery)
	if searchQuery == "" {
		return nil, ErrEmptyQuery
	}

	options := opts.normalized()
	start := time.Now()
	monitor.Start(searchQuery)

	// Exact-text cache probe before paying for analysis or embedding.
	if o.cache != nil && options.cacheable() {
		if results := o.cache.GetExact(ctx, searchQuery); results != nil {
			return o.finishCached(searchQuery, results, options, start, monitor), nil
		}
	}

	analysis := o.analyzer.Analyze(searchQuery)
	monitor.AfterAnalysis(analysis)

	embedding, degraded := o.embedQuery(ctx, searchQuery, monitor)

	// Approximate cache lookup once the embedding is available.
	if o.cache != nil && options.cacheable() {
		if results := o.cache.Get(ctx, searchQuery, embedding); results != nil {
			return o.finishCached(searchQuery, results, options, start, monitor), nil
		}
	}

	documents, err := o.source.ListReadyDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	corpus := filterCorpus(documents, options.DocumentIds)

	scored := o.scoreCorpus(ctx, corpus, searchQuery, analysis, embedding, options)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	monitor.AfterScoring(scored)

	ranked := o.ranker.Rank(scored, analysis, options.Limit)
	monitor.AfterRanking(ranked)

	results := make([]core.SearchResult, 0, len(ranked))
	for _, sc := range ranked {
		results = append(results, enrich(sc, analysis))
	}

	if o.cache != nil && options.cacheable() && len(results) > 0 {
		o.cache.Set(ctx, searchQuery, embedding, results, corpusIds(corpus))
	}

	o.counters.record(time.Since(start), false, degraded)
	monitor.Finish(results)
	return results, nil
}

// RecordFeedback persists an advisory relevance judgment. Feedback never
// alters scoring; it is stored for future ranking work.
func (o *Orchestrator) RecordFeedback(ctx context.Context, feedbackQuery, documentId string, rating int) error {
	if o.feedback == nil {
		return ErrFeedbackStoreRequired
	}
	return o.feedback.Record(ctx, feedbackQuery, documentId, rating)
}

// ListFeedback returns all persisted feedback records.
func (o *Orchestrator) ListFeedback(ctx context.Context) ([]*core.FeedbackRecord, error) {
	if o.feedback == nil {
		return nil, ErrFeedbackStoreRequired
	}
	return o.feedback.List(ctx)
}

// Metrics returns a snapshot of orchestrator activity counters.
func (o *Orchestrator) Metrics() Metrics {
	return o.counters.snapshot()
}

// Release releases the scoring worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// finishCached completes a search served from the cache.
func (o *Orchestrator) finishCached(searchQuery string, results []core.SearchResult, options Options, start time.Time, monitor SearchMonitor) []core.SearchResult {
	monitor.CacheHit(searchQuery, results)
	if len(results) > options.Limit {
		results = results[:options.Limit]
	}
	o.counters.record(time.Since(start), true, false)
	monitor.Finish(results)
	return results
}

// embedQuery obtains the query embedding under a timeout. On failure the
// search degrades: a nil vector disables the semantic sub-score only.
func (o *Orchestrator) embedQuery(ctx context.Context, searchQuery string, monitor SearchMonitor) ([]float32, bool) {
	embedCtx, cancel := context.WithTimeout(ctx, o.embedTimeout)
	defer cancel()

	embedding, err := o.embedder.EmbedText(embedCtx, searchQuery)
	if err != nil {
		o.logger.Warn("query embedding failed, proceeding lexically", "query", searchQuery, "err", err)
		monitor.EmbeddingDegraded(err)
		return nil, true
	}
	return embedding, false
}

// scoreCorpus scores every chunk of every document, one pool task per
// document. Cancellation is checked per document, not per chunk.
func (o *Orchestrator) scoreCorpus(
	ctx context.Context,
	corpus []*core.Document,
	searchQuery string,
	analysis *core.QueryAnalysis,
	embedding []float32,
	options Options,
) []*core.ScoredChunk {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		scored []*core.ScoredChunk
	)

	for _, doc := range corpus {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			hits := o.scoreDocument(doc, searchQuery, analysis, embedding, options)
			if len(hits) == 0 {
				return
			}
			mu.Lock()
			scored = append(scored, hits...)
			mu.Unlock()
		}

		if err := o.pool.Submit(task); err != nil {
			// Pool saturated or released; score inline rather than drop.
			task()
		}
	}

	wg.Wait()
	return scored
}

func (o *Orchestrator) scoreDocument(doc *core.Document, searchQuery string, analysis *core.QueryAnalysis, embedding []float32, options Options) []*core.ScoredChunk {
	var hits []*core.ScoredChunk
	for i := range doc.Chunks {
		if sc := o.scoreChunk(&doc.Chunks[i], doc, searchQuery, analysis, embedding, options); sc != nil {
			hits = append(hits, sc)
		}
	}
	return hits
}

// scoreChunk isolates panics so one malformed chunk cannot abort the scan.
func (o *Orchestrator) scoreChunk(chunk *core.DocumentChunk, doc *core.Document, searchQuery string, analysis *core.QueryAnalysis, embedding []float32, options Options) (sc *core.ScoredChunk) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("chunk scoring panicked",
				"chunkId", chunk.Id, "documentId", doc.Id, "panic", r)
			sc = nil
		}
	}()
	return o.engine.Score(chunk, doc, searchQuery, analysis, embedding, options.Mode, options.Threshold)
}

// filterCorpus keeps searchable documents, restricted to ids when given.
func filterCorpus(documents []*core.Document, ids []string) []*core.Document {
	var allowed map[string]struct{}
	if len(ids) > 0 {
		allowed = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			allowed[id] = struct{}{}
		}
	}

	corpus := make([]*core.Document, 0, len(documents))
	for _, doc := range documents {
		if !doc.Searchable() {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[doc.Id]; !ok {
				continue
			}
		}
		corpus = append(corpus, doc)
	}
	return corpus
}

// corpusIds collects the ids of the searched documents. The whole searched
// set forms the cache dependency set, so document changes that could alter
// results always invalidate.
func corpusIds(corpus []*core.Document) []string {
	ids := make([]string, 0, len(corpus))
	for _, doc := range corpus {
		ids = append(ids, doc.Id)
	}
	return ids
}

