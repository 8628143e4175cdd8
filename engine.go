// Copyright 2025 Sieve Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sieve

import (
	"context"
	"log/slog"

	"github.com/sievelabs/sieve/ai"
	"github.com/sievelabs/sieve/ai/openai"
	"github.com/sievelabs/sieve/cache"
	"github.com/sievelabs/sieve/core"
	"github.com/sievelabs/sieve/query"
	"github.com/sievelabs/sieve/search"
	"github.com/sievelabs/sieve/storage"
	"github.com/sievelabs/sieve/storage/badger"
)

// Engine is the top-level handle: one durable store, one semantic cache, and
// one search orchestrator, constructed once per process and shared by all
// callers. There is no hidden global; callers hold the Engine they built.
type Engine struct {
	store        *badger.Store
	cache        *cache.SemanticCache
	orchestrator *search.Orchestrator
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	cacheConfig *cache.Config
	embedder    ai.Embedder
	rules       *query.RuleSet
	inMemory    bool
	searchOpts  []search.Option
}

// WithAIConfig sets the embedding service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithCacheConfig sets the semantic cache configuration.
// Default is cache.DefaultConfig().
func WithCacheConfig(config *cache.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.cacheConfig = config
		}
	}
}

// WithEmbedder injects an embedder directly, bypassing the AI configuration.
// Tests use this to run against a deterministic embedder.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithRules replaces the default analysis rule set.
func WithRules(rules *query.RuleSet) EngineOption {
	return func(o *engineOptions) {
		o.rules = rules
	}
}

// WithInMemoryStore keeps the durable tier in memory. Used by tests.
func WithInMemoryStore() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithSearchOptions forwards extra options to the orchestrator.
func WithSearchOptions(opts ...search.Option) EngineOption {
	return func(o *engineOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// NewEngine opens the durable store at filePath and wires the cache and
// orchestrator around the given document source.
func NewEngine(filePath string, source storage.DocumentSource, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:    ai.DefaultConfig(),
		cacheConfig: cache.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.OpenStore(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	semanticCache, err := cache.New(store, options.cacheConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	searchOpts := append([]search.Option{search.WithFeedbackStore(store)}, options.searchOpts...)
	if options.rules != nil {
		analyzer, aErr := query.NewAnalyzer(query.WithRules(options.rules))
		if aErr != nil {
			store.Close()
			return nil, aErr
		}
		searchOpts = append(searchOpts, search.WithAnalyzer(analyzer))
	}

	orchestrator, err := search.NewOrchestrator(source, embedder, semanticCache, searchOpts...)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Engine{
		store:        store,
		cache:        semanticCache,
		orchestrator: orchestrator,
		logger:       slog.Default(),
	}, nil
}

// Search runs a search through the orchestrator.
func (e *Engine) Search(ctx context.Context, searchQuery string, opts *search.Options) ([]core.SearchResult, error) {
	return e.orchestrator.Search(ctx, searchQuery, opts)
}

// RecordFeedback persists an advisory relevance judgment.
func (e *Engine) RecordFeedback(ctx context.Context, searchQuery, documentId string, rating int) error {
	return e.orchestrator.RecordFeedback(ctx, searchQuery, documentId, rating)
}

// InvalidateDocuments drops every cached entry depending on the documents.
func (e *Engine) InvalidateDocuments(ctx context.Context, documentIds []string) {
	e.cache.InvalidateByDocuments(ctx, documentIds)
}

// ClearCache empties both cache tiers.
func (e *Engine) ClearCache(ctx context.Context) error {
	return e.cache.Clear(ctx)
}

// Metrics returns orchestrator activity counters.
func (e *Engine) Metrics() search.Metrics {
	return e.orchestrator.Metrics()
}

// CacheStats returns cache hit/miss counters per tier.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// Orchestrator exposes the underlying orchestrator for advanced callers,
// such as monitored searches.
func (e *Engine) Orchestrator() *search.Orchestrator {
	return e.orchestrator
}

// Close releases the orchestrator's worker pool and the durable store.
func (e *Engine) Close() error {
	e.orchestrator.Release()

	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}
