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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sievelabs/sieve"
	"github.com/sievelabs/sieve/ai"
	"github.com/sievelabs/sieve/cache"
	"github.com/sievelabs/sieve/query"
	"github.com/sievelabs/sieve/scoring"
	"github.com/sievelabs/sieve/search"
	"github.com/sievelabs/sieve/storage"
	"github.com/sievelabs/sieve/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "sieve",
		Usage: "Relevance search over a chunked document corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "search",
				Usage:  "Search the corpus for relevant chunks",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Path to JSON corpus file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultLimit,
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Scoring mode (balanced, semantic, lexical, precise, exploratory)",
						Value: "balanced",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Base relevance threshold in [0,1]",
						Value: search.DefaultThreshold,
					},
					&cli.StringFlag{
						Name:  "rules",
						Usage: "Path to YAML rule set overriding the built-in analysis rules",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Bypass the semantic cache for this search",
					},
				},
			},
			{
				Name:   "clear-cache",
				Usage:  "Empty both semantic cache tiers",
				Action: clearCacheCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
				},
			},
			{
				Name:   "feedback",
				Usage:  "Record a relevance judgment for a query/document pair",
				Action: feedbackCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "The query the judgment applies to",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "document",
						Usage:    "Document id the judgment applies to",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "rating",
						Aliases:  []string{"r"},
						Usage:    "Relevance rating from 1 (irrelevant) to 5 (perfect)",
						Required: true,
					},
				},
			},
			{
				Name:   "feedback-list",
				Usage:  "List recorded relevance judgments",
				Action: feedbackListCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	mode, err := scoring.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	source := storage.NewFileSource(c.String("corpus"))

	engineOpts := []sieve.EngineOption{
		sieve.WithAIConfig(ai.DefaultConfig(
			ai.WithHost(c.String("embedding-host")),
			ai.WithModel(c.String("embedding-model")),
		)),
	}

	if rulesPath := c.String("rules"); rulesPath != "" {
		rules, rErr := query.LoadRuleSet(rulesPath)
		if rErr != nil {
			return fmt.Errorf("failed to load rule set: %w", rErr)
		}
		engineOpts = append(engineOpts, sieve.WithRules(rules))
	}

	engine, err := sieve.NewEngine(c.String("db"), source, engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	results, err := engine.Search(ctx, strings.Join(c.Args().Slice(), " "), &search.Options{
		Limit:       c.Int("limit"),
		Threshold:   c.Float64("threshold"),
		Mode:        mode,
		BypassCache: c.Bool("no-cache"),
	})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. [%.3f] %s (%s, chunk %d) confidence=%s\n",
			i+1, result.Score, result.DocumentName, result.DocumentId, result.ChunkIndex, result.Confidence)
		fmt.Printf("   %s\n", result.RelevantText)
		fmt.Printf("   matched: %s\n", strings.Join(result.MatchedTerms, ", "))
		fmt.Printf("   %s\n", result.Explanation)
	}

	metrics := engine.Metrics()
	stats := engine.CacheStats()
	fmt.Printf("\nqueries=%d avgLatency=%s cacheHitRate=%.2f (fast=%d durable=%d miss=%d)\n",
		metrics.TotalQueries, metrics.AverageLatency, metrics.CacheHitRate(),
		stats.FastHits, stats.DurableHits, stats.Misses)

	return nil
}

func clearCacheCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := badger.OpenStore(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	semanticCache, err := cache.New(store, nil)
	if err != nil {
		return err
	}
	if err := semanticCache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Println("cache cleared")
	return nil
}

func feedbackCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := badger.OpenStore(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	recorder, err := search.NewFeedbackRecorder(store)
	if err != nil {
		return err
	}
	if err := recorder.Record(ctx, c.String("query"), c.String("document"), c.Int("rating")); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	fmt.Println("feedback recorded")
	return nil
}

func feedbackListCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := badger.OpenStore(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	recorder, err := search.NewFeedbackRecorder(store)
	if err != nil {
		return err
	}
	records, err := recorder.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("no feedback recorded")
		return nil
	}
	for _, record := range records {
		fmt.Printf("%s  rating=%d  doc=%s  query=%q\n",
			record.CreatedAt.Format("2006-01-02 15:04"), record.Rating, record.DocumentId, record.Query)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
