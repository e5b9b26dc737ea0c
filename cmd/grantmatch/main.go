// Copyright 2025 Poiesic Systems
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
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/ai/openai"
	"github.com/poiesic/grantmatch/match"
	"github.com/poiesic/grantmatch/reembed"
	"github.com/poiesic/grantmatch/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "grantmatch",
		Usage: "Grant matching and ranking engine for startup funding calls",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "search",
				Usage:  "Search the corpus with eligibility filters and rule-based scoring",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "text",
						Usage: "Free-text filter over title, description, and tags",
					},
					&cli.StringFlag{
						Name:  "country",
						Usage: "Restrict to grants eligible in this country",
					},
					&cli.IntFlag{
						Name:  "trl",
						Usage: "Restrict to grants admitting this TRL (0 = no constraint)",
					},
					&cli.StringFlag{
						Name:  "industry",
						Usage: "Restrict to grants tagged with this industry",
					},
					&cli.StringFlag{
						Name:  "funding-type",
						Usage: "Restrict to grants tagged with this funding type",
					},
					&cli.IntFlag{
						Name:  "profile-trl",
						Usage: "Startup profile TRL (defaults to 1 when out of range)",
					},
					&cli.StringFlag{
						Name:  "profile-country",
						Usage: "Startup profile country",
					},
					&cli.StringFlag{
						Name:  "funding-needs",
						Usage: "Startup funding needs as free text, e.g. \"€500,000\"",
					},
					&cli.StringFlag{
						Name:  "default-country",
						Usage: "Country assumed when the profile doesn't state one",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: match.DefaultLimit,
					},
				},
			},
			{
				Name:      "aisearch",
				Usage:     "Search the corpus by embedding similarity",
				ArgsUsage: "QUERY",
				Action:    aisearchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum cosine similarity for a result",
						Value: match.DefaultSimilarityThreshold,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: match.DefaultLimit,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed the whole grant corpus with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of grants to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N grants",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
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

	repo, backend, err := openRepository(c.String("db"))
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	corpus, err := repo.AllGrants(ctx)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	engine := match.NewEngine(
		match.WithDefaultCountry(c.String("default-country")),
	)

	resp, err := engine.Match(ctx, &match.Request{
		Mode: match.ModeFilter,
		Profile: match.RawProfile{
			TRL:          c.Int("profile-trl"),
			Country:      c.String("profile-country"),
			FundingNeeds: c.String("funding-needs"),
		},
		Criteria: match.Criteria{
			Text:        c.String("text"),
			Country:     c.String("country"),
			TRL:         c.Int("trl"),
			Industry:    c.String("industry"),
			FundingType: c.String("funding-type"),
		},
		Corpus: corpus,
		Limit:  c.Int("limit"),
	})
	if err != nil {
		return err
	}

	printResults(resp)
	return nil
}

func aisearchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	repo, backend, err := openRepository(c.String("db"))
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	corpus, err := repo.AllGrants(ctx)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	engine := match.NewEngine(
		match.WithEmbedder(embedder),
		match.WithSimilarityThreshold(float32(c.Float64("threshold"))),
	)

	resp, err := engine.Match(ctx, &match.Request{
		Mode:     match.ModeSimilarity,
		Criteria: match.Criteria{Text: query},
		Corpus:   corpus,
		Limit:    c.Int("limit"),
	})
	if err != nil {
		return err
	}

	if resp.Degraded {
		fmt.Fprintln(os.Stderr, "similarity unavailable, showing default-ordered results")
	}
	printResults(resp)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	repo, backend, err := openRepository(c.String("db"))
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func openRepository(dbPath string) (*badger.GrantRepository, *badger.Backend, error) {
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo, err := badger.NewGrantRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}

	return repo, backend, nil
}

func printResults(resp *match.Response) {
	fmt.Printf("Found %d hits\n", len(resp.Results))
	for i, hit := range resp.Results {
		deadline := "rolling"
		if hit.Grant.Deadline != nil {
			deadline = hit.Grant.Deadline.Format("2006-01-02")
		}
		fmt.Printf("%d: '%s' (%s, deadline %s) [%d]\n",
			i, hit.Grant.Title, hit.Grant.FundingBody, deadline, hit.Score)
		for _, reason := range hit.Reasons {
			fmt.Printf("   - %s\n", reason)
		}
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
