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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

// Config tunes a reembedding run.
type Config struct {
	// BatchSize is how many grants go into each embedding request
	BatchSize int

	// ReportInterval is how many grants between progress reports
	ReportInterval int

	// MaxRetries caps the attempts per failed embedding call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns the defaults used when no Config is supplied.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder orchestrates the reembedding of the whole grant corpus.
type Reembedder struct {
	repo      storage.GrantRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *GrantIterator
}

// NewReembedder creates a reembedder writing progress output to progress,
// typically os.Stderr. A nil config takes the defaults.
func NewReembedder(repo storage.GrantRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewGrantIterator(repo, config.BatchSize)

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run reembeds every grant in the corpus with the configured embedder,
// reporting progress along the way.
func (r *Reembedder) Run(ctx context.Context) error {
	allGrants, err := r.repo.AllGrants(ctx)
	if err != nil {
		return fmt.Errorf("failed to query grants: %w", err)
	}

	totalGrants := len(allGrants)
	if totalGrants == 0 {
		fmt.Fprintf(r.progress, "No grants found in database (0 grants)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d grants (batch size: %d)\n",
		totalGrants, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalGrants, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(grants []*core.Grant) error {
		if err := r.processor.Process(ctx, grants); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(grants)
		tracker.Update(processed)

		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d grants in %v (%.1f grants/sec)\n",
		totalGrants, elapsed.Round(time.Second), float64(totalGrants)/elapsed.Seconds())

	return nil
}
