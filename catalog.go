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


package grantmatch

import (
	"context"
	"log/slog"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/ai/openai"
	"github.com/poiesic/grantmatch/ingestion"
	"github.com/poiesic/grantmatch/match"
	"github.com/poiesic/grantmatch/storage"
	"github.com/poiesic/grantmatch/storage/badger"
)

// Catalog bundles the grant corpus with its storage backend and the optional
// embedding provider. It is the top-level entry point: open a catalog, ingest
// grants, and run matching requests against the stored corpus.
type Catalog struct {
	backend   *badger.Backend
	grantRepo storage.GrantRepository
	provider  ai.Provider
	logger    *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig *ai.Config
	noAI     bool
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		o.aiConfig = config
	}
}

// WithoutAI opens the catalog with no embedding provider. Similarity-mode
// requests degrade to the default-ordered fallback; everything else works.
func WithoutAI() CatalogOption {
	return func(o *catalogOptions) {
		o.noAI = true
	}
}

// NewCatalog opens a grant catalog backed by a BadgerDB database at filePath.
func NewCatalog(filePath string, opts ...CatalogOption) (*Catalog, error) {
	// Apply options
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create grant repository
	grantRepo, err := badger.NewGrantRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create the embedding provider with configured settings
	var provider ai.Provider
	if !options.noAI {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			grantRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Catalog{
		backend:   backend,
		grantRepo: grantRepo,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

func (c *Catalog) Close() error {
	// Close the embedding provider first
	if c.provider != nil {
		if err := c.provider.Close(); err != nil {
			c.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := c.grantRepo.Close(); err != nil {
		c.logger.Error("error closing grant repository", "err", err)
		return err
	}

	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (c *Catalog) GrantRepository() storage.GrantRepository {
	return c.grantRepo
}

// NewIngestionPipeline creates an ingestion pipeline over the catalog's
// repository. Requires an embedding provider.
func (c *Catalog) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.grantRepo, c.provider, opts...)
}

// NewEngine creates a matching engine wired to the catalog's embedding
// provider. Without a provider the engine runs filter mode normally and
// degrades in similarity mode.
func (c *Catalog) NewEngine(opts ...match.Option) *match.Engine {
	if c.provider != nil {
		opts = append([]match.Option{match.WithEmbedder(c.provider.Embedder())}, opts...)
	}
	return match.NewEngine(opts...)
}

// Match loads the stored corpus and runs one matching request against it.
// A request with a non-nil Corpus uses that corpus unchanged.
func (c *Catalog) Match(ctx context.Context, engine *match.Engine, req *match.Request) (*match.Response, error) {
	if req != nil && req.Corpus == nil {
		corpus, err := c.grantRepo.AllGrants(ctx)
		if err != nil {
			return nil, err
		}
		req.Corpus = corpus
	}
	return engine.Match(ctx, req)
}
