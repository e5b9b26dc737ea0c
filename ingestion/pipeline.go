package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

// Pipeline orchestrates the ingestion of grants into the corpus.
// It validates and stores grants synchronously, then generates embeddings
// concurrently in the background.
type Pipeline struct {
	grantRepository storage.GrantRepository
	embeddingPool   *ants.Pool
	embeddingProc   processor
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	grantRepository storage.GrantRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if grantRepository == nil {
		return nil, ErrGrantRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	logger := slog.Default()

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		grantRepository: grantRepository,
		embeddingPool:   embeddingPool,
		logger:          logger,
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the processor after options are applied (so it gets final config)
	embeddingProc, err := newEmbeddingProcessor(grantRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest validates and stores grants, then generates embeddings for them
// asynchronously. Invalid grants fail the whole batch before anything is
// stored. Errors during async embedding are logged but do not fail the
// ingestion: an unembedded grant still matches in filter mode.
func (p *Pipeline) Ingest(ctx context.Context, grants ...*core.Grant) error {
	for i, grant := range grants {
		if err := core.ValidateGrant(grant); err != nil {
			return fmt.Errorf("grant %d: %w", i, err)
		}
	}

	added, err := p.grantRepository.AddGrants(ctx, grants...)
	if err != nil {
		return err
	}

	if len(added) == 0 {
		return nil
	}

	ids := make([]core.ID, len(added))
	for i, grant := range added {
		ids[i] = grant.Id
	}

	// Submit for async processing
	p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})

	return nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
