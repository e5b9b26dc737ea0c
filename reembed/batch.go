package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/ingestion"
	"github.com/poiesic/grantmatch/storage"
)

// BatchProcessor regenerates embeddings for one batch of grants at a time.
type BatchProcessor struct {
	repo           storage.GrantRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a processor that retries failed embedding calls
// up to maxRetries times with exponential backoff from retryBaseDelay.
func NewBatchProcessor(repo storage.GrantRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds a batch of grants and writes the new vectors back to the
// store. Vectors are normalized to unit length for cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, grants []*core.Grant) error {
	if len(grants) == 0 {
		return nil
	}

	// The embedded text must match what ingestion produces, or stored and
	// fresh vectors drift apart for the same grant.
	texts := make([]string, len(grants))
	for i, grant := range grants {
		texts[i] = ingestion.EmbeddingText(grant)
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(grants) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(grants), len(embeddings))
	}

	for i := range grants {
		grants[i].Embedding = NormalizeVector(embeddings[i])
	}

	if _, err := bp.repo.UpdateGrants(ctx, grants...); err != nil {
		return fmt.Errorf("failed to update grants: %w", err)
	}

	return nil
}
