package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

// embeddingProcessor generates embeddings for stored grants.
type embeddingProcessor struct {
	grantRepository storage.GrantRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(grantRepository storage.GrantRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if grantRepository == nil {
		return nil, ErrGrantRepositoryRequired
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		grantRepository: grantRepository,
		embedder:        embedder,
		logger:          logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified grants.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing grants for embeddings", "grants", len(ids))

	grants, err := ep.grantRepository.GetGrants(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving grants", "err", err)
		return err
	}
	if len(grants) == 0 {
		return nil
	}

	texts := make([]string, len(grants))
	for i, grant := range grants {
		texts[i] = EmbeddingText(grant)
	}

	ep.logger.Debug("generating embeddings for grants", "grants", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(grants) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(grants), len(embeddings))
	}

	for i := range embeddings {
		grants[i].Embedding = embeddings[i]
	}

	_, err = ep.grantRepository.UpdateGrants(ctx, grants...)
	return err
}

// EmbeddingText builds the text that represents a grant in embedding space:
// title, description, and tags joined together. Stored embeddings and query
// embeddings must come from the same provider and model to be comparable.
func EmbeddingText(grant *core.Grant) string {
	parts := make([]string, 0, 3)
	parts = append(parts, grant.Title)
	if grant.Description != "" {
		parts = append(parts, grant.Description)
	}
	if len(grant.Tags) > 0 {
		parts = append(parts, strings.Join(grant.Tags, ", "))
	}
	return strings.Join(parts, "\n\n")
}
