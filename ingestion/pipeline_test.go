package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/grantmatch/ai/mock"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
	"github.com/poiesic/grantmatch/storage/badger"
)

func setupTestRepository(t *testing.T) storage.GrantRepository {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

// failingEmbedderProvider returns a provider whose embedder errors on
// every call.
func failingEmbedderProvider() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedder error")
	}
	return embedder
}

// waitForEmbedding polls until the grant has an embedding or the deadline
// passes. Embedding happens in a background worker, so tests need to wait.
func waitForEmbedding(t *testing.T, repo storage.GrantRepository, id core.ID) *core.Grant {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		grant, err := repo.GetGrant(context.Background(), id)
		require.NoError(t, err)
		if len(grant.Embedding) > 0 {
			return grant
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for embedding")
	return nil
}

func TestNewPipelineValidation(t *testing.T) {
	repo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	t.Run("missing repository", func(t *testing.T) {
		_, err := NewPipeline(nil, provider)
		assert.ErrorIs(t, err, ErrGrantRepositoryRequired)
	})

	t.Run("missing provider", func(t *testing.T) {
		_, err := NewPipeline(repo, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})

	t.Run("valid", func(t *testing.T) {
		p, err := NewPipeline(repo, provider, WithPoolSize(2))
		require.NoError(t, err)
		defer p.Release()
	})
}

func TestIngestStoresAndEmbeds(t *testing.T) {
	repo := setupTestRepository(t)

	p, err := NewPipeline(repo, mock.NewMockProvider(), WithPoolSize(1))
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	grant := &core.Grant{
		Title:       "Solar Innovation Fund",
		Description: "Support for early-stage photovoltaic research",
		FundingBody: "Horizon Europe",
		Tags:        []string{"energy", "solar"},
	}

	require.NoError(t, p.Ingest(ctx, grant))

	// Stored synchronously
	stored, err := repo.GetGrant(ctx, grant.Id)
	require.NoError(t, err)
	assert.Equal(t, "Solar Innovation Fund", stored.Title)

	// Embedded asynchronously
	embedded := waitForEmbedding(t, repo, grant.Id)
	assert.NotEmpty(t, embedded.Embedding)
}

func TestIngestRejectsInvalidGrant(t *testing.T) {
	repo := setupTestRepository(t)

	p, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	err = p.Ingest(ctx,
		&core.Grant{Title: "Valid", FundingBody: "EU"},
		&core.Grant{FundingBody: "EU"}, // missing title
	)
	require.ErrorIs(t, err, core.ErrEmptyTitle)

	// Nothing was stored: validation fails the whole batch first.
	all, err := repo.AllGrants(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIngestSurvivesEmbedderFailure(t *testing.T) {
	repo := setupTestRepository(t)
	provider := mock.NewMockProviderWithEmbedder(failingEmbedderProvider())

	p, err := NewPipeline(repo, provider, WithPoolSize(1))
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	grant := &core.Grant{Title: "Unembeddable", FundingBody: "EU"}

	// Ingestion succeeds even though background embedding will fail.
	require.NoError(t, p.Ingest(ctx, grant))

	// The grant is stored without an embedding.
	time.Sleep(100 * time.Millisecond)
	stored, err := repo.GetGrant(ctx, grant.Id)
	require.NoError(t, err)
	assert.Empty(t, stored.Embedding)
}

func TestEmbeddingText(t *testing.T) {
	t.Run("title only", func(t *testing.T) {
		got := EmbeddingText(&core.Grant{Title: "Solar Fund"})
		assert.Equal(t, "Solar Fund", got)
	})

	t.Run("all parts", func(t *testing.T) {
		got := EmbeddingText(&core.Grant{
			Title:       "Solar Fund",
			Description: "Photovoltaic research",
			Tags:        []string{"energy", "solar"},
		})
		assert.Equal(t, "Solar Fund\n\nPhotovoltaic research\n\nenergy, solar", got)
	})
}
