package grantmatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/match"
)

func TestNewCatalog(t *testing.T) {
	t.Run("create new catalog", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		catalog, err := NewCatalog(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, catalog)
		defer catalog.Close()

		// Verify components are initialized
		assert.NotNil(t, catalog.GrantRepository())
		assert.NotNil(t, catalog.backend)
		assert.NotNil(t, catalog.provider)
		assert.NotNil(t, catalog.logger)
	})

	t.Run("without AI", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		catalog, err := NewCatalog(tmpDir, WithoutAI())
		require.NoError(t, err)
		defer catalog.Close()

		assert.Nil(t, catalog.provider)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a catalog at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		catalog, err := NewCatalog(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, catalog)
	})
}

func TestCatalog_Close(t *testing.T) {
	tmpDir := t.TempDir()
	catalog, err := NewCatalog(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, catalog)

	err = catalog.Close()
	assert.NoError(t, err)
}

func TestCatalog_FactoryMethods(t *testing.T) {
	tmpDir := t.TempDir()
	catalog, err := NewCatalog(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, catalog)
	defer catalog.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := catalog.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create engine", func(t *testing.T) {
		engine := catalog.NewEngine()
		require.NotNil(t, engine)
	})
}

func TestCatalog_MatchUsesStoredCorpus(t *testing.T) {
	tmpDir := t.TempDir()
	catalog, err := NewCatalog(tmpDir, WithoutAI())
	require.NoError(t, err)
	defer catalog.Close()

	ctx := context.Background()
	_, err = catalog.GrantRepository().AddGrants(ctx,
		&core.Grant{Title: "Solar Innovation Fund", FundingBody: "EU",
			Tags: []string{"solar"}},
		&core.Grant{Title: "Maritime Transition Call", FundingBody: "NO",
			Tags: []string{"maritime"}},
	)
	require.NoError(t, err)

	engine := catalog.NewEngine()
	resp, err := catalog.Match(ctx, engine, &match.Request{
		Mode:     match.ModeFilter,
		Criteria: match.Criteria{Text: "solar"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Solar Innovation Fund", resp.Results[0].Grant.Title)
}

func TestCatalog_SimilarityDegradesWithoutAI(t *testing.T) {
	tmpDir := t.TempDir()
	catalog, err := NewCatalog(tmpDir, WithoutAI())
	require.NoError(t, err)
	defer catalog.Close()

	ctx := context.Background()
	_, err = catalog.GrantRepository().AddGrants(ctx,
		&core.Grant{Title: "Any Grant", FundingBody: "EU"},
	)
	require.NoError(t, err)

	engine := catalog.NewEngine()
	resp, err := catalog.Match(ctx, engine, &match.Request{
		Mode:     match.ModeSimilarity,
		Criteria: match.Criteria{Text: "solar energy"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	require.Len(t, resp.Results, 1)
}
