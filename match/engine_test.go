package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/grantmatch/ai/mock"
	"github.com/poiesic/grantmatch/core"
)

func engineCorpus() []*core.Grant {
	return []*core.Grant{
		{
			Id:                1,
			Title:             "Solar Innovation Fund",
			Description:       "Support for early-stage photovoltaic research",
			Tags:              []string{"energy", "solar"},
			EligibleCountries: []string{"Germany"},
			MinTRL:            intPtr(2),
			MaxTRL:            intPtr(6),
			Deadline:          datePtr("2025-03-01"),
			Embedding:         []float32{1, 0, 0},
		},
		{
			Id:        2,
			Title:     "Deep Tech Accelerator",
			Tags:      []string{"deep tech"},
			Embedding: []float32{0, 1, 0},
		},
		{
			Id:                3,
			Title:             "Maritime Transition Call",
			Tags:              []string{"maritime"},
			EligibleCountries: []string{"Norway"},
			Deadline:          datePtr("2024-11-01"),
			Embedding:         []float32{0.9, 0.1, 0},
		},
	}
}

func TestMatchFilterMode(t *testing.T) {
	engine := NewEngine()

	resp, err := engine.Match(context.Background(), &Request{
		Mode:    ModeFilter,
		Profile: RawProfile{TRL: 4, Country: "Germany", FundingNeeds: "€500,000"},
		Criteria: Criteria{
			Country: "Germany",
		},
		Corpus: engineCorpus(),
	})
	require.NoError(t, err)

	assert.Equal(t, ModeFilter, resp.ModeUsed)
	assert.False(t, resp.Degraded)
	// Grant 3 lists only Norway; grants 1 and 2 remain, deadline order.
	require.Len(t, resp.Results, 2)
	assert.Equal(t, core.ID(1), resp.Results[0].Grant.Id)
	assert.Equal(t, core.ID(2), resp.Results[1].Grant.Id, "no deadline sorts last")

	// Every candidate carries a rule score with the floor guaranteed.
	for _, r := range resp.Results {
		assert.GreaterOrEqual(t, r.Score, scoreFloor)
	}
	assert.Contains(t, resp.Results[0].Reasons, "Eligible in Germany")
}

func TestMatchFilterModeEmptyResult(t *testing.T) {
	engine := NewEngine()

	resp, err := engine.Match(context.Background(), &Request{
		Mode:     ModeFilter,
		Criteria: Criteria{Text: "quantum"},
		Corpus:   engineCorpus(),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results, "empty result set is a success, not an error")
}

func TestMatchFilterModeLimit(t *testing.T) {
	engine := NewEngine()

	resp, err := engine.Match(context.Background(), &Request{
		Mode:   ModeFilter,
		Corpus: engineCorpus(),
		Limit:  1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, core.ID(3), resp.Results[0].Grant.Id, "truncation happens after ordering")
}

func TestMatchFilterModeDefaultCountry(t *testing.T) {
	engine := NewEngine(WithDefaultCountry("Norway"))

	resp, err := engine.Match(context.Background(), &Request{
		Mode:   ModeFilter,
		Corpus: engineCorpus(),
	})
	require.NoError(t, err)

	// The defaulted country feeds the scorer: the Norway-only grant earns the
	// country signal even though the profile never stated a country.
	for _, r := range resp.Results {
		if r.Grant.Id == 3 {
			assert.Contains(t, r.Reasons, "Eligible in Norway")
		}
	}
}

func TestMatchToleratesNilCorpusEntries(t *testing.T) {
	corpus := append(engineCorpus(), nil)

	t.Run("filter mode", func(t *testing.T) {
		engine := NewEngine()

		resp, err := engine.Match(context.Background(), &Request{
			Mode:   ModeFilter,
			Corpus: corpus,
		})
		require.NoError(t, err)
		require.Len(t, resp.Results, 3)
		for _, r := range resp.Results {
			assert.NotNil(t, r.Grant)
		}
	})

	t.Run("degraded similarity fallback", func(t *testing.T) {
		engine := NewEngine()

		resp, err := engine.Match(context.Background(), &Request{
			Mode:     ModeSimilarity,
			Criteria: Criteria{Text: "solar"},
			Corpus:   []*core.Grant{{Id: 1, Title: "A"}, nil},
		})
		require.NoError(t, err)
		assert.True(t, resp.Degraded)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, core.ID(1), resp.Results[0].Grant.Id)
	})
}

func TestMatchSimilarityMode(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	engine := NewEngine(WithEmbedder(embedder))

	resp, err := engine.Match(context.Background(), &Request{
		Mode:     ModeSimilarity,
		Criteria: Criteria{Text: "solar energy research"},
		Corpus:   engineCorpus(),
	})
	require.NoError(t, err)

	assert.Equal(t, ModeSimilarity, resp.ModeUsed)
	assert.False(t, resp.Degraded)
	require.Len(t, resp.Results, 2, "orthogonal grant is below threshold")
	assert.Equal(t, core.ID(1), resp.Results[0].Grant.Id)
	assert.Equal(t, 100, resp.Results[0].Score)
	assert.Equal(t, core.ID(3), resp.Results[1].Grant.Id)
	assert.Equal(t, 1, embedder.CallCount(), "one provider call per request")
}

func TestMatchSimilarityDegradesWithoutEmbedder(t *testing.T) {
	engine := NewEngine()

	resp, err := engine.Match(context.Background(), &Request{
		Mode:     ModeSimilarity,
		Criteria: Criteria{Text: "solar"},
		Corpus:   engineCorpus(),
		Limit:    2,
	})
	require.NoError(t, err, "degradation is a success outcome")

	assert.Equal(t, ModeSimilarity, resp.ModeUsed)
	assert.True(t, resp.Degraded)
	require.Len(t, resp.Results, 2)
	// Default ordering: deadline ascending, nil last.
	assert.Equal(t, core.ID(3), resp.Results[0].Grant.Id)
	assert.Equal(t, core.ID(1), resp.Results[1].Grant.Id)
	for _, r := range resp.Results {
		assert.Zero(t, r.Score, "fallback results carry no scores")
	}
}

func TestMatchSimilarityDegradesWithUnembeddedCorpus(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	engine := NewEngine(WithEmbedder(embedder))

	corpus := []*core.Grant{
		{Id: 1, Title: "No vector", Deadline: datePtr("2025-01-01")},
		{Id: 2, Title: "Also none"},
	}

	resp, err := engine.Match(context.Background(), &Request{
		Mode:     ModeSimilarity,
		Criteria: Criteria{Text: "solar"},
		Corpus:   corpus,
	})
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Equal(t, 0, embedder.CallCount(), "provider is not called when degrading")
}

func TestMatchSimilarityUpstreamFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}
	engine := NewEngine(WithEmbedder(embedder))

	resp, err := engine.Match(context.Background(), &Request{
		Mode:     ModeSimilarity,
		Criteria: Criteria{Text: "solar"},
		Corpus:   engineCorpus(),
	})
	require.ErrorIs(t, err, ErrUpstreamEmbedding)
	assert.Nil(t, resp, "a reachable but failing provider is an error, not degradation")
}

func TestMatchSimilarityEmptyVector(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{}, nil
	}
	engine := NewEngine(WithEmbedder(embedder))

	_, err := engine.Match(context.Background(), &Request{
		Mode:     ModeSimilarity,
		Criteria: Criteria{Text: "solar"},
		Corpus:   engineCorpus(),
	})
	require.ErrorIs(t, err, ErrUpstreamEmbedding)
}

func TestMatchSimilarityDimensionMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return mock.DeterministicVector(text, 1536), nil
	}
	engine := NewEngine(WithEmbedder(embedder))

	resp, err := engine.Match(context.Background(), &Request{
		Mode:     ModeSimilarity,
		Criteria: Criteria{Text: "solar"},
		Corpus:   engineCorpus(), // 3-dimensional stored vectors
	})
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Nil(t, resp)
}

func TestMatchValidation(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"unknown mode", &Request{Mode: "hybrid"}},
		{"empty mode", &Request{}},
		{"negative limit", &Request{Mode: ModeFilter, Limit: -1}},
		{"similarity without text", &Request{Mode: ModeSimilarity}},
		{"similarity with blank text", &Request{
			Mode:     ModeSimilarity,
			Criteria: Criteria{Text: "   "},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Match(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestMatchDefaultLimit(t *testing.T) {
	corpus := make([]*core.Grant, 0, 15)
	for i := 1; i <= 15; i++ {
		corpus = append(corpus, &core.Grant{Id: core.ID(i), Title: "Grant"})
	}
	engine := NewEngine()

	resp, err := engine.Match(context.Background(), &Request{
		Mode:   ModeFilter,
		Corpus: corpus,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, DefaultLimit)
}

func TestMatchCanceledContext(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	engine := NewEngine(WithEmbedder(embedder))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Match(ctx, &Request{
		Mode:     ModeSimilarity,
		Criteria: Criteria{Text: "solar"},
		Corpus:   engineCorpus(),
	})
	require.Error(t, err)
}
