package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/grantmatch/core"
)

func TestScoreGrantDataPoorGrant(t *testing.T) {
	profile := core.Profile{TRL: 5, Country: "Germany", FundingAsk: 500000}
	grant := &core.Grant{Id: 1, Title: "Open Topic Grant"}

	score, reasons := ScoreGrant(profile, grant)

	assert.Equal(t, scoreFloor, score, "grant with no scorable data gets the floor")
	assert.Empty(t, reasons)
}

func TestScoreGrantFullAlignment(t *testing.T) {
	profile := core.Profile{TRL: 4, Country: "Germany", FundingAsk: 500000}
	grant := &core.Grant{
		Id:                1,
		Title:             "Solar Innovation Fund",
		EligibleCountries: []string{"Germany", "France"},
		MinTRL:            intPtr(2),
		MaxTRL:            intPtr(6),
		AmountMin:         int64Ptr(100000),
		AmountMax:         int64Ptr(1000000),
	}

	score, reasons := ScoreGrant(profile, grant)

	assert.Equal(t, scoreFloor+countryWeight+trlFitWeight+trlCentralWeight+askInRangeWeight, score)
	require.Len(t, reasons, 4)
	assert.Contains(t, reasons, "Eligible in Germany")
	assert.Contains(t, reasons, "TRL 4 within call range")
	assert.Contains(t, reasons, "TRL in core range")
	assert.Contains(t, reasons, "Funding ask within grant range")
}

func TestScoreGrantRange(t *testing.T) {
	profiles := []core.Profile{
		{TRL: 1},
		{TRL: 5, Country: "Norway", FundingAsk: 1},
		{TRL: 9, Country: "Germany", FundingAsk: 1 << 40},
	}
	grants := []*core.Grant{
		{Title: "A"},
		{Title: "B", EligibleCountries: []string{"Norway"}},
		{Title: "C", MinTRL: intPtr(1), MaxTRL: intPtr(9), AmountMax: int64Ptr(1 << 50)},
		{Title: "D", EligibleCountries: []string{"Germany"}, MinTRL: intPtr(8),
			AmountMin: int64Ptr(0), AmountMax: int64Ptr(1 << 41)},
	}

	for _, p := range profiles {
		for _, g := range grants {
			score, _ := ScoreGrant(p, g)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
			assert.GreaterOrEqual(t, score, scoreFloor, "floor holds for every pair")
		}
	}
}

func TestScoreGrantDeterministic(t *testing.T) {
	profile := core.Profile{TRL: 6, Country: "France", FundingAsk: 200000}
	grant := &core.Grant{
		Title:             "Repeatable",
		EligibleCountries: []string{"France"},
		MinTRL:            intPtr(3),
		MaxTRL:            intPtr(7),
		AmountMax:         int64Ptr(300000),
	}

	first, firstReasons := ScoreGrant(profile, grant)
	for i := 0; i < 5; i++ {
		score, reasons := ScoreGrant(profile, grant)
		assert.Equal(t, first, score)
		assert.Equal(t, firstReasons, reasons)
	}
}

// Satisfying an additional signal never lowers the score.
func TestScoreGrantMonotone(t *testing.T) {
	profile := core.Profile{TRL: 5, Country: "Germany", FundingAsk: 500000}

	base := &core.Grant{Title: "Base"}
	baseScore, _ := ScoreGrant(profile, base)

	steps := []*core.Grant{
		{Title: "Country", EligibleCountries: []string{"Germany"}},
		{Title: "Country+TRL", EligibleCountries: []string{"Germany"},
			MinTRL: intPtr(3), MaxTRL: intPtr(7)},
		{Title: "Country+TRL+Ask", EligibleCountries: []string{"Germany"},
			MinTRL: intPtr(3), MaxTRL: intPtr(7),
			AmountMin: int64Ptr(100000), AmountMax: int64Ptr(1000000)},
	}

	prev := baseScore
	for _, g := range steps {
		score, _ := ScoreGrant(profile, g)
		assert.GreaterOrEqual(t, score, prev, "grant %s", g.Title)
		prev = score
	}
}

func TestScoreGrantAskUnderCeiling(t *testing.T) {
	profile := core.Profile{TRL: 1, FundingAsk: 50000}
	grant := &core.Grant{
		Title:     "Capped",
		AmountMin: int64Ptr(100000),
		AmountMax: int64Ptr(1000000),
	}

	// Ask is below the minimum, so it misses the in-range signal but still
	// clears the ceiling check.
	score, reasons := ScoreGrant(profile, grant)
	assert.Equal(t, scoreFloor+askUnderCapWeight, score)
	assert.Contains(t, reasons, "Funding ask under grant ceiling")
}

func TestScoreGrantAskAboveCeiling(t *testing.T) {
	profile := core.Profile{TRL: 1, FundingAsk: 2000000}
	grant := &core.Grant{Title: "Capped", AmountMax: int64Ptr(1000000)}

	score, reasons := ScoreGrant(profile, grant)
	assert.Equal(t, scoreFloor, score)
	assert.Empty(t, reasons)
}

func TestScoreGrantUnboundedTRLNotAlignment(t *testing.T) {
	profile := core.Profile{TRL: 5}
	grant := &core.Grant{Title: "No bounds"}

	score, reasons := ScoreGrant(profile, grant)
	assert.Equal(t, scoreFloor, score)
	assert.Empty(t, reasons)

	// One stated bound is enough to count as alignment.
	grant.MinTRL = intPtr(3)
	score, reasons = ScoreGrant(profile, grant)
	assert.Equal(t, scoreFloor+trlFitWeight, score)
	assert.Contains(t, reasons, "TRL 5 within call range")
}

func TestScoreBands(t *testing.T) {
	assert.Equal(t, core.BandWeak, core.ScoreBand(20))
	assert.Equal(t, core.BandWeak, core.ScoreBand(39))
	assert.Equal(t, core.BandStrong, core.ScoreBand(40))
	assert.Equal(t, core.BandStrong, core.ScoreBand(80))
	assert.Equal(t, core.BandTop, core.ScoreBand(81))
	assert.Equal(t, core.BandTop, core.ScoreBand(100))
}
