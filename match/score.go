package match

import (
	"fmt"

	"github.com/poiesic/grantmatch/core"
)

// Scoring weights for the rule-based path. The exact numbers are tunable
// policy; the invariants that matter are: every weight is non-negative (so
// more satisfied signals never lower the score), and a grant with no signals
// scores exactly scoreFloor with no reasons.
const (
	scoreFloor = 20

	countryWeight     = 20
	trlFitWeight      = 15
	trlCentralWeight  = 5
	askInRangeWeight  = 25
	askUnderCapWeight = 15
	ceilingScore      = 100
)

// ScoreGrant computes a deterministic 0-100 fit score and the reasons behind
// it for a single (profile, grant) pair. The grant is assumed to have already
// passed eligibility filtering; a grant carrying no scorable data (no amount
// bounds, no TRL bounds, no country list) receives the positive floor score
// with an empty reason list.
func ScoreGrant(profile core.Profile, grant *core.Grant) (int, []string) {
	score := scoreFloor
	var reasons []string

	if profile.Country != "" && containsCountry(grant.EligibleCountries, profile.Country) {
		score += countryWeight
		reasons = append(reasons, fmt.Sprintf("Eligible in %s", profile.Country))
	}

	if trlFits(grant, profile.TRL) {
		score += trlFitWeight
		reasons = append(reasons, fmt.Sprintf("TRL %d within call range", profile.TRL))

		if trlCentral(grant, profile.TRL) {
			score += trlCentralWeight
			reasons = append(reasons, "TRL in core range")
		}
	}

	if profile.FundingAsk > 0 {
		switch {
		case askInRange(grant, profile.FundingAsk):
			score += askInRangeWeight
			reasons = append(reasons, "Funding ask within grant range")
		case grant.AmountMax != nil && profile.FundingAsk <= *grant.AmountMax:
			score += askUnderCapWeight
			reasons = append(reasons, "Funding ask under grant ceiling")
		}
	}

	if score > ceilingScore {
		score = ceilingScore
	}
	return score, reasons
}

func containsCountry(countries []string, country string) bool {
	for _, c := range countries {
		if c == country {
			return true
		}
	}
	return false
}

// trlFits reports whether the grant states at least one TRL bound and the
// profile TRL satisfies the stated bounds. A grant with no bounds is
// universally applicable, which is eligibility, not alignment, so it earns
// no signal here.
func trlFits(grant *core.Grant, trl int) bool {
	if grant.MinTRL == nil && grant.MaxTRL == nil {
		return false
	}
	if grant.MinTRL != nil && *grant.MinTRL > trl {
		return false
	}
	if grant.MaxTRL != nil && *grant.MaxTRL < trl {
		return false
	}
	return true
}

// trlCentral reports whether the profile TRL sits in the middle half of a
// fully bounded TRL window, i.e. away from the window's edges.
func trlCentral(grant *core.Grant, trl int) bool {
	if grant.MinTRL == nil || grant.MaxTRL == nil {
		return false
	}
	lo, hi := *grant.MinTRL, *grant.MaxTRL
	span := hi - lo
	if span < 2 {
		// Window too narrow to have edges to be away from.
		return true
	}
	quarter := span / 4
	return trl >= lo+quarter && trl <= hi-quarter
}

// askInRange reports whether the funding ask falls inside the grant's amount
// window, with missing bounds unbounded on that side. A grant with neither
// bound has no amount signal at all.
func askInRange(grant *core.Grant, ask int64) bool {
	if grant.AmountMin == nil && grant.AmountMax == nil {
		return false
	}
	if grant.AmountMin != nil && ask < *grant.AmountMin {
		return false
	}
	if grant.AmountMax != nil && ask > *grant.AmountMax {
		return false
	}
	return true
}
