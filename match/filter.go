package match

import (
	"strings"

	"github.com/poiesic/grantmatch/core"
)

// Criteria holds the explicit search criteria for a matching request.
// The zero value of every field is the wildcard: an unset criterion imposes
// no constraint. Active criteria combine with logical AND.
type Criteria struct {
	// Text is a free-text query. In filter mode it is matched as a
	// case-insensitive substring against title, description, and tags.
	// In similarity mode it is the text handed to the embedding provider.
	Text string

	// Country restricts results to grants eligible in that country.
	// Grants with no eligible_countries list are eligible everywhere and
	// always pass.
	Country string

	// TRL restricts results to grants whose TRL bounds admit the value.
	// 0 means no TRL constraint.
	TRL int

	// Industry matches grants with any tag containing the value,
	// case-insensitive.
	Industry string

	// FundingType matches grants with any tag containing the value,
	// case-insensitive.
	FundingType string
}

// Predicate decides whether a grant remains a candidate.
type Predicate func(g *core.Grant) bool

// predicates returns one predicate per active criterion. Inactive criteria
// contribute nothing. Predicates are independent and order-insensitive.
func (c Criteria) predicates() []Predicate {
	var preds []Predicate

	if q := strings.TrimSpace(c.Text); q != "" {
		preds = append(preds, textPredicate(q))
	}
	if c.Country != "" {
		preds = append(preds, countryPredicate(c.Country))
	}
	if c.TRL != 0 {
		preds = append(preds, trlPredicate(c.TRL))
	}
	if c.Industry != "" {
		preds = append(preds, tagPredicate(c.Industry))
	}
	if c.FundingType != "" {
		preds = append(preds, tagPredicate(c.FundingType))
	}

	return preds
}

// Filter reduces a grant corpus to the subset passing every active criterion.
// Corpus order is preserved; the corpus itself is never modified. Filtering
// is pure and deterministic: the same corpus and criteria always yield the
// same candidate set, and filtering an already-filtered result is a no-op.
// Nil corpus entries are skipped, with or without active criteria.
func Filter(corpus []*core.Grant, criteria Criteria) []*core.Grant {
	preds := criteria.predicates()

	candidates := make([]*core.Grant, 0, len(corpus))
outer:
	for _, grant := range corpus {
		if grant == nil {
			continue
		}
		for _, pred := range preds {
			if !pred(grant) {
				continue outer
			}
		}
		candidates = append(candidates, grant)
	}
	return candidates
}

// textPredicate matches the query as a case-insensitive substring of the
// title, the description, or any tag. An absent description or tag list is
// non-matching for that sub-check, not an auto-pass.
func textPredicate(query string) Predicate {
	q := strings.ToLower(query)
	return func(g *core.Grant) bool {
		if strings.Contains(strings.ToLower(g.Title), q) {
			return true
		}
		if g.Description != "" && strings.Contains(strings.ToLower(g.Description), q) {
			return true
		}
		for _, tag := range g.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	}
}

// countryPredicate matches grants eligible in the given country.
// A nil eligible_countries list means universal eligibility.
func countryPredicate(country string) Predicate {
	return func(g *core.Grant) bool {
		if g.EligibleCountries == nil {
			return true
		}
		for _, c := range g.EligibleCountries {
			if c == country {
				return true
			}
		}
		return false
	}
}

// trlPredicate matches grants whose TRL bounds admit the value.
// A missing bound is unbounded on that side.
func trlPredicate(trl int) Predicate {
	return func(g *core.Grant) bool {
		if g.MinTRL != nil && *g.MinTRL > trl {
			return false
		}
		if g.MaxTRL != nil && *g.MaxTRL < trl {
			return false
		}
		return true
	}
}

// tagPredicate matches grants with any tag containing the value,
// case-insensitive. Used for both the industry and funding-type criteria.
func tagPredicate(value string) Predicate {
	v := strings.ToLower(value)
	return func(g *core.Grant) bool {
		for _, tag := range g.Tags {
			if strings.Contains(strings.ToLower(tag), v) {
				return true
			}
		}
		return false
	}
}
