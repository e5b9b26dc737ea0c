package match

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/poiesic/grantmatch/core"
)

// RawProfile holds startup profile fields exactly as supplied by the caller.
// Any field may be absent or malformed; normalization never fails.
type RawProfile struct {
	TRL          int    // 0 or out of range means unset
	Country      string // empty means unset
	FundingNeeds string // free text, e.g. "€500,000" or "about 2M"
}

// NormalizeProfile converts raw profile input into the canonical Profile the
// matcher consumes, applying defaults for missing or invalid data.
//
// The funding ask is derived by stripping every non-digit rune from the free
// text and parsing what remains, so "€500,000" yields 500000. Unit suffixes
// are not interpreted: "about 2M" yields 2. Callers wanting suffix expansion
// must pre-expand before normalization.
func NormalizeProfile(raw RawProfile, defaultCountry string) core.Profile {
	trl := raw.TRL
	if trl < 1 || trl > 9 {
		trl = 1
	}

	country := strings.TrimSpace(raw.Country)
	if country == "" {
		country = defaultCountry
	}

	return core.Profile{
		TRL:        trl,
		Country:    country,
		FundingAsk: parseFundingAsk(raw.FundingNeeds),
	}
}

// parseFundingAsk extracts a non-negative amount from free text.
// Returns 0 when the text contains no digits or the digits overflow int64.
func parseFundingAsk(text string) int64 {
	var digits strings.Builder
	for _, r := range text {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	amount, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return amount
}
