package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that repeated seeding of the
// same grant produces the same identity.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Grant represents a single funding opportunity in the corpus.
// Optional fields use pointers or nil slices; in every case absence widens
// applicability rather than narrowing it:
//
//   - Deadline nil: rolling call, no deadline
//   - EligibleCountries nil: eligible everywhere
//   - MinTRL / MaxTRL nil: unbounded on that side
//   - AmountMin / AmountMax nil: unbounded on that side
//   - Embedding empty: corpus does not (yet) support similarity search for this grant
//
// Grants are read-only inputs to the matching engine; it never mutates them.
type Grant struct {
	Id                ID
	Title             string
	Description       string // optional, empty when absent
	FundingBody       string // optional, empty when absent
	AmountMin         *int64
	AmountMax         *int64
	Deadline          *time.Time
	Tags              []string // ordered industry/category/funding-type signals
	ApplicationURL    string   // optional opaque locator
	EligibleCountries []string
	MinTRL            *int
	MaxTRL            *int
	Embedding         []float32 // precomputed vector (populated by the ingestion pipeline)
	InsertedAt        time.Time // when the grant was inserted into the corpus store
	UpdatedAt         time.Time // when the stored grant was last updated
}

// ContentID computes the grant's content-based identity from its title and
// funding body.
func (g *Grant) ContentID() ID {
	return IDFromContent(g.FundingBody + "|" + g.Title)
}

// Profile is a normalized startup profile, canonical input to the matcher.
// It is immutable for the duration of one matching request.
type Profile struct {
	TRL        int    // technology readiness level, 1-9
	Country    string // empty matches every grant
	FundingAsk int64  // requested amount in a single currency unit, 0 when unknown
}

// MatchResult pairs a grant with a fit score and the reasons behind it.
// Produced fresh per request; never persisted.
type MatchResult struct {
	Grant   *Grant
	Score   int      // 0-100
	Reasons []string // one entry per positive signal, empty only at the scoring floor
}

// Band buckets a fit score for presentation, matching the thresholds the
// dashboard draws.
type Band int

const (
	// BandWeak covers scores below 40.
	BandWeak Band = iota
	// BandStrong covers scores from 40 to 80 inclusive.
	BandStrong
	// BandTop covers scores above 80.
	BandTop
)

// ScoreBand returns the presentation band for a fit score.
func ScoreBand(score int) Band {
	switch {
	case score > 80:
		return BandTop
	case score >= 40:
		return BandStrong
	default:
		return BandWeak
	}
}

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandTop:
		return "top"
	case BandStrong:
		return "strong"
	default:
		return "weak"
	}
}
