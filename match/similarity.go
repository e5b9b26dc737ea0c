package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/poiesic/grantmatch/core"
)

// SimilarityScores computes cosine similarity between the query embedding and
// every grant carrying a precomputed embedding, converts each similarity to a
// 0-100 score via round(similarity*100), and discards grants below the
// threshold. Results are ordered by descending similarity, ties broken by
// corpus order, and truncated to limit after sorting.
//
// Grants without a stored embedding are skipped: an unembedded corpus entry
// is not version skew. A grant embedding whose length differs from the query
// embedding is version skew, and fails the whole computation with
// ErrDimensionMismatch; no partial results are returned.
func SimilarityScores(query []float32, corpus []*core.Grant, threshold float32, limit int) ([]*core.MatchResult, error) {
	type scored struct {
		grant *core.Grant
		sim   float32
	}
	hits := make([]scored, 0, len(corpus))

	for _, grant := range corpus {
		if grant == nil || len(grant.Embedding) == 0 {
			continue
		}
		if len(grant.Embedding) != len(query) {
			return nil, fmt.Errorf("%w: query has %d dimensions, grant %d has %d",
				ErrDimensionMismatch, len(query), grant.Id, len(grant.Embedding))
		}

		sim := cosineSimilarity(query, grant.Embedding)
		if sim < threshold {
			continue
		}
		hits = append(hits, scored{grant: grant, sim: sim})
	}

	// Sort on the raw similarity, not the rounded score; stable so equal
	// similarities keep corpus order.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].sim > hits[j].sim
	})

	results := make([]*core.MatchResult, len(hits))
	for i, hit := range hits {
		results[i] = &core.MatchResult{
			Grant: hit.grant,
			Score: similarityScore(hit.sim),
		}
	}

	return truncate(results, limit), nil
}

// cosineSimilarity computes the cosine of the angle between two equal-length
// vectors. Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// similarityScore converts a similarity to an integer fit score,
// round(similarity*100) clipped to [0,100].
func similarityScore(sim float32) int {
	score := int(math.Round(float64(sim) * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
