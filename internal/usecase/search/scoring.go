package search

import (
	"math"
	"sort"

	domsearch "github.com/recruitkit/resumedex/internal/domain/search"
)

// Boost tiers for semantic mode. Boosting is strictly monotone, so the
// KNN order by base similarity survives it unchanged.
const (
	strongMatchThreshold = 0.8
	strongMatchBoost     = 1.2
	goodMatchThreshold   = 0.6
	goodMatchBoost       = 1.1
)

// boostSimilarity amplifies high base similarities and caps the result at 1.0.
// base > 0.8 gets a 1.2x boost, 0.6 < base <= 0.8 gets 1.1x, the rest pass through.
func boostSimilarity(base float64) float64 {
	boosted := base
	switch {
	case base > strongMatchThreshold:
		boosted = base * strongMatchBoost
	case base > goodMatchThreshold:
		boosted = base * goodMatchBoost
	}
	return math.Min(boosted, 1.0)
}

// rankSemantic filters candidates by the pre-boost similarity floor, applies
// boosting, and returns results sorted by boosted similarity.
func rankSemantic(candidates []domsearch.Candidate, minSimilarity float64) []domsearch.Result {
	results := make([]domsearch.Result, 0, len(candidates))
	for _, c := range candidates {
		// The floor applies to base similarity, before any boost.
		if c.Similarity < minSimilarity {
			continue
		}
		results = append(results, domsearch.NewSemanticResult(
			c.ID, c.Category, c.Body, boostSimilarity(c.Similarity),
		))
	}
	sortResults(results)
	return results
}

// sortResults orders by total score descending; equal scores break toward
// the lower resume ID so rankings are stable across runs.
func sortResults(results []domsearch.Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalScore() != results[j].TotalScore() {
			return results[i].TotalScore() > results[j].TotalScore()
		}
		return results[i].ID() < results[j].ID()
	})
}

// cosineSimilarity computes max(0, cos(a, b)), matching the store's
// distance-to-similarity conversion. Mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return math.Max(0, dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}
