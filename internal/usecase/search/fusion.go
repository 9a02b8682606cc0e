package search

import (
	domsearch "github.com/recruitkit/resumedex/internal/domain/search"
)

// fusedCandidate accumulates both score components for one resume during
// the union merge.
type fusedCandidate struct {
	id         int
	category   string
	body       string
	similarity float64
	textScore  float64
}

// fuseHybrid merges the vector and lexical candidate sets into one ranking.
// The candidate set is a union: a resume only needs to clear one branch.
// Each result is scored weight*similarity + (1-weight)*textScore with raw,
// unboosted components, then the list is cut to topK.
func fuseHybrid(
	vectorCands, textCands []domsearch.Candidate,
	queryVector []float32,
	weight float64,
	topK int,
) []domsearch.Result {
	merged := make(map[int]*fusedCandidate, len(vectorCands)+len(textCands))

	for _, c := range vectorCands {
		merged[c.ID] = &fusedCandidate{
			id:         c.ID,
			category:   c.Category,
			body:       c.Body,
			similarity: c.Similarity,
		}
	}

	for _, c := range textCands {
		if fc, ok := merged[c.ID]; ok {
			fc.textScore = c.TextScore
			continue
		}
		// Lexical-only candidate: the range query never saw it, so its
		// similarity is computed here from the stored embedding.
		merged[c.ID] = &fusedCandidate{
			id:         c.ID,
			category:   c.Category,
			body:       c.Body,
			similarity: cosineSimilarity(queryVector, c.Vector),
			textScore:  c.TextScore,
		}
	}

	results := make([]domsearch.Result, 0, len(merged))
	for _, fc := range merged {
		total := weight*fc.similarity + (1-weight)*fc.textScore
		results = append(results, domsearch.NewHybridResult(
			fc.id, fc.category, fc.body, fc.similarity, fc.textScore, total,
		))
	}

	sortResults(results)

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
