package search

// Candidate is a raw scoring candidate returned by the search repository,
// before boosting, thresholding and fusion are applied.
type Candidate struct {
	ID       int
	Category string
	Body     string

	// Similarity is the base cosine similarity computed by the store
	// (1 - cosine distance, clamped to [0,1]). Zero for candidates that
	// were reached only through the lexical branch.
	Similarity float64

	// TextScore is the BM25 relevance from the full-text index. Zero for
	// candidates that were reached only through the vector branch.
	TextScore float64

	// Vector holds the stored embedding when the branch returns it, so
	// similarity can be computed client-side for lexical-only candidates.
	Vector []float32
}
