package search

// Result is a single ranked search hit with named score components.
// Score components are unweighted: for hybrid results,
// total = weight*vectorScore + (1-weight)*textScore.
type Result struct {
	id          int
	category    string
	body        string
	similarity  float64
	vectorScore float64
	textScore   float64
	totalScore  float64
}

// NewSemanticResult creates a semantic-mode hit ranked by boosted similarity.
func NewSemanticResult(id int, category, body string, similarity float64) Result {
	return Result{
		id:         id,
		category:   category,
		body:       body,
		similarity: similarity,
		totalScore: similarity,
	}
}

// NewHybridResult creates a hybrid-mode hit ranked by the fused total score.
func NewHybridResult(id int, category, body string, vectorScore, textScore, totalScore float64) Result {
	return Result{
		id:          id,
		category:    category,
		body:        body,
		similarity:  vectorScore,
		vectorScore: vectorScore,
		textScore:   textScore,
		totalScore:  totalScore,
	}
}

// ID returns the resume identifier.
func (r *Result) ID() int { return r.id }

// Category returns the resume category label.
func (r *Result) Category() string { return r.category }

// Body returns the full resume text.
func (r *Result) Body() string { return r.body }

// Similarity returns the vector similarity component
// (boosted in semantic mode, raw cosine in hybrid mode).
func (r *Result) Similarity() float64 { return r.similarity }

// VectorScore returns the raw cosine similarity component (hybrid mode).
func (r *Result) VectorScore() float64 { return r.vectorScore }

// TextScore returns the raw BM25 relevance component (hybrid mode).
func (r *Result) TextScore() float64 { return r.textScore }

// TotalScore returns the score the result is ranked by.
func (r *Result) TotalScore() float64 { return r.totalScore }
