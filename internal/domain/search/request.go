package search

import "fmt"

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTopK    = 5
	MaxTopK        = 100
	// DefaultMinSimilarity is the semantic-mode floor applied when the caller sends none.
	DefaultMinSimilarity = 0.5
	// DefaultVectorWeight gives 70% weight to vector similarity in hybrid fusion.
	DefaultVectorWeight = 0.7
)

// Request is a validated search query. Constructed per call, never stored.
type Request struct {
	query         string
	searchMode    Mode
	category      string
	topK          int
	minSimilarity float64
	vectorWeight  float64
}

// New validates and normalizes search parameters.
// Defaults: mode=semantic, topK=5, minSimilarity=0.5, vectorWeight=0.7.
func New(
	query string,
	m Mode,
	category string,
	topK int,
	minSimilarity, vectorWeight *float64,
) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if m == "" {
		m = Semantic
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("invalid search mode: %q", m)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	minSim := DefaultMinSimilarity
	if minSimilarity != nil {
		minSim = *minSimilarity
	}
	if minSim < 0 || minSim > 1 {
		return Request{}, fmt.Errorf("min_similarity must be between 0 and 1")
	}

	weight := DefaultVectorWeight
	if vectorWeight != nil {
		weight = *vectorWeight
	}
	if weight < 0 || weight > 1 {
		return Request{}, fmt.Errorf("vector_weight must be between 0 and 1")
	}

	return Request{
		query:         query,
		searchMode:    m,
		category:      category,
		topK:          topK,
		minSimilarity: minSim,
		vectorWeight:  weight,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r *Request) Mode() Mode { return r.searchMode }

// Category returns the optional category pre-filter ("" = all categories).
func (r *Request) Category() string { return r.category }

// TopK returns the maximum number of results to return.
func (r *Request) TopK() int { return r.topK }

// MinSimilarity returns the semantic-mode similarity floor.
// The floor is applied to pre-boost base similarity.
func (r *Request) MinSimilarity() float64 { return r.minSimilarity }

// VectorWeight returns the hybrid fusion weight for the vector component.
func (r *Request) VectorWeight() float64 { return r.vectorWeight }
