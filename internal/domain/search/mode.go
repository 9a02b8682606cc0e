package search

// Mode is the search strategy.
type Mode string

// Search mode constants. The two modes are alternative query paths
// selected by the caller; they are never composed.
const (
	// Semantic ranks by boosted vector similarity alone.
	Semantic Mode = "semantic"
	// Hybrid fuses raw vector similarity with BM25 text relevance.
	Hybrid Mode = "hybrid"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Semantic || m == Hybrid
}
