package db

// KNNQuery is the input for top-K vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	Category     string // optional TAG pre-filter
	ReturnFields []string
}

// RangeQuery is the input for vector range search: every record whose
// cosine distance to the query vector is below Radius.
type RangeQuery struct {
	IndexName    string
	Vector       []float32
	Radius       float64
	Limit        int
	Category     string // optional TAG pre-filter
	ReturnFields []string
}

// TextQuery is the input for BM25 text search.
type TextQuery struct {
	IndexName    string
	Query        string
	TopK         int
	Category     string // optional TAG pre-filter
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
// Score holds base cosine similarity for vector queries (1 - distance,
// clamped to [0,1]) and the BM25 score for text queries.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
