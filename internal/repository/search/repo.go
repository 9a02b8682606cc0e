package search

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/recruitkit/resumedex/internal/db"
	"github.com/recruitkit/resumedex/internal/domain"
	domsearch "github.com/recruitkit/resumedex/internal/domain/search"
)

// Hash fields requested back from FT.SEARCH. The vector branches do not
// need the stored embedding; the lexical branch returns it so cosine
// similarity can be computed for candidates the vector branch missed.
var (
	vectorReturnFields = []string{"id", "category", "body"}
	textReturnFields   = []string{"id", "category", "body", "embedding"}
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchRange(ctx context.Context, q *db.RangeQuery) (*db.SearchResult, error)
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SupportsTextSearch(ctx context.Context) bool
}

// Repo implements usecase/search.Repository over the resume index.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SupportsTextSearch proxies the capability check from the store.
func (r *Repo) SupportsTextSearch(ctx context.Context) bool {
	return r.store.SupportsTextSearch(ctx)
}

// SearchKNN returns the topK nearest resumes by cosine similarity.
func (r *Repo) SearchKNN(
	ctx context.Context, vector []float32, category string, topK int,
) ([]domsearch.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    domain.IndexName,
		Vector:       vector,
		K:            topK,
		Category:     category,
		ReturnFields: vectorReturnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, wrapSearchErr("search knn", err)
	}

	return parseVectorCandidates(sr), nil
}

// SearchRange returns every resume whose cosine distance to the query
// vector is below radius, nearest first, capped at limit.
func (r *Repo) SearchRange(
	ctx context.Context, vector []float32, category string, radius float64, limit int,
) ([]domsearch.Candidate, error) {
	q := &db.RangeQuery{
		IndexName:    domain.IndexName,
		Vector:       vector,
		Radius:       radius,
		Limit:        limit,
		Category:     category,
		ReturnFields: vectorReturnFields,
	}

	sr, err := r.store.SearchRange(ctx, q)
	if err != nil {
		return nil, wrapSearchErr("search range", err)
	}

	return parseVectorCandidates(sr), nil
}

// SearchBM25 returns the topK lexically best-matching resumes with their
// BM25 scores and stored embeddings.
func (r *Repo) SearchBM25(
	ctx context.Context, query, category string, topK int,
) ([]domsearch.Candidate, error) {
	q := &db.TextQuery{
		IndexName:    domain.IndexName,
		Query:        query,
		TopK:         topK,
		Category:     category,
		ReturnFields: textReturnFields,
	}

	sr, err := r.store.SearchBM25(ctx, q)
	if err != nil {
		return nil, wrapSearchErr("search bm25", err)
	}

	return parseBM25Candidates(sr), nil
}

// wrapSearchErr translates the store's missing-index error into the
// domain sentinel so callers see "index not provisioned" rather than a
// generic storage failure.
func wrapSearchErr(op string, err error) error {
	if errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrIndexNotProvisioned)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// parseVectorCandidates converts vector search entries into candidates
// carrying base cosine similarity.
func parseVectorCandidates(sr *db.SearchResult) []domsearch.Candidate {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	candidates := make([]domsearch.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		candidates = append(candidates, domsearch.Candidate{
			ID:         parseResumeID(entry),
			Category:   entry.Fields["category"],
			Body:       entry.Fields["body"],
			Similarity: entry.Score,
		})
	}
	return candidates
}

// parseBM25Candidates converts text search entries into candidates
// carrying BM25 score plus the stored embedding.
func parseBM25Candidates(sr *db.SearchResult) []domsearch.Candidate {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	candidates := make([]domsearch.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		candidates = append(candidates, domsearch.Candidate{
			ID:        parseResumeID(entry),
			Category:  entry.Fields["category"],
			Body:      entry.Fields["body"],
			TextScore: entry.Score,
			Vector:    bytesToVector(entry.Fields["embedding"]),
		})
	}
	return candidates
}

// parseResumeID reads the numeric id from the indexed field, falling back
// to the key suffix.
func parseResumeID(entry db.SearchEntry) int {
	if raw, ok := entry.Fields["id"]; ok {
		if id, err := strconv.Atoi(raw); err == nil {
			return id
		}
	}
	suffix := strings.TrimPrefix(entry.Key, domain.ResumeKeyPrefix)
	id, _ := strconv.Atoi(suffix)
	return id
}

// bytesToVector deserializes a binary string to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
