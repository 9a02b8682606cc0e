package search

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/recruitkit/resumedex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	knnFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	rangeFn func(ctx context.Context, q *db.RangeQuery) (*db.SearchResult, error)
	bm25Fn  func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	textOK  bool
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.knnFn != nil {
		return m.knnFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchRange(ctx context.Context, q *db.RangeQuery) (*db.SearchResult, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.bm25Fn != nil {
		return m.bm25Fn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SupportsTextSearch(_ context.Context) bool {
	return m.textOK
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{textOK: true}
	return New(ms), ms
}

func vectorBlob(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
