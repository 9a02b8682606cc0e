package search

import (
	"context"
	"errors"
	"testing"

	"github.com/recruitkit/resumedex/internal/db"
	"github.com/recruitkit/resumedex/internal/domain"
)

func TestSearchKNN_BuildsQuery(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.KNNQuery
	ms.knnFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{}, nil
	}

	_, err := repo.SearchKNN(context.Background(), []float32{0.1, 0.2}, "HR", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.IndexName != domain.IndexName {
		t.Errorf("unexpected index: %s", gotQuery.IndexName)
	}
	if gotQuery.K != 5 || gotQuery.Category != "HR" {
		t.Errorf("unexpected query: %+v", gotQuery)
	}
	for _, f := range gotQuery.ReturnFields {
		if f == "embedding" {
			t.Error("KNN branch must not fetch stored embeddings")
		}
	}
}

func TestSearchKNN_ParsesCandidates(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.knnFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{
					Key:    "resumedex:resume:3",
					Score:  0.91,
					Fields: map[string]string{"id": "3", "category": "ENGINEERING", "body": "golang dev"},
				},
				{
					Key:    "resumedex:resume:7",
					Score:  0.64,
					Fields: map[string]string{"id": "7", "category": "FINANCE", "body": "auditor"},
				},
			},
		}, nil
	}

	cands, err := repo.SearchKNN(context.Background(), []float32{0.1}, "", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].ID != 3 || cands[0].Similarity != 0.91 {
		t.Errorf("unexpected candidate: %+v", cands[0])
	}
	if cands[0].TextScore != 0 {
		t.Errorf("vector branch must not set a text score: %+v", cands[0])
	}
}

func TestSearchKNN_PropagatesStoreError(t *testing.T) {
	repo, ms := newTestRepo(t)

	storeErr := errors.New("connection reset")
	ms.knnFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, storeErr
	}

	_, err := repo.SearchKNN(context.Background(), []float32{0.1}, "", 5)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if errors.Is(err, domain.ErrIndexNotProvisioned) {
		t.Fatal("plain store errors must not read as a missing index")
	}
}

func TestSearch_MissingIndexIsIndexNotProvisioned(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.knnFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, db.ErrIndexNotFound
	}
	ms.rangeFn = func(_ context.Context, _ *db.RangeQuery) (*db.SearchResult, error) {
		return nil, db.ErrIndexNotFound
	}
	ms.bm25Fn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return nil, db.ErrIndexNotFound
	}

	ctx := context.Background()
	tests := []struct {
		name string
		call func() error
	}{
		{"knn", func() error {
			_, err := repo.SearchKNN(ctx, []float32{0.1}, "", 5)
			return err
		}},
		{"range", func() error {
			_, err := repo.SearchRange(ctx, []float32{0.1}, "", 0.8, 100)
			return err
		}},
		{"bm25", func() error {
			_, err := repo.SearchBM25(ctx, "recruiter", "", 100)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, domain.ErrIndexNotProvisioned) {
				t.Fatalf("expected ErrIndexNotProvisioned, got %v", err)
			}
		})
	}
}

func TestSearchRange_BuildsQuery(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.RangeQuery
	ms.rangeFn = func(_ context.Context, q *db.RangeQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{}, nil
	}

	_, err := repo.SearchRange(context.Background(), []float32{0.1}, "", 0.8, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Radius != 0.8 || gotQuery.Limit != 100 {
		t.Errorf("unexpected query: %+v", gotQuery)
	}
}

func TestSearchBM25_ReturnsEmbeddings(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.TextQuery
	ms.bm25Fn = func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{
				{
					Key:   "resumedex:resume:5",
					Score: 2.5,
					Fields: map[string]string{
						"id":        "5",
						"category":  "HR",
						"body":      "technical recruiter",
						"embedding": vectorBlob([]float32{0.5, -0.5}),
					},
				},
			},
		}, nil
	}

	cands, err := repo.SearchBM25(context.Background(), "recruiter", "HR", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, f := range gotQuery.ReturnFields {
		if f == "embedding" {
			found = true
		}
	}
	if !found {
		t.Error("lexical branch must fetch stored embeddings")
	}

	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].TextScore != 2.5 || cands[0].Similarity != 0 {
		t.Errorf("unexpected scores: %+v", cands[0])
	}
	if len(cands[0].Vector) != 2 || cands[0].Vector[1] != -0.5 {
		t.Errorf("embedding did not decode: %v", cands[0].Vector)
	}
}

func TestParseResumeID_FallsBackToKey(t *testing.T) {
	entry := db.SearchEntry{
		Key:    "resumedex:resume:17",
		Fields: map[string]string{"category": "HR"},
	}
	if got := parseResumeID(entry); got != 17 {
		t.Errorf("expected 17, got %d", got)
	}
}
