package search

import (
	"context"

	"github.com/recruitkit/resumedex/internal/domain"
	domsearch "github.com/recruitkit/resumedex/internal/domain/search"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	SearchKNN(
		ctx context.Context, vector []float32, category string, topK int,
	) ([]domsearch.Candidate, error)

	SearchRange(
		ctx context.Context, vector []float32, category string, radius float64, limit int,
	) ([]domsearch.Candidate, error)

	SearchBM25(
		ctx context.Context, query, category string, topK int,
	) ([]domsearch.Candidate, error)

	SupportsTextSearch(ctx context.Context) bool
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
