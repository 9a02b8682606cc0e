package ingest

import (
	"context"

	"github.com/recruitkit/resumedex/internal/domain"
)

// ResumeWriter persists embedded resumes.
type ResumeWriter interface {
	PutBatch(ctx context.Context, resumes []domain.Resume) error
}

// Embedder vectorizes resume bodies in bulk.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
