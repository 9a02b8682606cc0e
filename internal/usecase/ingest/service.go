package ingest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/recruitkit/resumedex/internal/domain"
)

// DefaultBatchSize is how many resumes are embedded and stored per round-trip.
const DefaultBatchSize = 64

// Document is a raw resume before embedding.
type Document struct {
	ID       int
	Category string
	Body     string
}

// Report summarizes one ingestion run.
type Report struct {
	Stored  int
	Skipped int
	Tokens  int
}

// Service embeds and stores resumes in batches.
type Service struct {
	writer    ResumeWriter
	embed     Embedder
	batchSize int
	logger    *zap.Logger
}

// New creates an ingest service. batchSize <= 0 falls back to the default.
func New(writer ResumeWriter, embed Embedder, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{
		writer:    writer,
		embed:     embed,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Ingest embeds and stores the given documents. Documents with an empty
// body are skipped and counted; embedding or storage failures abort the
// run so the caller can resume from its checkpoint.
func (s *Service) Ingest(ctx context.Context, docs []Document) (Report, error) {
	var report Report

	batch := make([]Document, 0, s.batchSize)
	for _, doc := range docs {
		if strings.TrimSpace(doc.Body) == "" {
			s.logger.Warn("Skipping resume with empty body", zap.Int("id", doc.ID))
			report.Skipped++
			continue
		}
		batch = append(batch, doc)

		if len(batch) == s.batchSize {
			if err := s.ingestBatch(ctx, batch, &report); err != nil {
				return report, err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := s.ingestBatch(ctx, batch, &report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (s *Service) ingestBatch(ctx context.Context, batch []Document, report *Report) error {
	texts := make([]string, len(batch))
	for i, doc := range batch {
		texts[i] = doc.Body
	}

	embResult, err := s.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch of %d: %w", len(batch), err)
	}
	report.Tokens += embResult.TotalTokens

	resumes := make([]domain.Resume, len(batch))
	for i, doc := range batch {
		resumes[i] = domain.Resume{
			ID:       doc.ID,
			Category: doc.Category,
			Body:     doc.Body,
			Vector:   embResult.Embeddings[i],
		}
	}

	if err := s.writer.PutBatch(ctx, resumes); err != nil {
		return fmt.Errorf("store batch of %d: %w", len(resumes), err)
	}

	report.Stored += len(resumes)
	s.logger.Info("Stored resume batch",
		zap.Int("count", len(resumes)),
		zap.Int("tokens", embResult.TotalTokens),
	)
	return nil
}
