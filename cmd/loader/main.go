// Command loader bulk-ingests a resume CSV into the search store.
// It embeds bodies in batches, writes hash records through a pipeline,
// and checkpoints progress so an interrupted run resumes cleanly:
//
//	loader -file resumes.csv -cursor .loader-cursor.json
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/recruitkit/resumedex/internal/config"
	dbRedis "github.com/recruitkit/resumedex/internal/db/redis"
	logpkg "github.com/recruitkit/resumedex/internal/logger"
	"github.com/recruitkit/resumedex/internal/metrics"
	resumerepo "github.com/recruitkit/resumedex/internal/repository/resume"
	openaiEmb "github.com/recruitkit/resumedex/internal/transport/openai"
	"github.com/recruitkit/resumedex/internal/usecase/ingest"
	"github.com/recruitkit/resumedex/internal/version"
)

func main() {
	filePath := flag.String("file", "", "path to the resume CSV file")
	cursorPath := flag.String("cursor", ".loader-cursor.json", "path to the checkpoint file")
	batchSize := flag.Int("batch", ingest.DefaultBatchSize, "resumes per embedding batch")
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting resume loader",
		zap.String("build", version.String()),
		zap.String("file", *filePath),
		zap.Int("batch", *batchSize),
	)

	if *filePath == "" {
		logger.Fatal("-file is required")
	}

	if err := run(cfg, *filePath, *cursorPath, *batchSize, logger); err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}
}

func run(cfg config.Config, filePath, cursorPath string, batchSize int, logger *zap.Logger) error {
	ctx := context.Background()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return err
	}

	metrics.RegisterEmbeddingMetrics()

	embedder, err := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		MaxTokens:  cfg.Embedding.MaxTokens,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	repo := resumerepo.New(store, resumerepo.IndexParams{
		Dimensions:  cfg.Embedding.Dimensions,
		HNSWM:       cfg.Index.HNSWM,
		HNSWEFBuild: cfg.Index.HNSWEFConstruct,
	})
	if err := repo.EnsureIndex(ctx); err != nil {
		return err
	}

	svc := ingest.New(repo, embedder, batchSize, logger)

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	reader, err := newResumeReader(f)
	if err != nil {
		return err
	}

	cur, err := loadCursor(cursorPath)
	if err != nil {
		return err
	}
	if cur.Offset > 0 {
		logger.Info("Resuming from checkpoint", zap.Int("offset", cur.Offset))
	}

	var total ingest.Report
	row := 0
	for {
		chunk, n, err := readChunk(reader, batchSize, cur.Offset, &row)
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}

		if len(chunk) > 0 {
			report, err := svc.Ingest(ctx, chunk)
			total.Stored += report.Stored
			total.Skipped += report.Skipped
			total.Tokens += report.Tokens
			if err != nil {
				return err
			}
		}

		// Chunk committed, move the checkpoint past it.
		cur.Offset = row
		if err := saveCursor(cursorPath, cur); err != nil {
			return err
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}

	logger.Info("Ingestion complete",
		zap.Int("stored", total.Stored),
		zap.Int("skipped", total.Skipped),
		zap.Int("tokens", total.Tokens),
		zap.Int("indexed_total", count),
	)
	return nil
}

// readChunk reads up to batchSize rows, dropping any before the
// checkpoint offset. n reports rows consumed from the file so the
// caller can tell a skipped-over chunk from end of file.
func readChunk(r *resumeReader, batchSize, offset int, row *int) ([]ingest.Document, int, error) {
	chunk := make([]ingest.Document, 0, batchSize)
	n := 0
	for len(chunk) < batchSize {
		doc, err := r.Next()
		if errors.Is(err, io.EOF) {
			return chunk, n, nil
		}
		if err != nil {
			return nil, 0, err
		}
		n++
		*row++
		if *row <= offset {
			continue
		}
		chunk = append(chunk, doc)
	}
	return chunk, n, nil
}
