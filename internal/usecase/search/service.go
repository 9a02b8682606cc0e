package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/recruitkit/resumedex/internal/domain"
	domsearch "github.com/recruitkit/resumedex/internal/domain/search"
	"github.com/recruitkit/resumedex/internal/metrics"
)

// hybridRangeRadius is the cosine distance cutoff for the vector branch of
// hybrid search. Distance below 0.8 means base similarity above 0.2.
const hybridRangeRadius = 0.8

// defaultCandidateLimit caps the per-branch candidate set in hybrid mode.
const defaultCandidateLimit = 100

// Service ranks resumes against a query in semantic or hybrid mode.
type Service struct {
	repo           Repository
	embed          Embedder
	candidateLimit int
	logger         *zap.Logger
}

// New creates a search service. candidateLimit <= 0 falls back to the default.
func New(repo Repository, embed Embedder, candidateLimit int, logger *zap.Logger) *Service {
	if candidateLimit <= 0 {
		candidateLimit = defaultCandidateLimit
	}
	return &Service{
		repo:           repo,
		embed:          embed,
		candidateLimit: candidateLimit,
		logger:         logger,
	}
}

// Search executes a resume search in the mode selected by the request.
// An embedding provider failure degrades to an empty result list; storage
// failures are returned to the caller.
func (s *Service) Search(ctx context.Context, req *domsearch.Request) ([]domsearch.Result, error) {
	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		s.logger.Warn("Query embedding failed, returning no results",
			zap.String("mode", string(req.Mode())),
			zap.Error(err),
		)
		metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode()), "embed_error").Inc()
		return []domsearch.Result{}, nil
	}

	var results []domsearch.Result

	switch req.Mode() {
	case domsearch.Semantic:
		results, err = s.searchSemantic(ctx, embResult.Embedding, req)
	case domsearch.Hybrid:
		results, err = s.searchHybrid(ctx, embResult.Embedding, req)
	default:
		return nil, fmt.Errorf("unsupported search mode: %s", req.Mode())
	}

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode()), "error").Inc()
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode()), "success").Inc()
	return results, nil
}

// searchSemantic runs KNN, drops candidates below the similarity floor, and
// ranks the rest by boosted similarity.
func (s *Service) searchSemantic(
	ctx context.Context, vector []float32, req *domsearch.Request,
) ([]domsearch.Result, error) {
	candidates, err := s.repo.SearchKNN(ctx, vector, req.Category(), req.TopK())
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	return rankSemantic(candidates, req.MinSimilarity()), nil
}

// searchHybrid takes the union of a vector range query and a BM25 query and
// ranks it by the weighted sum of raw similarity and text relevance. Neither
// the boost nor the similarity floor applies here.
func (s *Service) searchHybrid(
	ctx context.Context, vector []float32, req *domsearch.Request,
) ([]domsearch.Result, error) {
	if !s.repo.SupportsTextSearch(ctx) {
		return nil, domain.ErrTextSearchNotSupported
	}

	vectorCands, err := s.repo.SearchRange(
		ctx, vector, req.Category(), hybridRangeRadius, s.candidateLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search range: %w", err)
	}

	textCands, err := s.repo.SearchBM25(ctx, req.Query(), req.Category(), s.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("search bm25: %w", err)
	}

	return fuseHybrid(vectorCands, textCands, vector, req.VectorWeight(), req.TopK()), nil
}
