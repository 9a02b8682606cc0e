package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/recruitkit/resumedex/internal/domain"
	domsearch "github.com/recruitkit/resumedex/internal/domain/search"
	logpkg "github.com/recruitkit/resumedex/internal/logger"
	healthuc "github.com/recruitkit/resumedex/internal/usecase/health"
	searchuc "github.com/recruitkit/resumedex/internal/usecase/search"
)

// previewLength is how many characters of the resume body a search row carries.
const previewLength = 200

// ResumeReader reads and removes stored resumes.
type ResumeReader interface {
	Get(ctx context.Context, id int) (domain.Resume, error)
	Delete(ctx context.Context, id int) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search API over chi.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	resumes       ResumeReader
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	resumes ResumeReader,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		health:  health,
		resumes: resumes,
		logger:  logger,
	}
	// Only sentinels the mounted routes can produce get a mapping;
	// anything else falls through to a 500.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "resume_not_found"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
		sentinelHandler(domain.ErrTextSearchNotSupported, http.StatusNotImplemented, "text_search_not_supported"),
		sentinelHandler(domain.ErrIndexNotProvisioned, http.StatusServiceUnavailable, "index_not_provisioned"),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.handleSearch)
	r.Get("/resumes/{id}", s.handleGetResume)
	r.Delete("/resumes/{id}", s.handleDeleteResume)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// --- DTOs ---

type searchRequestDTO struct {
	Query         string   `json:"query"`
	Mode          string   `json:"mode,omitempty"`
	Category      string   `json:"category,omitempty"`
	TopK          int      `json:"top_k,omitempty"`
	MinSimilarity *float64 `json:"min_similarity,omitempty"`
	VectorWeight  *float64 `json:"vector_weight,omitempty"`
}

type searchRowDTO struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Preview  string `json:"preview"`
	Match    string `json:"match"`

	Similarity *float64 `json:"similarity,omitempty"`

	TotalScore  *float64 `json:"total_score,omitempty"`
	VectorScore *float64 `json:"vector_score,omitempty"`
	TextScore   *float64 `json:"text_score,omitempty"`
}

type searchResponseDTO struct {
	Items []searchRowDTO `json:"items"`
	Total int            `json:"total"`
	Mode  string         `json:"mode"`
}

type resumeDTO struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Body     string `json:"body"`
}

type errorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Handlers ---

// handleSearch handles POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var dto searchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	req, err := domsearch.New(
		dto.Query,
		domsearch.Mode(dto.Mode),
		dto.Category,
		dto.TopK,
		dto.MinSimilarity,
		dto.VectorWeight,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]searchRowDTO, len(results))
	for i := range results {
		items[i] = searchRowFromResult(&results[i], req.Mode())
	}

	writeJSON(w, http.StatusOK, searchResponseDTO{
		Items: items,
		Total: len(items),
		Mode:  string(req.Mode()),
	})
}

// handleGetResume handles GET /resumes/{id}.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Resume ID must be an integer")
		return
	}

	res, err := s.resumes.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resumeDTO{ID: res.ID, Category: res.Category, Body: res.Body})
}

// handleDeleteResume handles DELETE /resumes/{id}.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Resume ID must be an integer")
		return
	}

	if err := s.resumes.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// --- Response shaping ---

// searchRowFromResult shapes a ranked hit for transport. Semantic rows
// carry one similarity; hybrid rows carry all three components so the
// caller can reconstruct total = w*vector + (1-w)*text.
func searchRowFromResult(res *domsearch.Result, m domsearch.Mode) searchRowDTO {
	row := searchRowDTO{
		ID:       res.ID(),
		Category: res.Category(),
		Preview:  preview(res.Body()),
		Match:    formatMatch(res.TotalScore()),
	}

	if m == domsearch.Semantic {
		sim := res.Similarity()
		row.Similarity = &sim
		return row
	}

	total := res.TotalScore()
	vector := res.VectorScore()
	text := res.TextScore()
	row.TotalScore = &total
	row.VectorScore = &vector
	row.TextScore = &text
	return row
}

// preview returns the first 200 characters of the body, rune-safe.
func preview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewLength {
		return body
	}
	return string(runes[:previewLength]) + "..."
}

// formatMatch renders a score as a percentage with one decimal.
func formatMatch(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// --- Error handling ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorDTO{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrTextSearchNotSupported,
		domain.ErrIndexNotProvisioned,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	// Request-scoped logger carries request_id when the middleware is mounted.
	log := logpkg.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
