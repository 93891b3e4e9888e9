package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/linkvault/linkvault/internal/domain"
	contentuc "github.com/linkvault/linkvault/internal/usecase/content"
	healthuc "github.com/linkvault/linkvault/internal/usecase/health"
	searchuc "github.com/linkvault/linkvault/internal/usecase/search"
	shareuc "github.com/linkvault/linkvault/internal/usecase/share"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server carries the use case services behind the HTTP API.
type Server struct {
	content       *contentuc.Service
	search        *searchuc.Service
	share         *shareuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	content *contentuc.Service,
	search *searchuc.Service,
	share *shareuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		content: content,
		search:  search,
		share:   share,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidContentType, http.StatusBadRequest),
		sentinelHandler(domain.ErrContentNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrShareNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway),
	}
	return s
}

// Routes mounts every endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/content", s.CreateContent)
		r.Get("/content", s.ListContent)
		r.Delete("/content/{id}", s.DeleteContent)
		r.Post("/search", s.Search)
		r.Post("/share", s.ToggleShare)
		r.Get("/share/{hash}", s.ResolveShare)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type createContentRequest struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Link        string   `json:"link"`
	PreviewHTML string   `json:"previewHtml"`
	Tags        []string `json:"tags"`
}

// CreateContent handles POST /api/v1/content.
func (s *Server) CreateContent(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req createContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := s.content.Create(r.Context(), owner, contentuc.CreateInput{
		Title:       req.Title,
		Type:        req.Type,
		Link:        req.Link,
		PreviewHTML: req.PreviewHTML,
		Tags:        req.Tags,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Content added successfully",
		"contentId":   rec.ID,
		"previewHtml": rec.PreviewHTML,
	})
}

// ListContent handles GET /api/v1/content.
func (s *Server) ListContent(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	views, err := s.content.List(r.Context(), owner)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"contents": views})
}

// DeleteContent handles DELETE /api/v1/content/{id}.
func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	if err := s.content.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Content deleted successfully",
	})
}

type searchRequest struct {
	Query string `json:"query"`
	Limit string `json:"limit"`
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := s.search.Search(r.Context(), owner, req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Search results retrieved successfully",
		"data":    results,
	})
}

type toggleShareRequest struct {
	Share bool `json:"share"`
}

// ToggleShare handles POST /api/v1/share.
func (s *Server) ToggleShare(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req toggleShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !req.Share {
		if err := s.share.Disable(r.Context(), owner); err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Share link removed"})
		return
	}

	hash, err := s.share.Enable(r.Context(), owner)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Share link created",
		"hash":    hash,
	})
}

// ResolveShare handles GET /api/v1/share/{hash}. No auth: the hash is the
// capability.
func (s *Server) ResolveShare(w http.ResponseWriter, r *http.Request) {
	views, err := s.share.Resolve(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"contents": views})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// owner extracts the authenticated user id; writes 401 when absent.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := OwnerID(r)
	if owner == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return "", false
	}
	return owner, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrInvalidInput,
		domain.ErrInvalidContentType,
		domain.ErrContentNotFound,
		domain.ErrShareNotFound,
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
