// Package chi exposes the search API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/meshly/contactrank/internal/domain"
	healthuc "github.com/meshly/contactrank/internal/usecase/health"
	rankuc "github.com/meshly/contactrank/internal/usecase/rank"
	weightsuc "github.com/meshly/contactrank/internal/usecase/weights"
)

// Machine-readable error codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeStoreUnavailable = "store_unavailable"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the HTTP API.
type Server struct {
	rank          *rankuc.Service
	weights       *weightsuc.Synthesizer
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	rank *rankuc.Service,
	weights *weightsuc.Synthesizer,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		rank:    rank,
		weights: weights,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Post("/v1/search", s.SearchContacts)
	r.Post("/v1/weights", s.SynthesizeWeights)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchContacts handles POST /v1/search.
func (s *Server) SearchContacts(w http.ResponseWriter, r *http.Request) {
	var req searchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	searchReq, err := searchRequestFromDTO(&req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	page, err := s.rank.Search(r.Context(), searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToDTO(page))
}

// SynthesizeWeights handles POST /v1/weights. It exposes the weight
// synthesis step on its own so callers can precompute and reuse vectors.
func (s *Server) SynthesizeWeights(w http.ResponseWriter, r *http.Request) {
	var req weightsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}

	g, err := goalFromDTO(req.Goal)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	v := s.weights.Synthesize(r.Context(), req.Query, g)
	writeJSON(w, http.StatusOK, weightsResponseDTO{Weights: weightsToDTO(v)})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	writeJSON(w, httpStatus, healthResponseDTO{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponseDTO{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidRequest) {
		// Validation messages are written for the caller; pass them through.
		return err.Error()
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return domain.ErrStoreUnavailable.Error()
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

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
