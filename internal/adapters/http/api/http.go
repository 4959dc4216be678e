// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/skillforge/skillrec/internal/adapters/repository"
	service "github.com/skillforge/skillrec/internal/app"
	"github.com/skillforge/skillrec/internal/domain/integrity"
	"github.com/skillforge/skillrec/internal/domain/model"
	"github.com/skillforge/skillrec/internal/domain/ranking"
	"github.com/skillforge/skillrec/pkg/metrics"
)

// catalogSource names the backing store in list responses.
const catalogSource = "sqlite"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Snapshot returns the current validated catalog.
	Snapshot(ctx context.Context) (*model.Catalog, error)

	// Recommend ranks the catalog against a query.
	Recommend(ctx context.Context, q ranking.Query) (*service.Recommendation, error)

	// SkillDetail resolves one skill by slug or id.
	SkillDetail(ctx context.Context, idOrSlug string) (*service.SkillDetail, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	skillsHandler    *SkillsHandler
	recommendHandler *RecommendHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		skillsHandler:    NewSkillsHandler(deps),
		recommendHandler: NewRecommendHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/skills/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/api/skills", MetricsMiddleware(s.skillsHandler.HandleSkills, "skills"))
	mux.HandleFunc("/api/skills/", MetricsMiddleware(s.skillsHandler.HandleSkills, "skills"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeMethodNotAllowed answers 405 with the Allow header listing the
// methods the resource supports.
func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
}

// writeServiceError maps service-layer failures onto the documented status
// codes. Integrity violations carry the violated invariant in details.
func writeServiceError(w http.ResponseWriter, err error) {
	var violation *integrity.Violation
	switch {
	case errors.Is(err, service.ErrInvalidTask):
		metrics.RecordErrorByComponent("ranking", "invalid_task")
		writeError(w, http.StatusBadRequest, "invalid_task", err)
	case errors.Is(err, service.ErrNoMatch):
		metrics.RecordErrorByComponent("ranking", "no_match_found")
		writeError(w, http.StatusNotFound, "no_match_found", err)
	case errors.Is(err, service.ErrSkillNotFound):
		metrics.RecordErrorByComponent("catalog", "skill_not_found")
		writeError(w, http.StatusNotFound, "skill_not_found", err)
	case errors.As(err, &violation):
		metrics.RecordErrorByComponent("integrity", "benchmark_integrity_failed")
		writeJSON(w, http.StatusConflict, errorResponse{
			Code:    "benchmark_integrity_failed",
			Message: "catalog failed benchmark integrity validation",
			Details: violation.Reason,
		})
	case errors.Is(err, repository.ErrUnavailable):
		metrics.RecordErrorByComponent("store", "skills_db_unavailable")
		writeError(w, http.StatusServiceUnavailable, "skills_db_unavailable", err)
	default:
		metrics.RecordErrorByComponent("catalog", "skills_catalog_load_failed")
		writeError(w, http.StatusInternalServerError, "skills_catalog_load_failed", err)
	}
}
