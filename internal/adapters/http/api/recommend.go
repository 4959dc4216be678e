// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/skillforge/skillrec/internal/domain/ranking"
)

// RecommendHandler serves GET|POST /api/skills/recommend.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandleRecommend accepts the query as URL parameters on GET or as a JSON
// body on POST and returns the ranked recommendation.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var q ranking.Query
	switch r.Method {
	case http.MethodGet:
		params := r.URL.Query()
		q.Task = params.Get("task")
		q.Agent = params.Get("agent")
		if raw := params.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "bad_request", errors.New("limit must be an integer"))
				return
			}
			q.Limit = limit
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid JSON body"))
			return
		}
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		return
	}

	rec, err := h.deps.Recommend(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query": map[string]any{
			"task":  rec.Query.Task,
			"agent": rec.Query.Agent,
			"limit": ranking.ClampLimit(rec.Query.Limit),
		},
		"retrievalStrategy": rec.Result.Strategy,
		"recommendation":    rec.Result.Best,
		"candidates":        rec.Result.Candidates,
		"benchmarkContext":  rec.Context,
	})
}
