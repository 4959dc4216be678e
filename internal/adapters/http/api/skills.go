// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/skillforge/skillrec/internal/domain/benchmark"
	"github.com/skillforge/skillrec/internal/domain/model"
)

// SkillsHandler serves the catalog read endpoints under /api/skills.
type SkillsHandler struct {
	deps Dependencies
}

// NewSkillsHandler creates a new skills handler.
func NewSkillsHandler(deps Dependencies) *SkillsHandler {
	return &SkillsHandler{deps: deps}
}

// skillSummary is the list-view shape of one skill.
type skillSummary struct {
	ID               string             `json:"id"`
	Slug             string             `json:"slug"`
	Name             string             `json:"name"`
	AgentFamily      string             `json:"agentFamily"`
	Summary          string             `json:"summary"`
	Keywords         []string           `json:"keywords"`
	SecurityStatus   string             `json:"securityStatus"`
	AverageScore     float64            `json:"averageScore"`
	BestScore        float64            `json:"bestScore"`
	BenchmarkedTasks int                `json:"benchmarkedTasks"`
	AgentCoverage    map[string]float64 `json:"agentCoverage"`
}

// taskScores groups a skill's score rows under one benchmark task.
type taskScores struct {
	TaskID   string             `json:"taskId"`
	TaskSlug string             `json:"taskSlug"`
	TaskName string             `json:"taskName"`
	Scores   []model.SkillScore `json:"scores"`
}

// HandleSkills dispatches every /api/skills path: the list view, the fixed
// sub-collections, and the per-skill detail. Unknown nested segments are a
// 404, never a fallback to the list.
func (h *SkillsHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/skills"), "/")
	if strings.Contains(rest, "/") {
		writeError(w, http.StatusNotFound, "not_found", ErrUnknownResource)
		return
	}

	c, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	switch rest {
	case "":
		h.handleList(w, c)
	case "catalog":
		writeJSON(w, http.StatusOK, map[string]any{
			"tasks":    c.Tasks,
			"skills":   c.Skills,
			"runs":     c.Runs,
			"scores":   c.Scores,
			"coverage": c.AgentCoverage(),
		})
	case "tasks":
		writeJSON(w, http.StatusOK, map[string]any{
			"tasks": c.Tasks,
			"total": len(c.Tasks),
		})
	case "scores":
		writeJSON(w, http.StatusOK, map[string]any{
			"scores": c.Scores,
			"total":  len(c.Scores),
		})
	case "benchmarks":
		writeJSON(w, http.StatusOK, map[string]any{
			"runs":     c.Runs,
			"scores":   c.Scores,
			"total":    len(c.Scores),
			"coverage": c.AgentCoverage(),
		})
	default:
		h.handleDetail(w, r, rest)
	}
}

// handleList answers GET /api/skills with per-skill benchmark summaries.
func (h *SkillsHandler) handleList(w http.ResponseWriter, c *model.Catalog) {
	summaries := make([]skillSummary, 0, len(c.Skills))
	for i := range c.Skills {
		skill := &c.Skills[i]
		scores := c.ScoresForSkill(skill.ID)

		coverage := make(map[string]float64, len(model.Agents))
		for _, agent := range model.Agents {
			coverage[agent] = benchmark.Average(scores, agent)
		}

		summaries = append(summaries, skillSummary{
			ID:               skill.ID,
			Slug:             skill.Slug,
			Name:             skill.Name,
			AgentFamily:      skill.AgentFamily,
			Summary:          skill.Summary,
			Keywords:         skill.Keywords,
			SecurityStatus:   skill.Security.Status,
			AverageScore:     benchmark.Average(scores, model.AgentAny),
			BestScore:        benchmark.Best(scores, model.AgentAny),
			BenchmarkedTasks: benchmark.TaskCount(scores),
			AgentCoverage:    coverage,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"source": catalogSource,
		"skills": summaries,
		"total":  len(summaries),
	})
}

// handleDetail answers GET /api/skills/{idOrSlug} with the skill's scores
// grouped by task.
func (h *SkillsHandler) handleDetail(w http.ResponseWriter, r *http.Request, idOrSlug string) {
	detail, err := h.deps.SkillDetail(r.Context(), idOrSlug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"skill":            detail.Skill,
		"averageScore":     detail.AverageScore,
		"bestScore":        detail.BestScore,
		"benchmarkedTasks": detail.BenchmarkedTasks,
		"taskScores":       groupByTask(detail.Scores),
	})
}

// groupByTask buckets score rows by task, preserving first-seen task order.
func groupByTask(scores []model.SkillScore) []taskScores {
	index := make(map[string]int, len(scores))
	var grouped []taskScores
	for _, s := range scores {
		i, ok := index[s.TaskID]
		if !ok {
			i = len(grouped)
			index[s.TaskID] = i
			grouped = append(grouped, taskScores{
				TaskID:   s.TaskID,
				TaskSlug: s.TaskSlug,
				TaskName: s.TaskName,
			})
		}
		grouped[i].Scores = append(grouped[i].Scores, s)
	}
	if grouped == nil {
		grouped = []taskScores{}
	}
	return grouped
}
