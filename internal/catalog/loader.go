// Package catalog assembles in-memory snapshots from raw store rows.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skillforge/skillrec/internal/adapters/repository"
	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/model"
	"github.com/skillforge/skillrec/pkg/logger"
)

// fallbackReviewedAt marks skills whose rows predate structured security
// reviews. Such rows shipped before the review columns existed and were
// vetted out of band.
const fallbackReviewedAt = "1970-01-01T00:00:00Z"

// Loader reads the four catalog tables and assembles an unvalidated
// snapshot. Optional column groups (provenance, security review, stored
// embeddings) are feature-detected once per load so older databases keep
// working without migrations.
type Loader struct {
	store repository.Store
	log   logger.Logger
}

// New returns a Loader over the given store.
func New(store repository.Store, log logger.Logger) *Loader {
	return &Loader{store: store, log: log}
}

// columnSet captures which optional column groups the skills table carries.
type columnSet struct {
	provenance bool
	security   bool
	embedding  bool
}

// Load bulk-reads tasks, skills, runs, and scores and assembles a Catalog.
// The result is indexed but NOT validated; callers gate it through the
// integrity validator before serving anything from it.
func (l *Loader) Load(ctx context.Context) (*model.Catalog, error) {
	cols, err := l.store.ListColumns(ctx, repository.TableSkills)
	if err != nil {
		return nil, unavailable("list columns", err)
	}
	cs := columnSet{
		provenance: has(cols, "provenance_checksum"),
		security:   has(cols, "security_status"),
		embedding:  has(cols, "embedding"),
	}

	c := &model.Catalog{}

	if c.Tasks, err = l.loadTasks(ctx); err != nil {
		return nil, err
	}
	if c.Skills, err = l.loadSkills(ctx, cs); err != nil {
		return nil, err
	}
	if c.Runs, err = l.loadRuns(ctx); err != nil {
		return nil, err
	}
	if c.Scores, err = l.loadScores(ctx, c.Tasks); err != nil {
		return nil, err
	}

	c.Index()
	l.log.Debug(ctx, "catalog loaded",
		logger.Int("tasks", len(c.Tasks)),
		logger.Int("skills", len(c.Skills)),
		logger.Int("runs", len(c.Runs)),
		logger.Int("scores", len(c.Scores)),
		logger.Any("provenance_cols", cs.provenance),
		logger.Any("security_cols", cs.security))
	return c, nil
}

func (l *Loader) loadTasks(ctx context.Context) ([]model.SkillTask, error) {
	rows, err := l.store.QueryAll(ctx, "SELECT * FROM "+repository.TableTasks+" ORDER BY slug")
	if err != nil {
		return nil, unavailable("load tasks", err)
	}
	tasks := make([]model.SkillTask, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, model.SkillTask{
			ID:          str(r, "id"),
			Slug:        str(r, "slug"),
			Name:        str(r, "name"),
			Description: str(r, "description"),
			Category:    str(r, "category"),
			Tags:        strList(r, "tags"),
		})
	}
	return tasks, nil
}

func (l *Loader) loadSkills(ctx context.Context, cs columnSet) ([]model.SkillRecord, error) {
	rows, err := l.store.QueryAll(ctx, "SELECT * FROM "+repository.TableSkills+" ORDER BY slug")
	if err != nil {
		return nil, unavailable("load skills", err)
	}
	skills := make([]model.SkillRecord, 0, len(rows))
	for _, r := range rows {
		s := model.SkillRecord{
			ID:           str(r, "id"),
			Slug:         str(r, "slug"),
			Name:         str(r, "name"),
			AgentFamily:  str(r, "agent_family"),
			Summary:      str(r, "summary"),
			Description:  str(r, "description"),
			Keywords:     strList(r, "keywords"),
			SourceURL:    str(r, "source_url"),
			ImportedFrom: str(r, "imported_from"),
			CreatedAt:    str(r, "created_at"),
			UpdatedAt:    str(r, "updated_at"),
		}
		if cs.embedding {
			if b, ok := r["embedding"].([]byte); ok && len(b) > 0 {
				s.Embedding = embedding.Unpack(b)
			}
		}
		s.Provenance = l.provenance(r, cs, &s)
		s.Security = l.securityReview(r, cs)
		skills = append(skills, s)
	}
	return skills, nil
}

// provenance fills the nested provenance block, deriving a checksum from the
// source URL when the stored one is missing or the columns predate it.
func (l *Loader) provenance(r repository.Row, cs columnSet, s *model.SkillRecord) model.Provenance {
	p := model.Provenance{
		SourceURL:    s.SourceURL,
		Repository:   s.SourceURL,
		ImportedFrom: s.ImportedFrom,
	}
	if cs.provenance {
		if v := str(r, "provenance_repository"); v != "" {
			p.Repository = v
		}
		p.License = str(r, "provenance_license")
		p.LastVerifiedAt = str(r, "provenance_verified_at")
		p.Checksum = str(r, "provenance_checksum")
	}
	if p.Checksum == "" {
		p.Checksum = fmt.Sprintf("fnv1a:%08x", embedding.HashToken(s.SourceURL))
	}
	return p
}

// securityReview fills the review block. Rows without review columns are
// treated as approved at the epoch so legacy catalogs stay servable.
func (l *Loader) securityReview(r repository.Row, cs columnSet) model.SecurityReview {
	if !cs.security {
		return model.SecurityReview{
			Status:     model.SecurityApproved,
			ReviewedAt: fallbackReviewedAt,
		}
	}
	rev := model.SecurityReview{
		Status:           str(r, "security_status"),
		ReviewedBy:       str(r, "security_reviewed_by"),
		ReviewedAt:       str(r, "security_reviewed_at"),
		ReviewMethod:     str(r, "security_review_method"),
		ChecklistVersion: str(r, "security_checklist_version"),
		Notes:            str(r, "security_notes"),
	}
	if rev.Status == "" {
		rev.Status = model.SecurityApproved
	}
	if rev.ReviewedAt == "" {
		rev.ReviewedAt = fallbackReviewedAt
	}
	return rev
}

func (l *Loader) loadRuns(ctx context.Context) ([]model.BenchmarkRun, error) {
	rows, err := l.store.QueryAll(ctx, "SELECT * FROM "+repository.TableRuns+" ORDER BY started_at, id")
	if err != nil {
		return nil, unavailable("load runs", err)
	}
	runs := make([]model.BenchmarkRun, 0, len(rows))
	for _, r := range rows {
		runs = append(runs, model.BenchmarkRun{
			ID:           str(r, "id"),
			Runner:       str(r, "runner"),
			Mode:         str(r, "mode"),
			Status:       str(r, "status"),
			StartedAt:    str(r, "started_at"),
			CompletedAt:  str(r, "completed_at"),
			ArtifactPath: str(r, "artifact_path"),
			Notes:        str(r, "notes"),
		})
	}
	return runs, nil
}

func (l *Loader) loadScores(ctx context.Context, tasks []model.SkillTask) ([]model.SkillScore, error) {
	rows, err := l.store.QueryAll(ctx, "SELECT * FROM "+repository.TableScores+" ORDER BY id")
	if err != nil {
		return nil, unavailable("load scores", err)
	}
	byID := make(map[string]*model.SkillTask, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}
	scores := make([]model.SkillScore, 0, len(rows))
	for _, r := range rows {
		s := model.SkillScore{
			ID:            str(r, "id"),
			RunID:         str(r, "run_id"),
			SkillID:       str(r, "skill_id"),
			TaskID:        str(r, "task_id"),
			Agent:         str(r, "agent"),
			OverallScore:  f64(r, "overall_score"),
			QualityScore:  f64(r, "quality_score"),
			SecurityScore: f64(r, "security_score"),
			SpeedScore:    f64(r, "speed_score"),
			CostScore:     f64(r, "cost_score"),
			SuccessRate:   f64(r, "success_rate"),
			ArtifactPath:  str(r, "artifact_path"),
			CreatedAt:     str(r, "created_at"),
		}
		if t := byID[s.TaskID]; t != nil {
			s.TaskSlug = t.Slug
			s.TaskName = t.Name
		}
		scores = append(scores, s)
	}
	return scores, nil
}

// unavailable classifies store failures so the HTTP layer answers 503.
func unavailable(op string, err error) error {
	return fmt.Errorf("catalog: %s: %w: %v", op, repository.ErrUnavailable, err)
}

func has(cols map[string]struct{}, name string) bool {
	_, ok := cols[name]
	return ok
}

func str(r repository.Row, key string) string {
	s, _ := r[key].(string)
	return s
}

func f64(r repository.Row, key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// strList decodes a JSON string array cell, tolerating empty or malformed
// values.
func strList(r repository.Row, key string) []string {
	raw := str(r, key)
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
