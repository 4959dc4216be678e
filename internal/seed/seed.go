package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/skillforge/skillrec/internal/adapters/repository"
	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/model"
)

// Apply writes the catalog into db through the repository schema. Existing
// rows with the same ids are replaced, so reapplying is idempotent.
func Apply(ctx context.Context, db *sql.DB, c *model.Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, repository.Schema); err != nil {
		return fmt.Errorf("seed: schema: %w", err)
	}

	for i := range c.Tasks {
		t := &c.Tasks[i]
		tags, _ := json.Marshal(t.Tags)
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO skill_tasks (id, slug, name, description, category, tags)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Slug, t.Name, t.Description, t.Category, string(tags))
		if err != nil {
			return fmt.Errorf("seed: task %s: %w", t.Slug, err)
		}
	}

	for i := range c.Skills {
		s := &c.Skills[i]
		keywords, _ := json.Marshal(s.Keywords)
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO skills (
				id, slug, name, agent_family, summary, description, keywords,
				source_url, imported_from, created_at, updated_at, embedding,
				provenance_repository, provenance_license, provenance_verified_at, provenance_checksum,
				security_status, security_reviewed_by, security_reviewed_at,
				security_review_method, security_checklist_version, security_notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.Slug, s.Name, s.AgentFamily, s.Summary, s.Description, string(keywords),
			s.SourceURL, s.ImportedFrom, s.CreatedAt, s.UpdatedAt, embedding.Pack(s.Embedding),
			s.Provenance.Repository, s.Provenance.License, s.Provenance.LastVerifiedAt, s.Provenance.Checksum,
			s.Security.Status, s.Security.ReviewedBy, s.Security.ReviewedAt,
			s.Security.ReviewMethod, s.Security.ChecklistVersion, s.Security.Notes)
		if err != nil {
			return fmt.Errorf("seed: skill %s: %w", s.Slug, err)
		}
	}

	for i := range c.Runs {
		r := &c.Runs[i]
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO benchmark_runs (id, runner, mode, status, started_at, completed_at, artifact_path, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Runner, r.Mode, r.Status, r.StartedAt, r.CompletedAt, r.ArtifactPath, r.Notes)
		if err != nil {
			return fmt.Errorf("seed: run %s: %w", r.Runner, err)
		}
	}

	for i := range c.Scores {
		s := &c.Scores[i]
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO skill_scores (
				id, run_id, skill_id, task_id, agent,
				overall_score, quality_score, security_score, speed_score, cost_score,
				success_rate, artifact_path, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.RunID, s.SkillID, s.TaskID, s.Agent,
			s.OverallScore, s.QualityScore, s.SecurityScore, s.SpeedScore, s.CostScore,
			s.SuccessRate, s.ArtifactPath, s.CreatedAt)
		if err != nil {
			return fmt.Errorf("seed: score %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}
