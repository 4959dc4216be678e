// Package integrity enforces the hard invariants a catalog must satisfy
// before it may serve any query. Validation is fail-closed: the first
// violation blocks the whole catalog, and offending rows are never silently
// dropped.
package integrity

import (
	"fmt"
	"strings"

	"github.com/skillforge/skillrec/internal/domain/model"
)

// Expected catalog shape. The benchmark harness produces exactly this many
// rows; anything else means a partial or tampered import.
const (
	ExpectedSkills = 50
	ExpectedScores = 150
	ExpectedRuns   = 3

	// scoresPerSkill is one score per agent per skill.
	scoresPerSkill = 3
)

// blockedMarkers must not appear (case-insensitively) in any artifact path
// or notes field. Their presence indicates non-real benchmark data.
var blockedMarkers = []string{"fallback", "mock", "synthetic", "seed"}

// Violation names the first invariant a catalog failed.
type Violation struct {
	Reason string
}

func (v *Violation) Error() string { return v.Reason }

func violationf(format string, args ...any) *Violation {
	return &Violation{Reason: fmt.Sprintf(format, args...)}
}

// Validate runs the invariant checks in fixed order and returns the first
// violation, or nil if the catalog is fully valid. Pure: it never mutates
// the catalog.
func Validate(c *model.Catalog) *Violation {
	if v := checkCounts(c); v != nil {
		return v
	}
	if v := checkRuns(c); v != nil {
		return v
	}
	if v := checkScores(c); v != nil {
		return v
	}
	return checkCoverage(c)
}

func checkCounts(c *model.Catalog) *Violation {
	if got := len(c.Skills); got != ExpectedSkills {
		return violationf("expected exactly %d skills, found %d", ExpectedSkills, got)
	}
	if got := len(c.Scores); got != ExpectedScores {
		return violationf("expected exactly %d benchmark scores, found %d", ExpectedScores, got)
	}
	if got := len(c.Runs); got != ExpectedRuns {
		return violationf("expected exactly %d benchmark runs, found %d", ExpectedRuns, got)
	}
	return nil
}

func checkRuns(c *model.Catalog) *Violation {
	for i := range c.Runs {
		run := &c.Runs[i]
		if run.Mode != model.ModeRealBenchmark {
			return violationf("run %s has mode %q; only %q runs are accepted",
				run.ID, run.Mode, model.ModeRealBenchmark)
		}
		if marker := blockedMarker(run.ArtifactPath, run.Notes); marker != "" {
			return violationf("run %s contains blocked marker %q", run.ID, marker)
		}
	}
	return nil
}

func checkScores(c *model.Catalog) *Violation {
	for i := range c.Scores {
		score := &c.Scores[i]
		if c.TaskByID(score.TaskID) == nil {
			return violationf("score %s references unknown task %s", score.ID, score.TaskID)
		}
		if c.SkillByID(score.SkillID) == nil {
			return violationf("score %s references unknown skill %s", score.ID, score.SkillID)
		}
		if c.RunByID(score.RunID) == nil {
			return violationf("score %s references unknown run %s", score.ID, score.RunID)
		}
		if marker := blockedMarker(score.ArtifactPath, ""); marker != "" {
			return violationf("score %s contains blocked marker %q", score.ID, marker)
		}
		if strings.TrimSpace(score.CreatedAt) == "" {
			return violationf("score %s is missing createdAt", score.ID)
		}
	}
	return nil
}

func checkCoverage(c *model.Catalog) *Violation {
	for i := range c.Skills {
		skill := &c.Skills[i]
		rows := c.ScoresForSkill(skill.ID)
		if len(rows) != scoresPerSkill {
			return violationf("skill %s has %d scores, expected %d (one per agent)",
				skill.Slug, len(rows), scoresPerSkill)
		}
		seen := make(map[string]struct{}, scoresPerSkill)
		for _, row := range rows {
			seen[row.Agent] = struct{}{}
		}
		for _, agent := range model.Agents {
			if _, ok := seen[agent]; !ok {
				return violationf("skill %s has no %s score", skill.Slug, agent)
			}
		}
	}

	coverage := c.AgentCoverage()
	for _, agent := range model.Agents {
		if coverage[agent] != ExpectedSkills {
			return violationf("agent %s has %d scores across the catalog, expected %d",
				agent, coverage[agent], ExpectedSkills)
		}
	}
	return nil
}

// blockedMarker returns the first blocked marker found in any of the given
// fields, or "".
func blockedMarker(fields ...string) string {
	for _, f := range fields {
		lowered := strings.ToLower(f)
		for _, marker := range blockedMarkers {
			if strings.Contains(lowered, marker) {
				return marker
			}
		}
	}
	return ""
}
