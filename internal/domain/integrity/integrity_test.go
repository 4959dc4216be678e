package integrity_test

import (
	"testing"

	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/integrity"
	"github.com/skillforge/skillrec/internal/domain/model"
	"github.com/skillforge/skillrec/internal/seed"
	. "github.com/smartystreets/goconvey/convey"
)

func validCatalog() *model.Catalog {
	return seed.Generate(embedding.DefaultDims)
}

func TestValidateAccepts(t *testing.T) {
	Convey("Given the generated demo catalog", t, func() {
		c := validCatalog()

		Convey("Then it passes validation", func() {
			So(integrity.Validate(c), ShouldBeNil)
		})

		Convey("And it has the exact expected shape", func() {
			So(c.Skills, ShouldHaveLength, integrity.ExpectedSkills)
			So(c.Scores, ShouldHaveLength, integrity.ExpectedScores)
			So(c.Runs, ShouldHaveLength, integrity.ExpectedRuns)
		})

		Convey("And every score resolves to existing entities", func() {
			for i := range c.Scores {
				s := &c.Scores[i]
				So(c.TaskByID(s.TaskID), ShouldNotBeNil)
				So(c.SkillByID(s.SkillID), ShouldNotBeNil)
				So(c.RunByID(s.RunID), ShouldNotBeNil)
			}
		})
	})
}

func TestValidateRejects(t *testing.T) {
	Convey("Given catalogs violating single invariants", t, func() {
		Convey("When the catalog has 49 skills", func() {
			c := validCatalog()
			c.Skills = c.Skills[:len(c.Skills)-1]
			c.Index()

			v := integrity.Validate(c)
			So(v, ShouldNotBeNil)
			So(v.Reason, ShouldContainSubstring, "expected exactly 50 skills")
		})

		Convey("When the catalog has 51 skills", func() {
			c := validCatalog()
			extra := c.Skills[0]
			extra.ID = "skill-extra"
			extra.Slug = "extra-skill"
			c.Skills = append(c.Skills, extra)
			c.Index()

			v := integrity.Validate(c)
			So(v, ShouldNotBeNil)
			So(v.Reason, ShouldContainSubstring, "51")
		})

		Convey("When a score references a nonexistent task", func() {
			c := validCatalog()
			c.Scores[17].TaskID = "no-such-task"
			c.Index()

			v := integrity.Validate(c)
			So(v, ShouldNotBeNil)
			So(v.Reason, ShouldContainSubstring, "references unknown task")
		})

		Convey("When a run has a non-real benchmark mode", func() {
			c := validCatalog()
			c.Runs[1].Mode = "dry-run"

			v := integrity.Validate(c)
			So(v, ShouldNotBeNil)
			So(v.Reason, ShouldContainSubstring, "real-benchmark")
		})

		Convey("When an artifact path contains a blocked marker", func() {
			c := validCatalog()
			c.Scores[3].ArtifactPath = "/var/bench/mock/results.json"

			v := integrity.Validate(c)
			So(v, ShouldNotBeNil)
			So(v.Reason, ShouldContainSubstring, `"mock"`)
		})

		Convey("When a run's notes contain a blocked marker in mixed case", func() {
			c := validCatalog()
			c.Runs[0].Notes = "rerun with Synthetic data"

			v := integrity.Validate(c)
			So(v, ShouldNotBeNil)
			So(v.Reason, ShouldContainSubstring, `"synthetic"`)
		})

		Convey("When a score has an empty createdAt", func() {
			c := validCatalog()
			c.Scores[42].CreatedAt = "   "

			v := integrity.Validate(c)
			So(v, ShouldNotBeNil)
			So(v.Reason, ShouldContainSubstring, "createdAt")
		})

		Convey("When a skill is missing one agent's score", func() {
			c := validCatalog()
			// Retag a codex score as a second claude score: the per-skill
			// agent coverage breaks before the per-agent totals are reached.
			c.Scores[0].Agent = model.AgentClaude
			c.Index()

			v := integrity.Validate(c)
			So(v, ShouldNotBeNil)
			So(v.Reason, ShouldContainSubstring, "codex")
		})
	})
}

func TestValidateIsPure(t *testing.T) {
	Convey("Given a valid catalog", t, func() {
		c := validCatalog()

		Convey("When validated twice", func() {
			So(integrity.Validate(c), ShouldBeNil)
			So(integrity.Validate(c), ShouldBeNil)

			Convey("Then the catalog shape is untouched", func() {
				So(c.Skills, ShouldHaveLength, integrity.ExpectedSkills)
				So(c.Scores, ShouldHaveLength, integrity.ExpectedScores)
			})
		})
	})
}
