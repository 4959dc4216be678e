package lexical_test

import (
	"testing"

	"github.com/skillforge/skillrec/internal/domain/lexical"
	"github.com/skillforge/skillrec/internal/domain/model"
	"github.com/skillforge/skillrec/internal/domain/text"
	. "github.com/smartystreets/goconvey/convey"
)

func TestJaccard(t *testing.T) {
	Convey("Given Jaccard similarity over token sets", t, func() {
		s := text.TokenSet("pipeline security checks")

		Convey("Then a nonempty set matches itself fully", func() {
			So(lexical.Jaccard(s, s), ShouldEqual, 1)
		})

		Convey("Then any comparison with the empty set is zero", func() {
			So(lexical.Jaccard(s, map[string]struct{}{}), ShouldEqual, 0)
			So(lexical.Jaccard(nil, s), ShouldEqual, 0)
		})

		Convey("Then partial overlap is intersection over union", func() {
			other := text.TokenSet("pipeline deploys")
			// intersection {pipeline}=1, union {pipeline,security,checks,deploys}=4
			So(lexical.Jaccard(s, other), ShouldAlmostEqual, 0.25, 1e-9)
		})

		Convey("Then the measure is symmetric", func() {
			other := text.TokenSet("security audits")
			So(lexical.Jaccard(s, other), ShouldEqual, lexical.Jaccard(other, s))
		})
	})
}

func testCatalog() *model.Catalog {
	c := &model.Catalog{
		Tasks: []model.SkillTask{
			{
				ID: "task-1", Slug: "ci-hardening", Name: "CI Hardening",
				Description: "Harden continuous integration pipelines",
				Tags:        []string{"security", "ci"},
			},
			{
				ID: "task-2", Slug: "docs-gen", Name: "Docs Generation",
				Description: "Generate project documentation",
				Tags:        []string{"docs"},
			},
		},
		Skills: []model.SkillRecord{
			{
				ID: "skill-1", Slug: "pipeline-guard", Name: "Pipeline Guard",
				Summary:     "Security checks for CI pipelines",
				Description: "Adds security gates to merge pipelines",
				Keywords:    []string{"security", "pipeline", "ci"},
			},
		},
		Scores: []model.SkillScore{
			{ID: "score-1", SkillID: "skill-1", TaskID: "task-1", Agent: model.AgentCodex},
			{ID: "score-2", SkillID: "skill-1", TaskID: "task-1", Agent: model.AgentClaude},
		},
	}
	c.Index()
	return c
}

func TestSimilarity(t *testing.T) {
	Convey("Given a skill benchmarked against a CI hardening task", t, func() {
		c := testCatalog()
		skill := c.SkillByID("skill-1")

		Convey("When the query overlaps both metadata and task context", func() {
			q := text.TokenSet("harden ci pipeline security checks")
			sim := lexical.Similarity(q, c, skill)

			Convey("Then the blended score is positive and bounded", func() {
				So(sim, ShouldBeGreaterThan, 0)
				So(sim, ShouldBeLessThanOrEqualTo, 1)
			})
		})

		Convey("When the query shares nothing with the skill", func() {
			q := text.TokenSet("watercolor painting tutorial")

			Convey("Then the score is zero", func() {
				So(lexical.Similarity(q, c, skill), ShouldEqual, 0)
			})
		})

		Convey("When two queries differ only in task-context overlap", func() {
			base := text.TokenSet("security pipeline")
			withCtx := text.TokenSet("security pipeline integration")

			Convey("Then the context-overlapping query scores differently", func() {
				So(lexical.Similarity(withCtx, c, skill), ShouldNotEqual,
					lexical.Similarity(base, c, skill))
			})
		})
	})

	Convey("Given a skill with no benchmark history", t, func() {
		c := &model.Catalog{
			Skills: []model.SkillRecord{{
				ID: "skill-x", Name: "Loner", Summary: "standalone helper",
			}},
		}
		c.Index()

		Convey("Then only the metadata term contributes", func() {
			q := text.TokenSet("standalone helper")
			sim := lexical.Similarity(q, c, c.SkillByID("skill-x"))
			So(sim, ShouldBeGreaterThan, 0)
			So(sim, ShouldBeLessThanOrEqualTo, 0.65)
		})
	})
}
