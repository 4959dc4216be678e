package ranking_test

import (
	"testing"

	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/model"
	"github.com/skillforge/skillrec/internal/domain/ranking"
	"github.com/skillforge/skillrec/internal/seed"
	. "github.com/smartystreets/goconvey/convey"
)

// smallCatalog builds a minimal catalog for strategy tests. The ranker
// itself does not enforce catalog shape; that is the validator's job.
func smallCatalog(skills ...model.SkillRecord) *model.Catalog {
	c := &model.Catalog{Skills: skills}
	c.Index()
	return c
}

func approvedSkill(slug, doc string) model.SkillRecord {
	return model.SkillRecord{
		ID:       "id-" + slug,
		Slug:     slug,
		Name:     doc,
		Security: model.SecurityReview{Status: model.SecurityApproved},
	}
}

func TestRecommendStrategySelection(t *testing.T) {
	Convey("Given a ranker with default thresholds", t, func() {
		r := ranking.New()

		Convey("When one skill matches the query exactly and the rest do not", func() {
			c := smallCatalog(
				approvedSkill("exact-match", "harden pipeline security checks merge"),
				approvedSkill("unrelated-one", "watercolor painting brush techniques"),
				approvedSkill("unrelated-two", "sourdough bread fermentation schedule"),
			)
			res := r.Recommend(c, ranking.Query{Task: "harden pipeline security checks merge"})

			Convey("Then retrieval is embedding-first with the exact match on top", func() {
				So(res.Strategy, ShouldEqual, ranking.StrategyEmbeddingFirst)
				So(res.Best, ShouldNotBeNil)
				So(res.Best.Slug, ShouldEqual, "exact-match")
				So(res.Best.EmbeddingSimilarity, ShouldAlmostEqual, 1.0, 1e-6)
			})
		})

		Convey("When two skills are indistinguishable to the embedder", func() {
			c := smallCatalog(
				approvedSkill("twin-alpha", "database migration planner"),
				approvedSkill("twin-beta", "database migration planner"),
			)
			res := r.Recommend(c, ranking.Query{Task: "database migration planner"})

			Convey("Then the confidence gap forces lexical backoff", func() {
				So(res.Strategy, ShouldEqual, ranking.StrategyLexicalBackoff)
			})
		})

		Convey("When the query has no embeddable content", func() {
			c := smallCatalog(approvedSkill("anything", "some skill document"))
			res := r.Recommend(c, ranking.Query{Task: "$$$$ !!!! ****"})

			Convey("Then retrieval backs off to lexical", func() {
				So(res.Strategy, ShouldEqual, ranking.StrategyLexicalBackoff)
			})
		})

		Convey("When no skill resembles the query", func() {
			c := smallCatalog(
				approvedSkill("far-away", "watercolor painting brush techniques"),
			)
			res := r.Recommend(c, ranking.Query{Task: "orbital mechanics trajectory calculus"})

			Convey("Then the weak top similarity forces lexical backoff", func() {
				So(res.Strategy, ShouldEqual, ranking.StrategyLexicalBackoff)
			})
		})
	})
}

func TestRecommendSecurityGate(t *testing.T) {
	Convey("Given a catalog with unapproved skills", t, func() {
		r := ranking.New()
		pending := approvedSkill("pending-skill", "harden pipeline security checks")
		pending.Security.Status = model.SecurityPending
		rejected := approvedSkill("rejected-skill", "harden pipeline security checks")
		rejected.Security.Status = model.SecurityRejected

		Convey("When only unapproved skills exist", func() {
			res := r.Recommend(smallCatalog(pending, rejected), ranking.Query{Task: "harden pipeline security"})

			Convey("Then the result is an empty lexical-backoff result", func() {
				So(res.Strategy, ShouldEqual, ranking.StrategyLexicalBackoff)
				So(res.Best, ShouldBeNil)
				So(res.Candidates, ShouldBeEmpty)
			})
		})

		Convey("When approved and unapproved skills coexist", func() {
			c := smallCatalog(pending, approvedSkill("approved-one", "harden pipeline security checks"))
			res := r.Recommend(c, ranking.Query{Task: "harden pipeline security checks", Limit: 5})

			Convey("Then no returned candidate is unapproved", func() {
				So(res.Candidates, ShouldNotBeEmpty)
				for _, cand := range res.Candidates {
					So(cand.SecurityStatus, ShouldEqual, model.SecurityApproved)
				}
			})
		})
	})
}

func TestClampLimit(t *testing.T) {
	Convey("Given limit clamping", t, func() {
		So(ranking.ClampLimit(0), ShouldEqual, ranking.DefaultLimit)
		So(ranking.ClampLimit(-3), ShouldEqual, ranking.MinLimit)
		So(ranking.ClampLimit(10), ShouldEqual, ranking.MaxLimit)
		So(ranking.ClampLimit(4), ShouldEqual, 4)
	})
}

func TestRecommendDeterminism(t *testing.T) {
	Convey("Given the full demo catalog", t, func() {
		c := seed.Generate(embedding.DefaultDims)
		r := ranking.New()
		q := ranking.Query{Task: "Harden CI/CD pipeline security checks for every merge", Agent: model.AgentCodex, Limit: 3}

		Convey("When recommending twice with identical inputs", func() {
			first := r.Recommend(c, q)
			second := r.Recommend(c, q)

			Convey("Then the ordered results are identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestRecommendTieBreaks(t *testing.T) {
	Convey("Given two skills with identical scoring signals", t, func() {
		r := ranking.New()
		c := smallCatalog(
			approvedSkill("zulu-skill", "database migration planner"),
			approvedSkill("alpha-skill", "database migration planner"),
		)

		Convey("When ranked", func() {
			res := r.Recommend(c, ranking.Query{Task: "database migration planner", Limit: 2})

			Convey("Then slugs break the tie in ascending order", func() {
				So(res.Candidates, ShouldHaveLength, 2)
				So(res.Candidates[0].Slug, ShouldEqual, "alpha-skill")
				So(res.Candidates[1].Slug, ShouldEqual, "zulu-skill")
			})
		})
	})
}

func TestRecommendEndToEnd(t *testing.T) {
	Convey("Given a valid 50/150/3 catalog", t, func() {
		c := seed.Generate(embedding.DefaultDims)
		r := ranking.New()

		Convey("When asking for codex pipeline-hardening help", func() {
			res := r.Recommend(c, ranking.Query{
				Task:  "Harden CI/CD pipeline security checks for every merge",
				Agent: model.AgentCodex,
				Limit: 3,
			})

			Convey("Then exactly 3 candidates come back sorted by final score", func() {
				So(res.Candidates, ShouldHaveLength, 3)
				So(res.Candidates[0].FinalScore, ShouldBeGreaterThanOrEqualTo, res.Candidates[1].FinalScore)
				So(res.Candidates[1].FinalScore, ShouldBeGreaterThanOrEqualTo, res.Candidates[2].FinalScore)
			})

			Convey("And the best candidate is approved and echoes the agent filter", func() {
				So(res.Best, ShouldNotBeNil)
				So(res.Best.SecurityStatus, ShouldEqual, model.SecurityApproved)
				So(res.Best.MatchedAgent, ShouldEqual, model.AgentCodex)
			})

			Convey("And the strong unambiguous match selects embedding-first retrieval", func() {
				So(res.Strategy, ShouldEqual, ranking.StrategyEmbeddingFirst)
			})

			Convey("And the pipeline skill dominates the ranking", func() {
				So(res.Best.Slug, ShouldEqual, "pipeline-sentinel")
			})
		})
	})
}
