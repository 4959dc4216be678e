package benchmark_test

import (
	"testing"

	"github.com/skillforge/skillrec/internal/domain/benchmark"
	"github.com/skillforge/skillrec/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func scores() []*model.SkillScore {
	return []*model.SkillScore{
		{ID: "s1", TaskID: "t1", Agent: model.AgentCodex, OverallScore: 80},
		{ID: "s2", TaskID: "t1", Agent: model.AgentClaude, OverallScore: 60},
		{ID: "s3", TaskID: "t2", Agent: model.AgentGemini, OverallScore: 70},
	}
}

func TestAverage(t *testing.T) {
	Convey("Given a skill with scores from all three agents", t, func() {
		all := scores()

		Convey("When no agent filter is applied", func() {
			So(benchmark.Average(all, ""), ShouldAlmostEqual, 70, 1e-9)
			So(benchmark.Average(all, model.AgentAny), ShouldAlmostEqual, 70, 1e-9)
		})

		Convey("When filtering to an agent with matching rows", func() {
			So(benchmark.Average(all, model.AgentCodex), ShouldEqual, 80)
		})

		Convey("When filtering to an agent with no rows", func() {
			Convey("Then the filter falls back to all scores", func() {
				So(benchmark.Average(all, "unknown-agent"), ShouldAlmostEqual, 70, 1e-9)
			})
		})

		Convey("When the skill has no scores", func() {
			So(benchmark.Average(nil, model.AgentCodex), ShouldEqual, 0)
		})
	})
}

func TestBest(t *testing.T) {
	Convey("Given a skill's score rows", t, func() {
		all := scores()

		Convey("Then Best picks the highest overall score", func() {
			So(benchmark.Best(all, ""), ShouldEqual, 80)
		})

		Convey("Then the agent filter applies before the max", func() {
			So(benchmark.Best(all, model.AgentClaude), ShouldEqual, 60)
		})
	})
}

func TestNorm(t *testing.T) {
	Convey("Given benchmark normalization", t, func() {
		So(benchmark.Norm(0), ShouldEqual, 0)
		So(benchmark.Norm(50), ShouldEqual, 0.5)
		So(benchmark.Norm(100), ShouldEqual, 1)

		Convey("Then out-of-range averages clamp", func() {
			So(benchmark.Norm(150), ShouldEqual, 1)
			So(benchmark.Norm(-10), ShouldEqual, 0)
		})
	})
}

func TestTaskCount(t *testing.T) {
	Convey("Given scores across two tasks", t, func() {
		So(benchmark.TaskCount(scores()), ShouldEqual, 2)
		So(benchmark.TaskCount(nil), ShouldEqual, 0)
	})
}
