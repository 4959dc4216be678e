// Package benchmark aggregates per-skill benchmark scores into the ranking
// signal and the summary statistics exposed by the API.
package benchmark

import (
	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/model"
)

// maxOverallScore is the benchmark harness score ceiling used to normalize
// averages into [0, 1].
const maxOverallScore = 100

// filter returns the scores matching agent when at least one matches,
// otherwise all scores. An empty or "any" agent never filters.
func filter(scores []*model.SkillScore, agent string) []*model.SkillScore {
	if agent == "" || agent == model.AgentAny {
		return scores
	}
	var matched []*model.SkillScore
	for _, s := range scores {
		if s.Agent == agent {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return scores
	}
	return matched
}

// Average returns the arithmetic mean of overallScore over the skill's
// scores, preferring rows for the given agent when any exist. Returns 0
// when the skill has no scores at all.
func Average(scores []*model.SkillScore, agent string) float64 {
	pool := filter(scores, agent)
	if len(pool) == 0 {
		return 0
	}
	var sum float64
	for _, s := range pool {
		sum += s.OverallScore
	}
	return sum / float64(len(pool))
}

// Best returns the highest overallScore with the same agent-filter
// semantics as Average.
func Best(scores []*model.SkillScore, agent string) float64 {
	pool := filter(scores, agent)
	var best float64
	for _, s := range pool {
		if s.OverallScore > best {
			best = s.OverallScore
		}
	}
	return best
}

// Norm maps an average benchmark score into [0, 1].
func Norm(average float64) float64 {
	return embedding.Clamp01(average / maxOverallScore)
}

// TaskCount returns the number of distinct tasks the skill was benchmarked
// against.
func TaskCount(scores []*model.SkillScore) int {
	seen := make(map[string]struct{}, len(scores))
	for _, s := range scores {
		seen[s.TaskID] = struct{}{}
	}
	return len(seen)
}
