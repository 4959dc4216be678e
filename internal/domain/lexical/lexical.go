// Package lexical scores token-set overlap between a query and skill
// metadata. It is the backoff signal when the hashed embedding is weak or
// ambiguous.
package lexical

import (
	"strings"

	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/model"
	"github.com/skillforge/skillrec/internal/domain/text"
)

// Blend weights between skill metadata overlap and benchmarked task-context
// overlap.
const (
	metadataWeight = 0.65
	contextWeight  = 0.35
)

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when either set is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	inter := 0
	for t := range small {
		if _, ok := large[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// SkillDocument concatenates the skill's own searchable metadata.
func SkillDocument(s *model.SkillRecord) string {
	parts := []string{s.Name, s.Summary, s.Description}
	parts = append(parts, s.Keywords...)
	return strings.Join(parts, " ")
}

// TaskContext concatenates slug, name, description, and tags of every task
// the skill has been benchmarked against, derived by joining its scores to
// the task table.
func TaskContext(c *model.Catalog, skillID string) string {
	seen := make(map[string]struct{})
	var parts []string
	for _, score := range c.ScoresForSkill(skillID) {
		if _, dup := seen[score.TaskID]; dup {
			continue
		}
		seen[score.TaskID] = struct{}{}
		task := c.TaskByID(score.TaskID)
		if task == nil {
			continue
		}
		parts = append(parts, task.Slug, task.Name, task.Description)
		parts = append(parts, task.Tags...)
	}
	return strings.Join(parts, " ")
}

// Similarity blends Jaccard overlap of the query against the skill's own
// metadata (0.65) and against its aggregated task context (0.35), clamped
// to [0, 1].
func Similarity(queryTokens map[string]struct{}, c *model.Catalog, s *model.SkillRecord) float64 {
	docScore := Jaccard(queryTokens, text.TokenSet(SkillDocument(s)))
	ctxScore := Jaccard(queryTokens, text.TokenSet(TaskContext(c, s.ID)))
	return embedding.Clamp01(metadataWeight*docScore + contextWeight*ctxScore)
}
