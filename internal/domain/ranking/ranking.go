// Package ranking fuses embedding similarity, lexical overlap, and
// benchmark history into a deterministic top-N skill recommendation. When
// the embedding signal is weak or ambiguous it backs off to lexical
// retrieval.
package ranking

import (
	"sort"

	"github.com/skillforge/skillrec/internal/domain/benchmark"
	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/lexical"
	"github.com/skillforge/skillrec/internal/domain/model"
	"github.com/skillforge/skillrec/internal/domain/text"
)

// Retrieval strategies.
const (
	StrategyEmbeddingFirst = "embedding-first"
	StrategyLexicalBackoff = "lexical-backoff"
)

// Limit bounds for the candidate list.
const (
	MinLimit     = 1
	MaxLimit     = 5
	DefaultLimit = 3
)

// MinTaskLength is the minimum trimmed task length callers must enforce
// before invoking Recommend.
const MinTaskLength = 8

// Query is a recommendation request. Agent is one of the benchmark agents
// or "any"; Limit outside [MinLimit, MaxLimit] is clamped, zero means
// DefaultLimit.
type Query struct {
	Task  string `json:"task"`
	Agent string `json:"agent"`
	Limit int    `json:"limit"`
}

// Candidate is one ranked skill with its scoring breakdown.
type Candidate struct {
	SkillID               string               `json:"skillId"`
	Slug                  string               `json:"slug"`
	Name                  string               `json:"name"`
	SecurityStatus        string               `json:"securityStatus"`
	SourceURL             string               `json:"sourceUrl"`
	AverageBenchmarkScore float64              `json:"averageBenchmarkScore"`
	EmbeddingSimilarity   float64              `json:"embeddingSimilarity"`
	LexicalScore          float64              `json:"lexicalScore"`
	FinalScore            float64              `json:"finalScore"`
	MatchedAgent          string               `json:"matchedAgent"`
	Provenance            model.Provenance     `json:"provenance"`
	SecurityReview        model.SecurityReview `json:"securityReview"`
}

// Result is the ranked outcome for one query.
type Result struct {
	Strategy   string      `json:"strategy"`
	Best       *Candidate  `json:"best"`
	Candidates []Candidate `json:"candidates"`
}

// Ranker computes recommendations over validated catalogs. Construct once
// and share; it is stateless apart from its configuration.
type Ranker struct {
	dims int

	// Strategy decision thresholds.
	minTopSimilarity float64
	minConfidenceGap float64
	lexicalBoost     float64

	// Final fusion weights per strategy.
	embedRetrievalW float64
	embedBenchmarkW float64
	lexRetrievalW   float64
	lexBenchmarkW   float64
}

// New constructs a Ranker with the production defaults, adjusted by opts.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		dims:             embedding.DefaultDims,
		minTopSimilarity: 0.22,
		minConfidenceGap: 0.03,
		lexicalBoost:     0.15,
		embedRetrievalW:  0.75,
		embedBenchmarkW:  0.25,
		lexRetrievalW:    0.7,
		lexBenchmarkW:    0.3,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ClampLimit normalizes a requested candidate count.
func ClampLimit(n int) int {
	switch {
	case n == 0:
		return DefaultLimit
	case n < MinLimit:
		return MinLimit
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}

// Recommend ranks all approved skills in the catalog against the query.
// Pure given (catalog, query): identical inputs produce byte-identical
// ordered results, including tie-break order.
func (r *Ranker) Recommend(c *model.Catalog, q Query) Result {
	limit := ClampLimit(q.Limit)

	candidates := r.score(c, q)
	if len(candidates) == 0 {
		return Result{Strategy: StrategyLexicalBackoff, Candidates: []Candidate{}}
	}

	queryVec := embedding.Embed(q.Task, r.dims)
	strategy := r.strategy(queryVec, candidates)

	for i := range candidates {
		cand := &candidates[i]
		var retrieval float64
		if strategy == StrategyEmbeddingFirst {
			retrieval = embedding.Clamp01(cand.EmbeddingSimilarity + r.lexicalBoost*cand.LexicalScore)
			cand.FinalScore = r.embedRetrievalW*retrieval + r.embedBenchmarkW*benchmark.Norm(cand.AverageBenchmarkScore)
		} else {
			retrieval = cand.LexicalScore
			cand.FinalScore = r.lexRetrievalW*retrieval + r.lexBenchmarkW*benchmark.Norm(cand.AverageBenchmarkScore)
		}
	}

	// Total, stable order: final desc, lexical desc, benchmark desc, slug asc.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := &candidates[i], &candidates[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if a.LexicalScore != b.LexicalScore {
			return a.LexicalScore > b.LexicalScore
		}
		if a.AverageBenchmarkScore != b.AverageBenchmarkScore {
			return a.AverageBenchmarkScore > b.AverageBenchmarkScore
		}
		return a.Slug < b.Slug
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	res := Result{Strategy: strategy, Candidates: candidates}
	if len(candidates) > 0 {
		res.Best = &candidates[0]
	}
	return res
}

// score builds the unranked candidate list: approved skills only, each with
// its benchmark, embedding, and lexical signals.
func (r *Ranker) score(c *model.Catalog, q Query) []Candidate {
	queryVec := embedding.Embed(q.Task, r.dims)
	queryTokens := text.TokenSet(q.Task)

	agentFilter := q.Agent
	if agentFilter == "" {
		agentFilter = model.AgentAny
	}

	var candidates []Candidate
	for i := range c.Skills {
		skill := &c.Skills[i]
		if skill.Security.Status != model.SecurityApproved {
			continue
		}

		scores := c.ScoresForSkill(skill.ID)
		avg := benchmark.Average(scores, agentFilter)

		skillVec := skill.Embedding
		if len(skillVec) != r.dims || embedding.Magnitude(skillVec) == 0 {
			skillVec = embedding.Embed(lexical.SkillDocument(skill), r.dims)
		} else {
			skillVec = embedding.Normalize(append([]float32(nil), skillVec...))
		}

		candidates = append(candidates, Candidate{
			SkillID:               skill.ID,
			Slug:                  skill.Slug,
			Name:                  skill.Name,
			SecurityStatus:        skill.Security.Status,
			SourceURL:             skill.SourceURL,
			AverageBenchmarkScore: avg,
			EmbeddingSimilarity:   embedding.Cosine(queryVec, skillVec),
			LexicalScore:          lexical.Similarity(queryTokens, c, skill),
			MatchedAgent:          agentFilter,
			Provenance:            skill.Provenance,
			SecurityReview:        skill.Security,
		})
	}
	return candidates
}

// strategy decides between embedding-first and lexical-backoff retrieval.
// Backoff triggers when the query embedding is empty, the best match is
// weak, or the top two matches are too close to call.
func (r *Ranker) strategy(queryVec []float32, candidates []Candidate) string {
	if embedding.Magnitude(queryVec) == 0 {
		return StrategyLexicalBackoff
	}

	sims := make([]float64, len(candidates))
	for i := range candidates {
		sims[i] = candidates[i].EmbeddingSimilarity
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sims)))

	var top1, top2 float64
	if len(sims) > 0 {
		top1 = sims[0]
	}
	if len(sims) > 1 {
		top2 = sims[1]
	}

	if top1 < r.minTopSimilarity {
		return StrategyLexicalBackoff
	}
	if top1-top2 < r.minConfidenceGap {
		return StrategyLexicalBackoff
	}
	return StrategyEmbeddingFirst
}
