// Package model contains domain models passed between layers.
package model

// Agents accepted on benchmark scores and recommendation queries.
const (
	AgentCodex  = "codex"
	AgentClaude = "claude"
	AgentGemini = "gemini"

	// AgentAny is a query-side wildcard; it never appears on a score row.
	AgentAny = "any"
)

// Agents lists the benchmark agents in canonical order.
var Agents = []string{AgentCodex, AgentClaude, AgentGemini}

// Security review statuses. Only approved skills are eligible for
// recommendation.
const (
	SecurityApproved = "approved"
	SecurityPending  = "pending"
	SecurityRejected = "rejected"
)

// ModeRealBenchmark is the only benchmark run mode the engine accepts.
// Synthetic or mock runs must never feed recommendations.
const ModeRealBenchmark = "real-benchmark"

// SkillTask is an immutable benchmark task definition.
type SkillTask struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// Provenance records where a skill definition came from.
type Provenance struct {
	SourceURL      string `json:"sourceUrl"`
	Repository     string `json:"repository"`
	ImportedFrom   string `json:"importedFrom"`
	License        string `json:"license"`
	LastVerifiedAt string `json:"lastVerifiedAt"`
	Checksum       string `json:"checksum"`
}

// SecurityReview is the approval gate attached to a skill.
type SecurityReview struct {
	Status           string `json:"status"`
	ReviewedBy       string `json:"reviewedBy"`
	ReviewedAt       string `json:"reviewedAt"`
	ReviewMethod     string `json:"reviewMethod"`
	ChecklistVersion string `json:"checklistVersion"`
	Notes            string `json:"notes"`
}

// SkillRecord is a catalog entry describing one installable skill.
type SkillRecord struct {
	ID           string         `json:"id"`
	Slug         string         `json:"slug"`
	Name         string         `json:"name"`
	AgentFamily  string         `json:"agentFamily"`
	Summary      string         `json:"summary"`
	Description  string         `json:"description"`
	Keywords     []string       `json:"keywords"`
	SourceURL    string         `json:"sourceUrl"`
	ImportedFrom string         `json:"importedFrom"`
	Embedding    []float32      `json:"embedding,omitempty"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
	Provenance   Provenance     `json:"provenance"`
	Security     SecurityReview `json:"securityReview"`
}

// BenchmarkRun is one execution of the benchmark harness.
type BenchmarkRun struct {
	ID           string `json:"id"`
	Runner       string `json:"runner"`
	Mode         string `json:"mode"`
	Status       string `json:"status"`
	StartedAt    string `json:"startedAt"`
	CompletedAt  string `json:"completedAt,omitempty"`
	ArtifactPath string `json:"artifactPath"`
	Notes        string `json:"notes"`
}

// SkillScore is a single (skill, task, agent) benchmark measurement.
// TaskSlug and TaskName are denormalized from the task row for display.
type SkillScore struct {
	ID            string  `json:"id"`
	RunID         string  `json:"runId"`
	SkillID       string  `json:"skillId"`
	TaskID        string  `json:"taskId"`
	TaskSlug      string  `json:"taskSlug"`
	TaskName      string  `json:"taskName"`
	Agent         string  `json:"agent"`
	OverallScore  float64 `json:"overallScore"`
	QualityScore  float64 `json:"qualityScore"`
	SecurityScore float64 `json:"securityScore"`
	SpeedScore    float64 `json:"speedScore"`
	CostScore     float64 `json:"costScore"`
	SuccessRate   float64 `json:"successRate"`
	ArtifactPath  string  `json:"artifactPath"`
	CreatedAt     string  `json:"createdAt"`
}

// Catalog is a read-only snapshot of the full benchmark-backed skill set.
// It is assembled fresh per load and never mutated in place; the lookup maps
// are built once by Index.
type Catalog struct {
	Tasks  []SkillTask    `json:"tasks"`
	Skills []SkillRecord  `json:"skills"`
	Runs   []BenchmarkRun `json:"runs"`
	Scores []SkillScore   `json:"scores"`

	tasksByID     map[string]*SkillTask
	skillsByID    map[string]*SkillRecord
	runsByID      map[string]*BenchmarkRun
	scoresBySkill map[string][]*SkillScore
}

// Index builds the internal lookup maps. Call once after assembly; loads
// always go through this before the catalog is used.
func (c *Catalog) Index() {
	c.tasksByID = make(map[string]*SkillTask, len(c.Tasks))
	for i := range c.Tasks {
		c.tasksByID[c.Tasks[i].ID] = &c.Tasks[i]
	}
	c.skillsByID = make(map[string]*SkillRecord, len(c.Skills))
	for i := range c.Skills {
		c.skillsByID[c.Skills[i].ID] = &c.Skills[i]
	}
	c.runsByID = make(map[string]*BenchmarkRun, len(c.Runs))
	for i := range c.Runs {
		c.runsByID[c.Runs[i].ID] = &c.Runs[i]
	}
	c.scoresBySkill = make(map[string][]*SkillScore, len(c.Skills))
	for i := range c.Scores {
		s := &c.Scores[i]
		c.scoresBySkill[s.SkillID] = append(c.scoresBySkill[s.SkillID], s)
	}
}

// TaskByID returns the task with the given id, or nil.
func (c *Catalog) TaskByID(id string) *SkillTask { return c.tasksByID[id] }

// SkillByID returns the skill with the given id, or nil.
func (c *Catalog) SkillByID(id string) *SkillRecord { return c.skillsByID[id] }

// RunByID returns the run with the given id, or nil.
func (c *Catalog) RunByID(id string) *BenchmarkRun { return c.runsByID[id] }

// ScoresForSkill returns all score rows recorded for a skill.
func (c *Catalog) ScoresForSkill(skillID string) []*SkillScore {
	return c.scoresBySkill[skillID]
}

// SkillBySlugOrID resolves a skill by slug first, then id.
func (c *Catalog) SkillBySlugOrID(key string) *SkillRecord {
	for i := range c.Skills {
		if c.Skills[i].Slug == key {
			return &c.Skills[i]
		}
	}
	return c.skillsByID[key]
}

// AgentCoverage counts score rows per agent across the whole catalog.
func (c *Catalog) AgentCoverage() map[string]int {
	cov := make(map[string]int, len(Agents))
	for _, a := range Agents {
		cov[a] = 0
	}
	for i := range c.Scores {
		cov[c.Scores[i].Agent]++
	}
	return cov
}
