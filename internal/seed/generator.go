// Package seed builds a complete, integrity-valid demo catalog: 50 skills,
// 10 tasks, 3 real-benchmark runs, and 150 score rows (one per skill and
// agent). Ids are derived with uuid.NewSHA1 over slugs so repeated runs
// produce the same catalog byte for byte.
package seed

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/lexical"
	"github.com/skillforge/skillrec/internal/domain/model"
)

// Fixed timestamps keep the generated catalog reproducible.
const (
	createdAt  = "2025-05-01T09:00:00Z"
	updatedAt  = "2025-06-10T14:30:00Z"
	verifiedAt = "2025-06-01T08:00:00Z"
	scoredAt   = "2025-06-12T10:15:00Z"
)

// area groups one benchmark task with the five skills scored against it.
type area struct {
	taskSlug string
	taskName string
	taskDesc string
	category string
	tags     []string

	skills [5]skillDef
}

type skillDef struct {
	slug     string
	name     string
	summary  string
	keywords []string
}

// areas is the static catalog blueprint: 10 areas x 5 skills = 50 skills.
var areas = []area{
	{
		taskSlug: "ci-pipeline-hardening", taskName: "CI Pipeline Hardening",
		taskDesc: "Harden continuous integration and delivery pipelines with security checks on every merge",
		category: "security", tags: []string{"ci", "cd", "pipeline", "security", "merge"},
		skills: [5]skillDef{
			{"pipeline-sentinel", "Pipeline Sentinel", "Hardens CI/CD pipeline security checks for every merge", []string{"harden", "ci", "cd", "pipeline", "security", "checks", "merge"}},
			{"secret-scan-gate", "Secret Scan Gate", "Blocks merges that leak credentials or tokens", []string{"secrets", "credentials", "scanning", "gate"}},
			{"dependency-auditor", "Dependency Auditor", "Audits third-party dependencies for known vulnerabilities", []string{"dependencies", "vulnerabilities", "audit", "sbom"}},
			{"signed-build-enforcer", "Signed Build Enforcer", "Requires provenance attestations on build artifacts", []string{"signing", "provenance", "attestation", "build"}},
			{"branch-policy-writer", "Branch Policy Writer", "Generates branch protection and review policies", []string{"branch", "protection", "review", "policy"}},
		},
	},
	{
		taskSlug: "code-review-automation", taskName: "Code Review Automation",
		taskDesc: "Review pull requests for defects, style issues, and risky changes",
		category: "quality", tags: []string{"review", "pull", "request", "quality"},
		skills: [5]skillDef{
			{"review-companion", "Review Companion", "Summarizes diffs and flags risky changes in pull requests", []string{"review", "diff", "pull", "request"}},
			{"style-normalizer", "Style Normalizer", "Applies project style conventions to changed files", []string{"style", "lint", "format", "conventions"}},
			{"test-gap-finder", "Test Gap Finder", "Finds changed code paths without test coverage", []string{"coverage", "tests", "gaps"}},
			{"commit-message-coach", "Commit Message Coach", "Rewrites commit messages to match repository conventions", []string{"commit", "message", "history"}},
			{"api-break-detector", "API Break Detector", "Detects breaking changes to public interfaces", []string{"api", "breaking", "compatibility"}},
		},
	},
	{
		taskSlug: "database-migrations", taskName: "Database Migrations",
		taskDesc: "Write and verify relational schema migrations without data loss",
		category: "data", tags: []string{"database", "schema", "migration", "sql"},
		skills: [5]skillDef{
			{"migration-planner", "Migration Planner", "Plans reversible schema migrations with safety checks", []string{"migration", "schema", "rollback", "sql"}},
			{"index-advisor", "Index Advisor", "Recommends indexes from slow query logs", []string{"index", "query", "performance"}},
			{"data-backfill-runner", "Data Backfill Runner", "Executes chunked backfills with progress tracking", []string{"backfill", "batch", "chunked"}},
			{"query-optimizer", "Query Optimizer", "Rewrites SQL queries for better execution plans", []string{"sql", "query", "optimizer", "explain"}},
			{"schema-diff-reporter", "Schema Diff Reporter", "Reports drift between expected and live schemas", []string{"schema", "drift", "diff"}},
		},
	},
	{
		taskSlug: "api-contract-testing", taskName: "API Contract Testing",
		taskDesc: "Generate and run contract tests for HTTP and RPC interfaces",
		category: "testing", tags: []string{"api", "contract", "testing", "http"},
		skills: [5]skillDef{
			{"contract-test-writer", "Contract Test Writer", "Generates contract tests from API specifications", []string{"contract", "tests", "openapi"}},
			{"fuzz-harness-builder", "Fuzz Harness Builder", "Builds fuzzing harnesses for request parsers", []string{"fuzzing", "harness", "parser"}},
			{"load-profile-designer", "Load Profile Designer", "Designs realistic load test profiles", []string{"load", "latency", "throughput"}},
			{"response-schema-checker", "Response Schema Checker", "Validates live responses against declared schemas", []string{"schema", "validation", "response"}},
			{"error-path-prober", "Error Path Prober", "Exercises error handling branches of HTTP endpoints", []string{"errors", "handling", "endpoints"}},
		},
	},
	{
		taskSlug: "docs-generation", taskName: "Documentation Generation",
		taskDesc: "Produce and maintain reference documentation from source code",
		category: "docs", tags: []string{"documentation", "reference", "markdown"},
		skills: [5]skillDef{
			{"readme-author", "Readme Author", "Drafts project readme files from repository structure", []string{"readme", "markdown", "overview"}},
			{"changelog-curator", "Changelog Curator", "Maintains changelogs from merged pull requests", []string{"changelog", "releases", "notes"}},
			{"api-doc-builder", "API Doc Builder", "Builds endpoint reference docs from handlers", []string{"api", "reference", "endpoints"}},
			{"tutorial-writer", "Tutorial Writer", "Writes getting-started tutorials for new users", []string{"tutorial", "onboarding", "guide"}},
			{"comment-groomer", "Comment Groomer", "Updates stale doc comments to match code", []string{"comments", "docs", "drift"}},
		},
	},
	{
		taskSlug: "infra-provisioning", taskName: "Infrastructure Provisioning",
		taskDesc: "Provision cloud infrastructure with declarative configuration",
		category: "infra", tags: []string{"terraform", "cloud", "provisioning"},
		skills: [5]skillDef{
			{"terraform-reviewer", "Terraform Reviewer", "Reviews terraform plans for destructive changes", []string{"terraform", "plan", "infrastructure"}},
			{"cost-estimator", "Cost Estimator", "Estimates monthly cost of proposed infrastructure", []string{"cost", "budget", "cloud"}},
			{"iam-policy-minimizer", "IAM Policy Minimizer", "Reduces IAM policies to least privilege", []string{"iam", "permissions", "least", "privilege"}},
			{"drift-detector", "Drift Detector", "Detects drift between declared and live infrastructure", []string{"drift", "state", "reconcile"}},
			{"k8s-manifest-writer", "K8s Manifest Writer", "Generates kubernetes manifests with sane defaults", []string{"kubernetes", "manifest", "deployment"}},
		},
	},
	{
		taskSlug: "observability-setup", taskName: "Observability Setup",
		taskDesc: "Instrument services with metrics, traces, and structured logs",
		category: "observability", tags: []string{"metrics", "tracing", "logging"},
		skills: [5]skillDef{
			{"metric-instrumenter", "Metric Instrumenter", "Adds request and latency metrics to services", []string{"metrics", "prometheus", "latency"}},
			{"trace-weaver", "Trace Weaver", "Propagates trace context across service boundaries", []string{"tracing", "spans", "context"}},
			{"log-structurer", "Log Structurer", "Converts printf logging to structured fields", []string{"logging", "structured", "fields"}},
			{"alert-rule-author", "Alert Rule Author", "Writes alerting rules with sensible thresholds", []string{"alerts", "thresholds", "rules"}},
			{"dashboard-composer", "Dashboard Composer", "Composes service dashboards from existing metrics", []string{"dashboard", "panels", "visualization"}},
		},
	},
	{
		taskSlug: "frontend-styling", taskName: "Frontend Styling",
		taskDesc: "Implement responsive layouts and consistent component styling",
		category: "frontend", tags: []string{"css", "layout", "components"},
		skills: [5]skillDef{
			{"layout-builder", "Layout Builder", "Builds responsive page layouts from wireframes", []string{"layout", "responsive", "grid"}},
			{"theme-harmonizer", "Theme Harmonizer", "Unifies colors and spacing across components", []string{"theme", "tokens", "spacing"}},
			{"accessibility-fixer", "Accessibility Fixer", "Fixes contrast, focus, and aria issues", []string{"accessibility", "aria", "contrast"}},
			{"animation-tuner", "Animation Tuner", "Tunes css transitions for smooth interaction", []string{"animation", "transition", "easing"}},
			{"component-librarian", "Component Librarian", "Extracts repeated markup into shared components", []string{"components", "reuse", "library"}},
		},
	},
	{
		taskSlug: "data-pipeline-build", taskName: "Data Pipeline Build",
		taskDesc: "Build batch and streaming data pipelines with validation stages",
		category: "data", tags: []string{"etl", "streaming", "validation"},
		skills: [5]skillDef{
			{"etl-scaffolder", "ETL Scaffolder", "Scaffolds extract transform load jobs", []string{"etl", "batch", "jobs"}},
			{"stream-joiner", "Stream Joiner", "Implements windowed joins over event streams", []string{"streaming", "windows", "joins"}},
			{"quality-gatekeeper", "Quality Gatekeeper", "Adds data quality assertions between stages", []string{"quality", "assertions", "stages"}},
			{"partition-strategist", "Partition Strategist", "Chooses partitioning keys for large tables", []string{"partitioning", "keys", "scale"}},
			{"replay-coordinator", "Replay Coordinator", "Coordinates safe reprocessing of historical data", []string{"replay", "reprocessing", "history"}},
		},
	},
	{
		taskSlug: "release-automation", taskName: "Release Automation",
		taskDesc: "Automate versioning, packaging, and rollout of releases",
		category: "delivery", tags: []string{"release", "versioning", "rollout"},
		skills: [5]skillDef{
			{"version-bumper", "Version Bumper", "Derives semantic versions from merged changes", []string{"semver", "version", "tags"}},
			{"artifact-publisher", "Artifact Publisher", "Publishes build artifacts to registries", []string{"artifacts", "registry", "publish"}},
			{"canary-conductor", "Canary Conductor", "Orchestrates gradual canary rollouts", []string{"canary", "rollout", "gradual"}},
			{"rollback-planner", "Rollback Planner", "Prepares one-step rollback paths for releases", []string{"rollback", "recovery", "safety"}},
			{"release-note-writer", "Release Note Writer", "Writes user-facing release notes", []string{"notes", "release", "summary"}},
		},
	},
}

// runners for the three benchmark runs.
var runners = []string{"bench-runner-eu1", "bench-runner-us1", "bench-runner-ap1"}

// id derives a stable uuid from a catalog-unique key.
func id(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("skillrec/"+kind+"/"+key)).String()
}

// agentFamily cycles skill families deterministically.
func agentFamily(i int) string {
	switch i % 4 {
	case 0:
		return model.AgentCodex
	case 1:
		return model.AgentClaude
	case 2:
		return model.AgentGemini
	default:
		return "multi"
	}
}

// overall produces a deterministic benchmark score in [62, 98).
func overall(skillIdx, agentIdx int) float64 {
	return 62 + float64((skillIdx*7+agentIdx*13)%36)
}

// Generate assembles the full demo catalog, indexed and ready for
// validation. Skill embeddings are precomputed with the given
// dimensionality so the stored-vector path is exercised end to end.
func Generate(dims int) *model.Catalog {
	c := &model.Catalog{}

	for _, a := range areas {
		c.Tasks = append(c.Tasks, model.SkillTask{
			ID:          id("task", a.taskSlug),
			Slug:        a.taskSlug,
			Name:        a.taskName,
			Description: a.taskDesc,
			Category:    a.category,
			Tags:        a.tags,
		})
	}

	for r, runner := range runners {
		c.Runs = append(c.Runs, model.BenchmarkRun{
			ID:           id("run", runner),
			Runner:       runner,
			Mode:         model.ModeRealBenchmark,
			Status:       "completed",
			StartedAt:    fmt.Sprintf("2025-06-1%dT06:00:00Z", r),
			CompletedAt:  fmt.Sprintf("2025-06-1%dT09:45:00Z", r),
			ArtifactPath: fmt.Sprintf("/var/bench/%s/results.json", runner),
			Notes:        "full catalog sweep",
		})
	}

	skillIdx := 0
	for areaIdx, a := range areas {
		task := c.Tasks[areaIdx]
		for _, def := range a.skills {
			skill := buildSkill(skillIdx, a, def, dims)
			c.Skills = append(c.Skills, skill)

			for agentIdx, agent := range model.Agents {
				run := c.Runs[agentIdx%len(c.Runs)]
				c.Scores = append(c.Scores, model.SkillScore{
					ID:           id("score", def.slug+"/"+agent),
					RunID:        run.ID,
					SkillID:      skill.ID,
					TaskID:       task.ID,
					TaskSlug:     task.Slug,
					TaskName:     task.Name,
					Agent:        agent,
					OverallScore:  overall(skillIdx, agentIdx),
					QualityScore:  overall(skillIdx, agentIdx+1),
					SecurityScore: overall(skillIdx, agentIdx+2),
					SpeedScore:    overall(skillIdx+1, agentIdx),
					CostScore:     overall(skillIdx+2, agentIdx),
					SuccessRate:   0.8 + float64(skillIdx%5)*0.04,
					ArtifactPath:  fmt.Sprintf("/var/bench/%s/%s/%s.json", run.Runner, def.slug, agent),
					CreatedAt:     scoredAt,
				})
			}
			skillIdx++
		}
	}

	c.Index()
	return c
}

func buildSkill(idx int, a area, def skillDef, dims int) model.SkillRecord {
	sourceURL := "https://github.com/skillforge/catalog/tree/main/" + def.slug
	skill := model.SkillRecord{
		ID:          id("skill", def.slug),
		Slug:        def.slug,
		Name:        def.name,
		AgentFamily: agentFamily(idx),
		Summary:     def.summary,
		Description: fmt.Sprintf("%s. Tuned for %s work such as %s.",
			def.summary, a.category, strings.ToLower(a.taskName)),
		Keywords:     def.keywords,
		SourceURL:    sourceURL,
		ImportedFrom: "catalog-import-v2",
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		Provenance: model.Provenance{
			SourceURL:      sourceURL,
			Repository:     "skillforge/catalog",
			ImportedFrom:   "catalog-import-v2",
			License:        "apache-2.0",
			LastVerifiedAt: verifiedAt,
			Checksum:       fmt.Sprintf("fnv1a:%08x", embedding.HashToken(sourceURL)),
		},
		Security: model.SecurityReview{
			Status:           model.SecurityApproved,
			ReviewedBy:       "security-review-board",
			ReviewedAt:       verifiedAt,
			ReviewMethod:     "manual-checklist",
			ChecklistVersion: "v3",
			Notes:            "",
		},
	}
	skill.Embedding = embedding.Embed(lexical.SkillDocument(&skill), dims)
	return skill
}
