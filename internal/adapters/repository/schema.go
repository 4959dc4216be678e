package repository

// Table names read by the catalog loader.
const (
	TableTasks  = "skill_tasks"
	TableSkills = "skills"
	TableRuns   = "benchmark_runs"
	TableScores = "skill_scores"
)

// Schema is the full catalog DDL. The provenance_*, security_*, and
// embedding columns are optional in the wild: older deployments predate
// them, so the loader feature-detects their presence instead of assuming
// it.
const Schema = `
CREATE TABLE IF NOT EXISTS skill_tasks (
	id          TEXT PRIMARY KEY,
	slug        TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS skills (
	id            TEXT PRIMARY KEY,
	slug          TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL,
	agent_family  TEXT NOT NULL DEFAULT 'multi',
	summary       TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	keywords      TEXT NOT NULL DEFAULT '[]',
	source_url    TEXT NOT NULL DEFAULT '',
	imported_from TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL DEFAULT '',
	updated_at    TEXT NOT NULL DEFAULT '',
	embedding     BLOB,

	provenance_repository   TEXT,
	provenance_license      TEXT,
	provenance_verified_at  TEXT,
	provenance_checksum     TEXT,

	security_status            TEXT,
	security_reviewed_by       TEXT,
	security_reviewed_at       TEXT,
	security_review_method     TEXT,
	security_checklist_version TEXT,
	security_notes             TEXT
);

CREATE TABLE IF NOT EXISTS benchmark_runs (
	id            TEXT PRIMARY KEY,
	runner        TEXT NOT NULL DEFAULT '',
	mode          TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'completed',
	started_at    TEXT NOT NULL DEFAULT '',
	completed_at  TEXT,
	artifact_path TEXT NOT NULL DEFAULT '',
	notes         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS skill_scores (
	id             TEXT PRIMARY KEY,
	run_id         TEXT NOT NULL REFERENCES benchmark_runs(id),
	skill_id       TEXT NOT NULL REFERENCES skills(id),
	task_id        TEXT NOT NULL REFERENCES skill_tasks(id),
	agent          TEXT NOT NULL,
	overall_score  REAL NOT NULL DEFAULT 0,
	quality_score  REAL NOT NULL DEFAULT 0,
	security_score REAL NOT NULL DEFAULT 0,
	speed_score    REAL NOT NULL DEFAULT 0,
	cost_score     REAL NOT NULL DEFAULT 0,
	success_rate   REAL NOT NULL DEFAULT 0,
	artifact_path  TEXT NOT NULL DEFAULT '',
	created_at     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_skill_scores_skill ON skill_scores(skill_id);
CREATE INDEX IF NOT EXISTS idx_skill_scores_task  ON skill_scores(task_id);
`
