// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/skillforge/skillrec/internal/adapters/repository"
	"github.com/skillforge/skillrec/internal/cache"
	"github.com/skillforge/skillrec/internal/catalog"
	"github.com/skillforge/skillrec/internal/domain/benchmark"
	"github.com/skillforge/skillrec/internal/domain/embedding"
	"github.com/skillforge/skillrec/internal/domain/integrity"
	"github.com/skillforge/skillrec/internal/domain/model"
	"github.com/skillforge/skillrec/internal/domain/ranking"
	"github.com/skillforge/skillrec/pkg/logger"
	"github.com/skillforge/skillrec/pkg/metrics"
)

// Recommendation bundles a ranked result with the benchmark context the API
// reports alongside it.
type Recommendation struct {
	Query   ranking.Query
	Result  ranking.Result
	Context BenchmarkContext
}

// BenchmarkContext summarizes the benchmark evidence behind a recommendation.
type BenchmarkContext struct {
	Mode          string         `json:"mode"`
	Runs          int            `json:"runs"`
	Scores        int            `json:"scores"`
	AgentCoverage map[string]int `json:"agentCoverage"`
}

// SkillDetail is one skill with its full benchmark history.
type SkillDetail struct {
	Skill            model.SkillRecord
	Scores           []model.SkillScore
	AverageScore     float64
	BestScore        float64
	BenchmarkedTasks int
}

// Service implements the API dependencies for the recommendation engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	owned    *repository.SQLiteStore
	loader   *catalog.Loader
	ranker   *ranking.Ranker
	snapshot *cache.Snapshot

	// Configuration
	dbPath        string
	embeddingDims int
	minTaskLength int
	cacheTTL      time.Duration
	rankerOpts    []ranking.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a pre-opened row store. When unset, Start opens the
// SQLite database at the configured path.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDBPath sets the SQLite database path used when no store is injected.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithEmbeddingDims sets the feature-hashing embedding dimension.
func WithEmbeddingDims(dims int) Option {
	return func(s *Service) {
		if dims > 0 {
			s.embeddingDims = dims
		}
	}
}

// WithMinTaskLength sets the minimum trimmed task description length.
func WithMinTaskLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minTaskLength = n
		}
	}
}

// WithCacheTTL sets the validated-snapshot TTL. Zero keeps the default of
// rebuilding and revalidating the catalog on every request.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithRankerOptions forwards options to the underlying ranker.
func WithRankerOptions(opts ...ranking.Option) Option {
	return func(s *Service) {
		s.rankerOpts = append(s.rankerOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:        "data/skills.db",
		embeddingDims: embedding.DefaultDims,
		minTaskLength: ranking.MinTaskLength,
		cacheTTL:      0,
		logger:        nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting skill recommendation service...")

	if s.store == nil {
		store, err := repository.Open(s.dbPath, repository.WithMkdirAll())
		if err != nil {
			return err
		}
		s.owned = store
		s.store = store
	}

	s.loader = catalog.New(s.store, s.logger)
	s.ranker = ranking.New(append([]ranking.Option{ranking.WithDims(s.embeddingDims)}, s.rankerOpts...)...)
	s.snapshot = cache.New(s.cacheTTL, s.buildSnapshot)

	s.started = true
	s.logger.Info(ctx, "skill recommendation service started",
		logger.String("dbPath", s.dbPath),
		logger.Int("embeddingDims", s.embeddingDims),
		logger.Any("cacheTTL", s.cacheTTL),
	)

	return nil
}

// Stop releases the store when the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping skill recommendation service...")

	if s.owned != nil {
		_ = s.owned.Close()
		s.owned = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "skill recommendation service stopped")
}

// buildSnapshot loads and validates a catalog. Every snapshot handed out has
// passed the full integrity gate; a failing catalog is never partially
// served.
func (s *Service) buildSnapshot(ctx context.Context) (*model.Catalog, error) {
	start := time.Now()

	c, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordCatalogLoadError()
		if errors.Is(err, repository.ErrUnavailable) {
			metrics.RecordStoreUnavailable()
		}
		return nil, err
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.RecordCatalogLoad()
	metrics.RecordCatalogLoadDuration(elapsed)
	metrics.UpdateCatalogSize(len(c.Skills), len(c.Tasks), len(c.Scores))

	if v := integrity.Validate(c); v != nil {
		metrics.RecordIntegrityFailure("catalog")
		s.logger.Error(ctx, "catalog failed integrity validation",
			logger.String("reason", v.Reason),
		)
		return nil, v
	}

	metrics.RecordSnapshotPublish(elapsed)
	return c, nil
}

// Snapshot returns the current validated catalog.
func (s *Service) Snapshot(ctx context.Context) (*model.Catalog, error) {
	return s.snapshot.Get(ctx)
}

// Recommend validates the query, ranks the catalog, and returns the top
// candidates with benchmark context.
func (s *Service) Recommend(ctx context.Context, q ranking.Query) (*Recommendation, error) {
	start := time.Now()

	q.Task = strings.TrimSpace(q.Task)
	if utf8.RuneCountInString(q.Task) < s.minTaskLength {
		return nil, ErrInvalidTask
	}

	c, err := s.Snapshot(ctx)
	if err != nil {
		metrics.RecordRecommendationError()
		return nil, err
	}

	result := s.ranker.Recommend(c, q)
	if len(result.Candidates) == 0 {
		metrics.RecordRecommendationError()
		return nil, ErrNoMatch
	}

	metrics.RecordRecommendation(result.Strategy)
	metrics.RecordRecommendationLatency(float64(time.Since(start).Microseconds()) / 1000.0)

	s.logger.Debug(ctx, "recommendation served",
		logger.String("strategy", result.Strategy),
		logger.String("best", result.Best.Slug),
		logger.Int("candidates", len(result.Candidates)),
	)

	return &Recommendation{
		Query:   q,
		Result:  result,
		Context: benchmarkContext(c),
	}, nil
}

// SkillDetail resolves a skill by slug or id and aggregates its benchmark
// history.
func (s *Service) SkillDetail(ctx context.Context, idOrSlug string) (*SkillDetail, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	skill := c.SkillBySlugOrID(idOrSlug)
	if skill == nil {
		return nil, ErrSkillNotFound
	}

	rows := c.ScoresForSkill(skill.ID)
	scores := make([]model.SkillScore, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, *row)
	}

	return &SkillDetail{
		Skill:            *skill,
		Scores:           scores,
		AverageScore:     benchmark.Average(rows, model.AgentAny),
		BestScore:        benchmark.Best(rows, model.AgentAny),
		BenchmarkedTasks: benchmark.TaskCount(rows),
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":       s.started,
		"dbPath":        s.dbPath,
		"embeddingDims": s.embeddingDims,
		"minTaskLength": s.minTaskLength,
		"cacheTTLMs":    s.cacheTTL.Milliseconds(),
	}
}

// benchmarkContext summarizes the run and coverage evidence in a catalog.
func benchmarkContext(c *model.Catalog) BenchmarkContext {
	return BenchmarkContext{
		Mode:          model.ModeRealBenchmark,
		Runs:          len(c.Runs),
		Scores:        len(c.Scores),
		AgentCoverage: c.AgentCoverage(),
	}
}
