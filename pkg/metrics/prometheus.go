// Package metrics provides Prometheus metrics for the skill recommendation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the recommendation service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Catalog Metrics - load pipeline health
	catalogLoads        prometheus.Counter
	catalogLoadErrors   prometheus.Counter
	catalogLoadDuration prometheus.Histogram
	catalogSkills       prometheus.Gauge
	catalogTasks        prometheus.Gauge
	catalogScores       prometheus.Gauge

	// Integrity Metrics - fail-closed gate outcomes
	integrityFailures *prometheus.CounterVec

	// Recommendation Metrics - what really matters for a ranking engine
	recommendations       *prometheus.CounterVec
	recommendationLatency prometheus.Histogram
	recommendationErrors  prometheus.Counter

	// Snapshot Metrics - validated snapshot cache timings
	snapshotCount          prometheus.Counter
	snapshotLastUnix       prometheus.Gauge
	snapshotLastDurationMs prometheus.Gauge

	// Store Metrics - SQLite read performance
	storeQueryLatency prometheus.Histogram
	storeUnavailable  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skillrec",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Catalog Metrics - load pipeline health
	m.catalogLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_loads_total",
		Help:      "Total number of catalog loads from the store",
	})

	m.catalogLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_load_errors_total",
		Help:      "Total number of failed catalog loads",
	})

	m.catalogLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_load_duration_milliseconds",
		Help:      "Catalog load and assembly duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.catalogSkills = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_skills",
		Help:      "Number of skills in the last loaded catalog",
	})

	m.catalogTasks = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_tasks",
		Help:      "Number of benchmark tasks in the last loaded catalog",
	})

	m.catalogScores = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_scores",
		Help:      "Number of benchmark scores in the last loaded catalog",
	})

	// Integrity Metrics - fail-closed gate outcomes
	m.integrityFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "integrity_failures_total",
			Help:      "Total number of catalog integrity rejections by check",
		},
		[]string{"check"},
	)

	// Recommendation Metrics
	m.recommendations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendations_total",
			Help:      "Total number of recommendations served by retrieval strategy",
		},
		[]string{"strategy"},
	)

	m.recommendationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendation_latency_milliseconds",
		Help:      "Histogram of end-to-end recommendation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recommendationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendation_errors_total",
		Help:      "Total number of recommendation requests that failed",
	})

	// Snapshot Metrics - validated snapshot cache timings
	m.snapshotCount = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_count_total",
		Help:      "Total number of validated catalog snapshots published",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last validated snapshot publish",
	})

	m.snapshotLastDurationMs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_duration_milliseconds",
		Help:      "Last snapshot rebuild duration in milliseconds",
	})

	// Store Metrics - SQLite read performance
	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Store query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeUnavailable = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_unavailable_total",
		Help:      "Total number of requests refused because the store was unreachable",
	})

	// HTTP Performance Metrics - user experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics - detailed error tracking
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// Catalog Metrics Functions.

// RecordCatalogLoad increments the catalog load counter.
func RecordCatalogLoad() {
	globalManager.catalogLoads.Inc()
}

// RecordCatalogLoadError increments the failed catalog load counter.
func RecordCatalogLoadError() {
	globalManager.catalogLoadErrors.Inc()
}

// RecordCatalogLoadDuration records catalog load duration in milliseconds.
func RecordCatalogLoadDuration(durationMs float64) {
	globalManager.catalogLoadDuration.Observe(durationMs)
}

// UpdateCatalogSize sets the catalog size gauges.
func UpdateCatalogSize(skills, tasks, scores int) {
	globalManager.catalogSkills.Set(float64(skills))
	globalManager.catalogTasks.Set(float64(tasks))
	globalManager.catalogScores.Set(float64(scores))
}

// RecordIntegrityFailure records a catalog integrity rejection for a check.
func RecordIntegrityFailure(check string) {
	globalManager.integrityFailures.WithLabelValues(check).Inc()
}

// Recommendation Metrics Functions.

// RecordRecommendation increments the recommendations counter for a strategy.
func RecordRecommendation(strategy string) {
	globalManager.recommendations.WithLabelValues(strategy).Inc()
}

// RecordRecommendationLatency records recommendation latency in milliseconds.
func RecordRecommendationLatency(latencyMs float64) {
	globalManager.recommendationLatency.Observe(latencyMs)
}

// RecordRecommendationError increments the recommendation errors counter.
func RecordRecommendationError() {
	globalManager.recommendationErrors.Inc()
}

// Snapshot Metrics Functions.

// RecordSnapshotPublish records a validated snapshot publish and its rebuild time.
func RecordSnapshotPublish(durationMs float64) {
	globalManager.snapshotCount.Inc()
	globalManager.snapshotLastUnix.Set(float64(time.Now().Unix()))
	globalManager.snapshotLastDurationMs.Set(durationMs)
}

// Store Metrics Functions.

// RecordStoreQueryLatency records store query latency in milliseconds.
func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

// RecordStoreUnavailable increments the store-unavailable counter.
func RecordStoreUnavailable() {
	globalManager.storeUnavailable.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
