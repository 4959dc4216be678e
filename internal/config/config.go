// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite skills database.
	DBPath string `koanf:"db_path"`

	// EmbeddingDims sets the feature-hashing embedding dimension.
	EmbeddingDims int `koanf:"embedding_dims"`

	// MinTaskLength rejects recommendation tasks shorter than this many
	// characters after trimming.
	MinTaskLength int `koanf:"min_task_length"`

	// CacheTTLMS caches the validated catalog snapshot for this many
	// milliseconds. Zero rebuilds and revalidates on every request.
	CacheTTLMS int `koanf:"cache_ttl_ms"`
}

// New creates a Config with production defaults. Context is accepted first
// to satisfy the project-wide convention; it is reserved for future use and
// currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		DBPath:        "data/skills.db",
		EmbeddingDims: 96,
		MinTaskLength: 8,
		CacheTTLMS:    0,
	}
	return c
}
