package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/skillforge/skillrec/pkg/metrics"
)

// SQLiteStore implements Store over a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the SQLite database at path with production-safe pragmas
// (foreign_keys ON, WAL journal, busy_timeout, synchronous NORMAL) applied
// via EXEC.
func Open(path string, opts ...Option) (*SQLiteStore, error) {
	cfg := defaults()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.mkdirAll && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repository: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		fmt.Sprintf("PRAGMA synchronous = %s", cfg.synchronous),
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("repository: %s: %w", p, err)
		}
	}

	for _, s := range cfg.schemas {
		if _, err := db.Exec(s); err != nil {
			db.Close()
			return nil, fmt.Errorf("repository: exec schema: %w", err)
		}
	}

	if cfg.ping {
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("repository: ping: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// OpenMemory opens an in-memory database for testing with the catalog
// schema applied. MaxOpenConns(1) keeps every query on the same in-memory
// database; each new connection to ":memory:" would otherwise get its own.
func OpenMemory(t testing.TB, opts ...Option) *SQLiteStore {
	t.Helper()
	opts = append([]Option{WithSchema(Schema)}, opts...)
	s, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("repository.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// DB exposes the underlying handle for seeding.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Ping reports store reachability.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// QueryAll executes query and materializes every row into a column-keyed
// map. []byte cells are copied out as strings except for BLOB columns,
// which keep their raw bytes.
func (s *SQLiteStore) QueryAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("repository: columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("repository: column types: %w", err)
	}

	var out []Row
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("repository: scan: %w", err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = normalizeCell(cells[i], types[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: iterate: %w", err)
	}
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	return out, nil
}

// normalizeCell converts driver byte slices into strings for text-typed
// columns so the loader can treat cells uniformly.
func normalizeCell(v any, t *sql.ColumnType) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if t != nil && t.DatabaseTypeName() == "BLOB" {
		return append([]byte(nil), b...)
	}
	return string(b)
}

// ListColumns introspects a table via PRAGMA table_info.
func (s *SQLiteStore) ListColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	rows, err := s.QueryAll(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, err
	}
	cols := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if name, ok := r["name"].(string); ok {
			cols[name] = struct{}{}
		}
	}
	return cols, nil
}
