// Package cache holds an atomically swapped, pre-validated catalog snapshot.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillforge/skillrec/internal/domain/model"
)

// BuildFunc produces a fully validated catalog. The cache stores whatever a
// successful call returns, so the builder must run the integrity gate itself;
// failed builds are never cached.
type BuildFunc func(ctx context.Context) (*model.Catalog, error)

type entry struct {
	catalog  *model.Catalog
	loadedAt time.Time
}

// Snapshot serves a catalog through an optional TTL cache. A zero TTL
// disables caching entirely and every Get rebuilds, which preserves the
// rebuild-per-request default.
type Snapshot struct {
	ttl   time.Duration
	build BuildFunc

	mu      sync.Mutex // serializes rebuilds
	current atomic.Pointer[entry]
}

// New returns a Snapshot over build with the given TTL.
func New(ttl time.Duration, build BuildFunc) *Snapshot {
	return &Snapshot{ttl: ttl, build: build}
}

// Get returns a validated catalog, rebuilding when the cached one is absent
// or expired. Concurrent readers of a fresh snapshot never block; a stale
// snapshot is swapped out only after its replacement builds successfully.
func (s *Snapshot) Get(ctx context.Context) (*model.Catalog, error) {
	if s.ttl <= 0 {
		return s.build(ctx)
	}

	if e := s.current.Load(); e != nil && time.Since(e.loadedAt) < s.ttl {
		return e.catalog, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have rebuilt while we waited for the lock.
	if e := s.current.Load(); e != nil && time.Since(e.loadedAt) < s.ttl {
		return e.catalog, nil
	}

	c, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(&entry{catalog: c, loadedAt: time.Now()})
	return c, nil
}

// Invalidate drops the cached snapshot so the next Get rebuilds.
func (s *Snapshot) Invalidate() {
	s.current.Store(nil)
}
