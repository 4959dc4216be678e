// Package repository provides row-level access to the durable skill
// catalog store. The interface is deliberately narrow (arbitrary-SQL bulk
// reads plus column introspection) so the loader can tolerate schema
// evolution without migrations.
package repository

import "context"

// Row is one result row keyed by column name.
type Row map[string]any

// Store is the read surface the catalog loader consumes.
type Store interface {
	// QueryAll executes a query and returns every row.
	QueryAll(ctx context.Context, query string, args ...any) ([]Row, error)

	// ListColumns returns the set of column names present on a table.
	// Used once per load to detect optional column groups.
	ListColumns(ctx context.Context, table string) (map[string]struct{}, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
