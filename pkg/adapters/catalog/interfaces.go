// Package catalog introspects external databases for the dashboard's
// cascading schema, table and column pickers. Each call opens one
// transient connection and closes it before returning; nothing is pooled
// or cached across calls.
package catalog

import "context"

// Reader lists catalog metadata from one external database.
// Each implementation owns its connection and must be closed when done.
type Reader interface {
	// Ping verifies the database is reachable with valid credentials.
	Ping(ctx context.Context) error

	// ListSchemas returns schema names in catalog order.
	ListSchemas(ctx context.Context) ([]string, error)

	// ListTables returns table names within a schema, ordered by name.
	ListTables(ctx context.Context, schema string) ([]string, error)

	// DescribeTable returns column metadata for a table in ordinal order,
	// with primary and foreign key columns flagged.
	DescribeTable(ctx context.Context, schema, table string) ([]ColumnMetadata, error)

	// Close releases the connection.
	Close() error
}
