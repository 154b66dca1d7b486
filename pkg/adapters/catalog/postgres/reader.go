package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
)

// connectTimeout bounds the dial handshake. The overall call deadline
// belongs to the caller's context.
const connectTimeout = 10 * time.Second

// Reader lists catalog metadata from one PostgreSQL database.
// The pool is created for a single call and torn down with Close;
// nothing is reused across requests.
type Reader struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Open creates a reader backed by a transient single-connection pool.
// If logger is nil, a no-op logger is used.
func Open(ctx context.Context, desc catalog.Descriptor, logger *zap.Logger) (*Reader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	poolCfg, err := pgxpool.ParseConfig(buildConnString(desc))
	if err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("parse connection config: %w", err))
	}
	poolCfg.MaxConns = 1
	poolCfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("open pool: %w", err))
	}

	return &Reader{pool: pool, logger: logger}, nil
}

// Ping verifies the database is reachable with valid credentials.
func (r *Reader) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return catalog.NewConnectionError(err)
	}
	return nil
}

// ListSchemas returns user schema names, system schemas excluded.
func (r *Reader) ListSchemas(ctx context.Context) ([]string, error) {
	const query = `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		ORDER BY schema_name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("query schemas: %w", err))
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, catalog.NewConnectionError(fmt.Errorf("scan schema: %w", err))
		}
		schemas = append(schemas, name)
	}

	if err := rows.Err(); err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("iterate schemas: %w", err))
	}

	return schemas, nil
}

// ListTables returns base table names within a schema, ordered by name.
func (r *Reader) ListTables(ctx context.Context, schema string) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := r.pool.Query(ctx, query, schema)
	if err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("query tables: %w", err))
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, catalog.NewConnectionError(fmt.Errorf("scan table: %w", err))
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("iterate tables: %w", err))
	}

	return tables, nil
}

// DescribeTable returns column metadata in ordinal order. Primary and
// foreign key columns are annotated via the constraint catalog views;
// the foreign key join also surfaces the referenced table name.
func (r *Reader) DescribeTable(ctx context.Context, schema, table string) ([]catalog.ColumnMetadata, error) {
	const query = `
		SELECT
			c.column_name,
			c.data_type,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			COALESCE(pk.is_pk, false) AS is_primary_key,
			COALESCE(fk.is_fk, false) AS is_foreign_key,
			fk.referenced_table,
			c.is_nullable = 'NO' AS is_not_null
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.column_name, true AS is_pk
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name
				AND tc.table_schema = kcu.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
			  AND tc.table_schema = $1
			  AND tc.table_name = $2
		) pk ON c.column_name = pk.column_name
		LEFT JOIN (
			SELECT kcu.column_name, true AS is_fk, ccu.table_name AS referenced_table
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name
				AND tc.table_schema = kcu.table_schema
			JOIN information_schema.constraint_column_usage ccu
				ON tc.constraint_name = ccu.constraint_name
				AND tc.table_schema = ccu.table_schema
			WHERE tc.constraint_type = 'FOREIGN KEY'
			  AND tc.table_schema = $1
			  AND tc.table_name = $2
		) fk ON c.column_name = fk.column_name
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := r.pool.Query(ctx, query, schema, table)
	if err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("query columns: %w", err))
	}
	defer rows.Close()

	var columns []catalog.ColumnMetadata
	for rows.Next() {
		var (
			col      catalog.ColumnMetadata
			refTable *string
		)
		if err := rows.Scan(&col.Name, &col.DataType, &col.Length, &col.Precision, &col.Scale,
			&col.IsPrimaryKey, &col.IsForeignKey, &refTable, &col.IsNotNull); err != nil {
			return nil, catalog.NewConnectionError(fmt.Errorf("scan column: %w", err))
		}
		if refTable != nil {
			col.ForeignKeyTable = *refTable
		}
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("iterate columns: %w", err))
	}

	return columns, nil
}

// Close tears down the transient pool.
func (r *Reader) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

// Ensure Reader implements catalog.Reader at compile time.
var _ catalog.Reader = (*Reader)(nil)
