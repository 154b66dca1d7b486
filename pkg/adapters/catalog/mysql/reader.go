package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
)

// Reader lists catalog metadata from one MySQL database over a transient
// connection created for this call and torn down with Close.
type Reader struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates a reader with its own single-connection handle. The driver
// dials lazily, so connection failures surface on the first catalog call.
// If logger is nil, a no-op logger is used.
func Open(ctx context.Context, desc catalog.Descriptor, logger *zap.Logger) (*Reader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("mysql", buildDSN(desc))
	if err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("open connection: %w", err))
	}
	db.SetMaxOpenConns(1)

	return &Reader{db: db, logger: logger}, nil
}

// Ping verifies the database is reachable with valid credentials.
func (r *Reader) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return catalog.NewConnectionError(err)
	}
	return nil
}

// ListSchemas returns user schema names, system schemas excluded.
func (r *Reader) ListSchemas(ctx context.Context) ([]string, error) {
	const query = `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
		ORDER BY schema_name
	`

	rows, err := r.db.QueryContext(ctx, query)
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
		WHERE table_schema = ?
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := r.db.QueryContext(ctx, query, schema)
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

// DescribeTable returns column metadata in ordinal order. MySQL flags
// primary keys directly on the columns view (column_key = 'PRI'); foreign
// keys come from key_column_usage rows carrying a referenced table.
func (r *Reader) DescribeTable(ctx context.Context, schema, table string) ([]catalog.ColumnMetadata, error) {
	const query = `
		SELECT
			c.column_name,
			c.data_type,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			c.column_key = 'PRI' AS is_primary_key,
			kcu.referenced_table_name,
			c.is_nullable = 'NO' AS is_not_null
		FROM information_schema.columns c
		LEFT JOIN information_schema.key_column_usage kcu
			ON kcu.table_schema = c.table_schema
			AND kcu.table_name = c.table_name
			AND kcu.column_name = c.column_name
			AND kcu.referenced_table_name IS NOT NULL
		WHERE c.table_schema = ? AND c.table_name = ?
		ORDER BY c.ordinal_position
	`

	rows, err := r.db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("query columns: %w", err))
	}
	defer rows.Close()

	var columns []catalog.ColumnMetadata
	for rows.Next() {
		var (
			col                      catalog.ColumnMetadata
			length, precision, scale sql.NullInt64
			refTable                 sql.NullString
		)
		if err := rows.Scan(&col.Name, &col.DataType, &length, &precision, &scale,
			&col.IsPrimaryKey, &refTable, &col.IsNotNull); err != nil {
			return nil, catalog.NewConnectionError(fmt.Errorf("scan column: %w", err))
		}

		col.Length = nullableInt(length)
		col.Precision = nullableInt(precision)
		col.Scale = nullableInt(scale)
		if refTable.Valid {
			col.IsForeignKey = true
			col.ForeignKeyTable = refTable.String
		}

		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, catalog.NewConnectionError(fmt.Errorf("iterate columns: %w", err))
	}

	return columns, nil
}

// Close tears down the transient connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// Ensure Reader implements catalog.Reader at compile time.
var _ catalog.Reader = (*Reader)(nil)
