package catalog

import (
	"context"

	"go.uber.org/zap"
)

// placeholderReader serves fixed catalog lists for engine types without a
// real implementation (SQL Server, Oracle, File, API, Cloud, FTP, ...).
// The forms still need something to cascade through, so every call
// succeeds with plausible names and no external connection is made.
type placeholderReader struct {
	logger *zap.Logger
}

func newPlaceholderReader(logger *zap.Logger) *placeholderReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &placeholderReader{logger: logger}
}

func (r *placeholderReader) Ping(ctx context.Context) error {
	return nil
}

func (r *placeholderReader) ListSchemas(ctx context.Context) ([]string, error) {
	return placeholderSchemas(), nil
}

func (r *placeholderReader) ListTables(ctx context.Context, schema string) ([]string, error) {
	r.logger.Debug("Serving placeholder tables", zap.String("schema", schema))
	return placeholderTables(), nil
}

func (r *placeholderReader) DescribeTable(ctx context.Context, schema, table string) ([]ColumnMetadata, error) {
	r.logger.Debug("Serving placeholder columns",
		zap.String("schema", schema),
		zap.String("table", table))
	return placeholderColumns(), nil
}

func (r *placeholderReader) Close() error {
	return nil
}

// Fixture builders return fresh slices so callers can't mutate shared state.

func placeholderSchemas() []string {
	return []string{"main", "staging", "reporting"}
}

func placeholderTables() []string {
	return []string{"customers", "orders", "transactions"}
}

func placeholderColumns() []ColumnMetadata {
	return []ColumnMetadata{
		{Name: "id", DataType: "integer", IsPrimaryKey: true, IsNotNull: true},
		{Name: "customer_id", DataType: "integer", IsForeignKey: true, ForeignKeyTable: "customers", IsNotNull: true},
		{Name: "name", DataType: "varchar", Length: intPtr(255)},
		{Name: "created_at", DataType: "timestamp"},
	}
}

func intPtr(v int) *int {
	return &v
}

// Ensure placeholderReader implements Reader at compile time.
var _ Reader = (*placeholderReader)(nil)
