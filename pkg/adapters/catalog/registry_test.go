package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// fakeReader for testing registry dispatch
type fakeReader struct {
	engine string
}

func (f *fakeReader) Ping(ctx context.Context) error { return nil }

func (f *fakeReader) ListSchemas(ctx context.Context) ([]string, error) {
	return []string{f.engine}, nil
}

func (f *fakeReader) ListTables(ctx context.Context, schema string) ([]string, error) {
	return nil, nil
}

func (f *fakeReader) DescribeTable(ctx context.Context, schema, table string) ([]ColumnMetadata, error) {
	return nil, nil
}

func (f *fakeReader) Close() error { return nil }

func registerFake(engine string, aliases ...string) {
	Register(Registration{
		Info: EngineInfo{
			Type:        engine,
			DisplayName: engine,
		},
		Aliases: aliases,
		Open: func(ctx context.Context, desc Descriptor, logger *zap.Logger) (Reader, error) {
			return &fakeReader{engine: engine}, nil
		},
	})
}

func TestRegisterAndDispatch(t *testing.T) {
	registerFake("duckdb")

	factory := NewReaderFactory(zaptest.NewLogger(t))
	reader, err := factory.NewReader(context.Background(), Descriptor{Engine: "duckdb"})
	require.NoError(t, err)
	defer reader.Close()

	schemas, err := reader.ListSchemas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"duckdb"}, schemas)
}

func TestDispatchNormalizesEngineCase(t *testing.T) {
	registerFake("clickhouse")

	factory := NewReaderFactory(zaptest.NewLogger(t))
	for _, spelling := range []string{"ClickHouse", "CLICKHOUSE", "  clickhouse  "} {
		reader, err := factory.NewReader(context.Background(), Descriptor{Engine: spelling})
		require.NoError(t, err, "spelling %q", spelling)

		schemas, err := reader.ListSchemas(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"clickhouse"}, schemas, "spelling %q", spelling)
		reader.Close()
	}
}

func TestDispatchResolvesAliases(t *testing.T) {
	registerFake("mariadb", "maria")

	assert.True(t, IsRegistered("mariadb"))
	assert.True(t, IsRegistered("Maria"))

	factory := NewReaderFactory(zaptest.NewLogger(t))
	reader, err := factory.NewReader(context.Background(), Descriptor{Engine: "maria"})
	require.NoError(t, err)
	defer reader.Close()

	schemas, err := reader.ListSchemas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mariadb"}, schemas)
}

func TestUnregisteredEngineGetsPlaceholder(t *testing.T) {
	factory := NewReaderFactory(zaptest.NewLogger(t))

	// Oracle has no registered implementation; every call must still succeed.
	reader, err := factory.NewReader(context.Background(), Descriptor{Engine: "Oracle"})
	require.NoError(t, err)
	defer reader.Close()

	_, ok := reader.(*placeholderReader)
	assert.True(t, ok, "expected placeholder reader for unregistered engine")

	schemas, err := reader.ListSchemas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "staging", "reporting"}, schemas)
}

func TestIsRegisteredUnknownEngine(t *testing.T) {
	assert.False(t, IsRegistered("ftp"))
}

func TestRegisteredEnginesCollapsesAliases(t *testing.T) {
	registerFake("firebird", "fb", "firebirdsql")

	infos := RegisteredEngines()
	count := 0
	for _, info := range infos {
		if info.Type == "firebird" {
			count++
		}
	}
	assert.Equal(t, 1, count, "aliases should collapse into one entry")

	// Sorted by type.
	for i := 1; i < len(infos); i++ {
		assert.LessOrEqual(t, infos[i-1].Type, infos[i].Type)
	}
}

func TestNewReaderFactoryNilLogger(t *testing.T) {
	factory := NewReaderFactory(nil)
	require.NotNil(t, factory)

	reader, err := factory.NewReader(context.Background(), Descriptor{Engine: "SQL Server"})
	require.NoError(t, err)
	defer reader.Close()

	tables, err := reader.ListTables(context.Background(), "dbo")
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "orders", "transactions"}, tables)
}
