package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/repositories"
)

// CatalogService resolves a stored connection and introspects the external
// database behind it. Each call opens one transient reader and closes it
// before returning; nothing is shared between calls.
type CatalogService interface {
	ListSchemas(ctx context.Context, connectionID int64) ([]string, error)
	ListTables(ctx context.Context, connectionID int64, schema string) ([]string, error)
	TableMetadata(ctx context.Context, connectionID int64, schema, table string) ([]catalog.ColumnMetadata, error)

	// ColumnsWithTypes returns name+type pairs for a table. A non-empty
	// typeFilter keeps only columns whose declared type contains it,
	// compared case-insensitively, so "date" matches date, datetime and
	// timestamptz columns but not varchar.
	ColumnsWithTypes(ctx context.Context, connectionID int64, schema, table, typeFilter string) ([]catalog.ColumnWithType, error)
}

type catalogService struct {
	connections repositories.ConnectionRepository
	factory     catalog.ReaderFactory
	timeout     time.Duration
	logger      *zap.Logger
}

// NewCatalogService creates a CatalogService. Every call is bounded by the
// timeout on a fresh clock, detached from the caller's request context.
func NewCatalogService(connections repositories.ConnectionRepository, factory catalog.ReaderFactory, timeout time.Duration, logger *zap.Logger) CatalogService {
	return &catalogService{
		connections: connections,
		factory:     factory,
		timeout:     timeout,
		logger:      logger.Named("catalog-service"),
	}
}

func (s *catalogService) ListSchemas(ctx context.Context, connectionID int64) ([]string, error) {
	conn, err := s.connections.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	readCtx, cancel := s.readContext()
	defer cancel()

	reader, err := s.openReader(readCtx, conn)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	schemas, err := reader.ListSchemas(readCtx)
	if err != nil {
		s.logger.Warn("Failed to list schemas",
			zap.Int64("connectionId", connectionID),
			zap.String("engine", conn.EngineType),
			zap.Error(err))
		return nil, err
	}
	return schemas, nil
}

func (s *catalogService) ListTables(ctx context.Context, connectionID int64, schema string) ([]string, error) {
	conn, err := s.connections.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	readCtx, cancel := s.readContext()
	defer cancel()

	reader, err := s.openReader(readCtx, conn)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	tables, err := reader.ListTables(readCtx, schema)
	if err != nil {
		s.logger.Warn("Failed to list tables",
			zap.Int64("connectionId", connectionID),
			zap.String("schema", schema),
			zap.Error(err))
		return nil, err
	}
	return tables, nil
}

func (s *catalogService) TableMetadata(ctx context.Context, connectionID int64, schema, table string) ([]catalog.ColumnMetadata, error) {
	conn, err := s.connections.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	readCtx, cancel := s.readContext()
	defer cancel()

	reader, err := s.openReader(readCtx, conn)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	columns, err := reader.DescribeTable(readCtx, schema, table)
	if err != nil {
		s.logger.Warn("Failed to describe table",
			zap.Int64("connectionId", connectionID),
			zap.String("schema", schema),
			zap.String("table", table),
			zap.Error(err))
		return nil, err
	}
	return columns, nil
}

func (s *catalogService) ColumnsWithTypes(ctx context.Context, connectionID int64, schema, table, typeFilter string) ([]catalog.ColumnWithType, error) {
	columns, err := s.TableMetadata(ctx, connectionID, schema, table)
	if err != nil {
		return nil, err
	}

	filter := strings.ToLower(typeFilter)
	result := make([]catalog.ColumnWithType, 0, len(columns))
	for _, col := range columns {
		if filter != "" && !strings.Contains(strings.ToLower(col.DataType), filter) {
			continue
		}
		result = append(result, catalog.ColumnWithType{Name: col.Name, DataType: col.DataType})
	}
	return result, nil
}

// readContext returns a fresh context bounded by the catalog timeout. The
// request context is deliberately not the parent: a disconnected client
// does not cancel an in-flight introspection call.
func (s *catalogService) readContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *catalogService) openReader(ctx context.Context, conn *models.Connection) (catalog.Reader, error) {
	reader, err := s.factory.NewReader(ctx, descriptorFor(conn))
	if err != nil {
		s.logger.Warn("Failed to open catalog reader",
			zap.Int64("connectionId", conn.ID),
			zap.String("engine", conn.EngineType),
			zap.Error(err))
		return nil, err
	}
	return reader, nil
}

// descriptorFor maps a stored connection row onto a catalog descriptor.
func descriptorFor(conn *models.Connection) catalog.Descriptor {
	return catalog.Descriptor{
		Engine:   conn.EngineType,
		Host:     conn.Host,
		Port:     conn.Port,
		Username: conn.Username,
		Password: conn.Password,
		Database: conn.DatabaseName,
	}
}

// Ensure catalogService implements CatalogService at compile time.
var _ CatalogService = (*catalogService)(nil)
