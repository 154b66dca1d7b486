package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/repositories"
)

// ConnectionService manages stored database connections. Every read path
// returns redacted copies; the stored password never leaves the service.
type ConnectionService interface {
	Create(ctx context.Context, conn *models.Connection) (*models.Connection, error)
	Get(ctx context.Context, id int64) (*models.Connection, error)
	List(ctx context.Context, filters models.ConnectionFilters) ([]*models.Connection, error)
	Update(ctx context.Context, conn *models.Connection) (*models.Connection, error)
	Delete(ctx context.Context, id int64) error

	// TestConnection probes the stored connection and records the outcome:
	// Active with a fresh lastSync on success, Failed on failure. A failed
	// probe keeps the previous lastSync and returns the probe error.
	TestConnection(ctx context.Context, id int64) (*models.Connection, error)
}

type connectionService struct {
	repo    repositories.ConnectionRepository
	factory catalog.ReaderFactory
	timeout time.Duration
	logger  *zap.Logger
}

// NewConnectionService creates a ConnectionService. The timeout bounds the
// connectivity probe, which runs on its own clock rather than the request's.
func NewConnectionService(repo repositories.ConnectionRepository, factory catalog.ReaderFactory, timeout time.Duration, logger *zap.Logger) ConnectionService {
	return &connectionService{
		repo:    repo,
		factory: factory,
		timeout: timeout,
		logger:  logger.Named("connection-service"),
	}
}

// ============================================================================
// CRUD Operations
// ============================================================================

// Create stores a new connection. Status always starts Pending; only
// TestConnection moves it afterwards.
func (s *connectionService) Create(ctx context.Context, conn *models.Connection) (*models.Connection, error) {
	if conn.ConnectionName == "" {
		return nil, fmt.Errorf("connection name is required")
	}
	if conn.EngineType == "" {
		return nil, fmt.Errorf("engine type is required")
	}

	normalizeConnection(conn)
	conn.Status = models.ConnectionStatusPending
	conn.LastSync = nil
	conn.ActiveFlag = models.DefaultFlag(conn.ActiveFlag)

	if err := s.repo.Create(ctx, conn); err != nil {
		s.logger.Error("Failed to create connection",
			zap.String("name", conn.ConnectionName),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Created connection",
		zap.Int64("id", conn.ID),
		zap.String("engine", conn.EngineType))

	return conn.Redacted(), nil
}

func (s *connectionService) Get(ctx context.Context, id int64) (*models.Connection, error) {
	conn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return conn.Redacted(), nil
}

func (s *connectionService) List(ctx context.Context, filters models.ConnectionFilters) ([]*models.Connection, error) {
	conns, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	redacted := make([]*models.Connection, len(conns))
	for i, conn := range conns {
		redacted[i] = conn.Redacted()
	}
	return redacted, nil
}

// Update edits a connection's fields. An empty password keeps the stored
// credential, so a redacted read can round-trip through an edit form without
// wiping it. Status and lastSync are never touched here.
func (s *connectionService) Update(ctx context.Context, conn *models.Connection) (*models.Connection, error) {
	if conn.ConnectionName == "" {
		return nil, fmt.Errorf("connection name is required")
	}
	if conn.EngineType == "" {
		return nil, fmt.Errorf("engine type is required")
	}

	if conn.Password == "" {
		current, err := s.repo.GetByID(ctx, conn.ID)
		if err != nil {
			return nil, err
		}
		conn.Password = current.Password
	}

	normalizeConnection(conn)
	if err := s.repo.Update(ctx, conn); err != nil {
		s.logger.Error("Failed to update connection",
			zap.Int64("id", conn.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Updated connection", zap.Int64("id", conn.ID))

	updated, err := s.repo.GetByID(ctx, conn.ID)
	if err != nil {
		return nil, err
	}
	return updated.Redacted(), nil
}

func (s *connectionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted connection", zap.Int64("id", id))
	return nil
}

// ============================================================================
// Connectivity Probe
// ============================================================================

func (s *connectionService) TestConnection(ctx context.Context, id int64) (*models.Connection, error) {
	conn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The probe runs within the catalog timeout regardless of how long the
	// caller is willing to wait.
	probeCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if probeErr := s.probe(probeCtx, conn); probeErr != nil {
		if err := s.repo.UpdateStatus(ctx, id, models.ConnectionStatusFailed, nil); err != nil {
			s.logger.Error("Failed to record probe failure",
				zap.Int64("id", id),
				zap.Error(err))
		}
		s.logger.Warn("Connection probe failed",
			zap.Int64("id", id),
			zap.String("engine", conn.EngineType),
			zap.Error(probeErr))
		return nil, probeErr
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, models.ConnectionStatusActive, &now); err != nil {
		return nil, err
	}

	s.logger.Info("Connection probe succeeded",
		zap.Int64("id", id),
		zap.String("engine", conn.EngineType))

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated.Redacted(), nil
}

func (s *connectionService) probe(ctx context.Context, conn *models.Connection) error {
	reader, err := s.factory.NewReader(ctx, descriptorFor(conn))
	if err != nil {
		return err
	}
	defer reader.Close()

	return reader.Ping(ctx)
}

// normalizeConnection clips string fields to their column widths.
func normalizeConnection(conn *models.Connection) {
	conn.ConnectionName = models.Truncate(conn.ConnectionName, models.MaxNameLen)
	conn.EngineType = models.Truncate(conn.EngineType, models.MaxTypeLen)
	conn.Host = models.Truncate(conn.Host, models.MaxNameLen)
	conn.Username = models.Truncate(conn.Username, models.MaxNameLen)
	conn.Password = models.Truncate(conn.Password, models.MaxNameLen)
	conn.DatabaseName = models.Truncate(conn.DatabaseName, models.MaxNameLen)
}

// Ensure connectionService implements ConnectionService at compile time.
var _ ConnectionService = (*connectionService)(nil)
