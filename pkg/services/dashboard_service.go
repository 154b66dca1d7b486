package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/repositories"
)

// DashboardService aggregates entity counts for the overview page.
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	connections     repositories.ConnectionRepository
	pipelines       repositories.PipelineRepository
	dictionary      repositories.DictionaryRepository
	reconciliations repositories.ReconciliationRepository
	quality         repositories.QualityRepository
	logger          *zap.Logger
}

// NewDashboardService creates a DashboardService over the entity repositories.
func NewDashboardService(
	connections repositories.ConnectionRepository,
	pipelines repositories.PipelineRepository,
	dictionary repositories.DictionaryRepository,
	reconciliations repositories.ReconciliationRepository,
	quality repositories.QualityRepository,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		connections:     connections,
		pipelines:       pipelines,
		dictionary:      dictionary,
		reconciliations: reconciliations,
		quality:         quality,
		logger:          logger.Named("dashboard-service"),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	var err error
	if stats.Connections, err = s.connections.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count connections: %w", err)
	}
	if stats.ActiveConnections, err = s.connections.CountByStatus(ctx, models.ConnectionStatusActive); err != nil {
		return nil, fmt.Errorf("failed to count active connections: %w", err)
	}
	if stats.Pipelines, err = s.pipelines.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count pipelines: %w", err)
	}
	if stats.ActivePipelines, err = s.pipelines.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count active pipelines: %w", err)
	}
	if stats.DictionaryEntries, err = s.dictionary.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count dictionary entries: %w", err)
	}
	if stats.Reconciliations, err = s.reconciliations.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count reconciliations: %w", err)
	}
	if stats.QualityChecks, err = s.quality.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count quality checks: %w", err)
	}

	byLayer, err := s.pipelines.CountByLayer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pipelines by layer: %w", err)
	}

	// The three medallion layers are always present, zero-filled when empty.
	stats.PipelinesByLayer = map[string]int64{
		models.LayerBronze: 0,
		models.LayerSilver: 0,
		models.LayerGold:   0,
	}
	for layer, count := range byLayer {
		stats.PipelinesByLayer[layer] = count
	}

	s.logger.Debug("Computed dashboard stats",
		zap.Int64("connections", stats.Connections),
		zap.Int64("pipelines", stats.Pipelines))

	return stats, nil
}

// Ensure dashboardService implements DashboardService at compile time.
var _ DashboardService = (*dashboardService)(nil)
