package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/repositories"
)

// PipelineService manages pipeline configurations.
type PipelineService interface {
	Create(ctx context.Context, pipeline *models.Pipeline) (*models.Pipeline, error)
	Get(ctx context.Context, id int64) (*models.Pipeline, error)
	List(ctx context.Context, filters models.PipelineFilters) ([]*models.Pipeline, error)
	Update(ctx context.Context, pipeline *models.Pipeline) (*models.Pipeline, error)
	Delete(ctx context.Context, id int64) error
}

type pipelineService struct {
	repo   repositories.PipelineRepository
	logger *zap.Logger
}

// NewPipelineService creates a PipelineService.
func NewPipelineService(repo repositories.PipelineRepository, logger *zap.Logger) PipelineService {
	return &pipelineService{
		repo:   repo,
		logger: logger.Named("pipeline-service"),
	}
}

func (s *pipelineService) Create(ctx context.Context, pipeline *models.Pipeline) (*models.Pipeline, error) {
	if err := validatePipeline(pipeline); err != nil {
		return nil, err
	}

	normalizePipeline(pipeline)
	pipeline.ActiveFlag = models.DefaultFlag(pipeline.ActiveFlag)

	if err := s.repo.Create(ctx, pipeline); err != nil {
		s.logger.Error("Failed to create pipeline",
			zap.String("name", pipeline.PipelineName),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Created pipeline",
		zap.Int64("id", pipeline.ID),
		zap.String("layer", pipeline.ExecutionLayer))

	return pipeline, nil
}

func (s *pipelineService) Get(ctx context.Context, id int64) (*models.Pipeline, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *pipelineService) List(ctx context.Context, filters models.PipelineFilters) ([]*models.Pipeline, error) {
	return s.repo.List(ctx, filters)
}

func (s *pipelineService) Update(ctx context.Context, pipeline *models.Pipeline) (*models.Pipeline, error) {
	if err := validatePipeline(pipeline); err != nil {
		return nil, err
	}

	normalizePipeline(pipeline)
	pipeline.ActiveFlag = models.DefaultFlag(pipeline.ActiveFlag)

	if err := s.repo.Update(ctx, pipeline); err != nil {
		s.logger.Error("Failed to update pipeline",
			zap.Int64("id", pipeline.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Updated pipeline", zap.Int64("id", pipeline.ID))

	return s.repo.GetByID(ctx, pipeline.ID)
}

func (s *pipelineService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted pipeline", zap.Int64("id", id))
	return nil
}

func validatePipeline(pipeline *models.Pipeline) error {
	if pipeline.PipelineName == "" {
		return fmt.Errorf("pipeline name is required")
	}
	switch pipeline.ExecutionLayer {
	case models.LayerBronze, models.LayerSilver, models.LayerGold:
		return nil
	case "":
		return fmt.Errorf("execution layer is required")
	default:
		return fmt.Errorf("invalid execution layer: %s", pipeline.ExecutionLayer)
	}
}

// normalizePipeline clips string fields to their column widths.
func normalizePipeline(pipeline *models.Pipeline) {
	pipeline.PipelineName = models.Truncate(pipeline.PipelineName, models.MaxNameLen)
	pipeline.SourceSystem = models.Truncate(pipeline.SourceSystem, models.MaxNameLen)
	pipeline.SourceType = models.Truncate(pipeline.SourceType, models.MaxTypeLen)
	pipeline.SourceSchema = models.Truncate(pipeline.SourceSchema, models.MaxNameLen)
	pipeline.SourceTable = models.Truncate(pipeline.SourceTable, models.MaxNameLen)
	pipeline.TargetSystem = models.Truncate(pipeline.TargetSystem, models.MaxNameLen)
	pipeline.TargetType = models.Truncate(pipeline.TargetType, models.MaxTypeLen)
	pipeline.TargetSchema = models.Truncate(pipeline.TargetSchema, models.MaxNameLen)
	pipeline.TargetTable = models.Truncate(pipeline.TargetTable, models.MaxNameLen)
	pipeline.LoadType = models.Truncate(pipeline.LoadType, models.MaxTypeLen)
	pipeline.PrimaryKeyColumn = models.Truncate(pipeline.PrimaryKeyColumn, models.MaxNameLen)
}

// Ensure pipelineService implements PipelineService at compile time.
var _ PipelineService = (*pipelineService)(nil)
