package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/repositories"
)

// QualityService manages data-quality check configurations.
type QualityService interface {
	Create(ctx context.Context, check *models.QualityCheck) (*models.QualityCheck, error)
	Get(ctx context.Context, id int64) (*models.QualityCheck, error)
	List(ctx context.Context, filters models.QualityFilters) ([]*models.QualityCheck, error)
	Update(ctx context.Context, check *models.QualityCheck) (*models.QualityCheck, error)
	Delete(ctx context.Context, id int64) error
}

type qualityService struct {
	repo   repositories.QualityRepository
	logger *zap.Logger
}

// NewQualityService creates a QualityService.
func NewQualityService(repo repositories.QualityRepository, logger *zap.Logger) QualityService {
	return &qualityService{
		repo:   repo,
		logger: logger.Named("quality-service"),
	}
}

func (s *qualityService) Create(ctx context.Context, check *models.QualityCheck) (*models.QualityCheck, error) {
	if err := validateQualityCheck(check); err != nil {
		return nil, err
	}

	normalizeQualityCheck(check)

	if err := s.repo.Create(ctx, check); err != nil {
		s.logger.Error("Failed to create quality check",
			zap.String("table", check.TableName),
			zap.String("attribute", check.AttributeName),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Created quality check",
		zap.Int64("id", check.ID),
		zap.String("type", check.ValidationType))

	return check, nil
}

func (s *qualityService) Get(ctx context.Context, id int64) (*models.QualityCheck, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *qualityService) List(ctx context.Context, filters models.QualityFilters) ([]*models.QualityCheck, error) {
	return s.repo.List(ctx, filters)
}

func (s *qualityService) Update(ctx context.Context, check *models.QualityCheck) (*models.QualityCheck, error) {
	if err := validateQualityCheck(check); err != nil {
		return nil, err
	}

	normalizeQualityCheck(check)

	if err := s.repo.Update(ctx, check); err != nil {
		s.logger.Error("Failed to update quality check",
			zap.Int64("id", check.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Updated quality check", zap.Int64("id", check.ID))

	return s.repo.GetByID(ctx, check.ID)
}

func (s *qualityService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted quality check", zap.Int64("id", id))
	return nil
}

func validateQualityCheck(check *models.QualityCheck) error {
	if check.TableName == "" {
		return fmt.Errorf("table name is required")
	}
	if check.AttributeName == "" {
		return fmt.Errorf("attribute name is required")
	}
	if check.ValidationType == "" {
		return fmt.Errorf("validation type is required")
	}
	if check.ThresholdPercentage < 0 || check.ThresholdPercentage > 100 {
		return fmt.Errorf("threshold percentage must be between 0 and 100")
	}
	return nil
}

// normalizeQualityCheck clips string fields to their column widths.
func normalizeQualityCheck(check *models.QualityCheck) {
	check.TableName = models.Truncate(check.TableName, models.MaxNameLen)
	check.AttributeName = models.Truncate(check.AttributeName, models.MaxNameLen)
	check.ValidationType = models.Truncate(check.ValidationType, models.MaxTypeLen)
	if check.ReferenceTable != nil {
		clipped := models.Truncate(*check.ReferenceTable, models.MaxNameLen)
		check.ReferenceTable = &clipped
	}
	if check.DefaultValue != nil {
		clipped := models.Truncate(*check.DefaultValue, models.MaxNameLen)
		check.DefaultValue = &clipped
	}
	check.ActiveFlag = models.DefaultFlag(check.ActiveFlag)
}

// Ensure qualityService implements QualityService at compile time.
var _ QualityService = (*qualityService)(nil)
