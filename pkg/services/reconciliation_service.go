package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/repositories"
)

// ReconciliationService manages reconciliation configurations.
type ReconciliationService interface {
	Create(ctx context.Context, recon *models.Reconciliation) (*models.Reconciliation, error)
	Get(ctx context.Context, id int64) (*models.Reconciliation, error)
	List(ctx context.Context, filters models.ReconciliationFilters) ([]*models.Reconciliation, error)
	Update(ctx context.Context, recon *models.Reconciliation) (*models.Reconciliation, error)
	Delete(ctx context.Context, id int64) error
}

type reconciliationService struct {
	repo   repositories.ReconciliationRepository
	logger *zap.Logger
}

// NewReconciliationService creates a ReconciliationService.
func NewReconciliationService(repo repositories.ReconciliationRepository, logger *zap.Logger) ReconciliationService {
	return &reconciliationService{
		repo:   repo,
		logger: logger.Named("reconciliation-service"),
	}
}

func (s *reconciliationService) Create(ctx context.Context, recon *models.Reconciliation) (*models.Reconciliation, error) {
	if err := validateReconciliation(recon); err != nil {
		return nil, err
	}

	normalizeReconciliation(recon)

	if err := s.repo.Create(ctx, recon); err != nil {
		s.logger.Error("Failed to create reconciliation",
			zap.String("name", recon.ReconName),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Created reconciliation",
		zap.Int64("id", recon.ID),
		zap.String("type", recon.ReconType))

	return recon, nil
}

func (s *reconciliationService) Get(ctx context.Context, id int64) (*models.Reconciliation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reconciliationService) List(ctx context.Context, filters models.ReconciliationFilters) ([]*models.Reconciliation, error) {
	return s.repo.List(ctx, filters)
}

func (s *reconciliationService) Update(ctx context.Context, recon *models.Reconciliation) (*models.Reconciliation, error) {
	if err := validateReconciliation(recon); err != nil {
		return nil, err
	}

	normalizeReconciliation(recon)

	if err := s.repo.Update(ctx, recon); err != nil {
		s.logger.Error("Failed to update reconciliation",
			zap.Int64("id", recon.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Updated reconciliation", zap.Int64("id", recon.ID))

	return s.repo.GetByID(ctx, recon.ID)
}

func (s *reconciliationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted reconciliation", zap.Int64("id", id))
	return nil
}

func validateReconciliation(recon *models.Reconciliation) error {
	if recon.ReconName == "" {
		return fmt.Errorf("recon name is required")
	}
	switch recon.ReconType {
	case models.ReconTypeCount, models.ReconTypeSum, models.ReconTypeAmount, models.ReconTypeData:
	case "":
		return fmt.Errorf("recon type is required")
	default:
		return fmt.Errorf("invalid recon type: %s", recon.ReconType)
	}
	if recon.ThresholdPercentage < 0 || recon.ThresholdPercentage > 100 {
		return fmt.Errorf("threshold percentage must be between 0 and 100")
	}
	return nil
}

// normalizeReconciliation clips the name and defaults the active flag. The
// source and target queries are user-authored SQL and stay verbatim.
func normalizeReconciliation(recon *models.Reconciliation) {
	recon.ReconName = models.Truncate(recon.ReconName, models.MaxNameLen)
	recon.ActiveFlag = models.DefaultFlag(recon.ActiveFlag)
}

// Ensure reconciliationService implements ReconciliationService at compile time.
var _ ReconciliationService = (*reconciliationService)(nil)
