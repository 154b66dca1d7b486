package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/apperrors"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/database"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
)

// ReconciliationRepository provides data access for reconciliation configs.
type ReconciliationRepository interface {
	Create(ctx context.Context, recon *models.Reconciliation) error
	GetByID(ctx context.Context, id int64) (*models.Reconciliation, error)
	List(ctx context.Context, filters models.ReconciliationFilters) ([]*models.Reconciliation, error)
	Update(ctx context.Context, recon *models.Reconciliation) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type reconciliationRepository struct {
	db *database.DB
}

// NewReconciliationRepository creates a new ReconciliationRepository.
func NewReconciliationRepository(db *database.DB) ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

var _ ReconciliationRepository = (*reconciliationRepository)(nil)

// ============================================================================
// CRUD Operations
// ============================================================================

func (r *reconciliationRepository) Create(ctx context.Context, recon *models.Reconciliation) error {
	now := time.Now()

	query := `
		INSERT INTO reconciliation_configs (
			recon_name, source_connection_id, target_connection_id,
			source_query, target_query, recon_type, threshold_percentage,
			active_flag, created_date, updated_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_date, updated_date`

	err := r.db.QueryRow(ctx, query,
		recon.ReconName,
		recon.SourceConnectionID,
		recon.TargetConnectionID,
		recon.SourceQuery,
		recon.TargetQuery,
		recon.ReconType,
		recon.ThresholdPercentage,
		recon.ActiveFlag,
		now,
		now,
	).Scan(&recon.ID, &recon.CreatedDate, &recon.UpdatedDate)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrInvalidInput
		}
		return fmt.Errorf("failed to create reconciliation: %w", err)
	}

	return nil
}

func (r *reconciliationRepository) GetByID(ctx context.Context, id int64) (*models.Reconciliation, error) {
	query := `
		SELECT id, recon_name, source_connection_id, target_connection_id,
		       source_query, target_query, recon_type, threshold_percentage,
		       active_flag, created_date, updated_date
		FROM reconciliation_configs
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	recon, err := scanReconciliation(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return recon, nil
}

func (r *reconciliationRepository) List(ctx context.Context, filters models.ReconciliationFilters) ([]*models.Reconciliation, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filters.ReconType != "" {
		conditions = append(conditions, fmt.Sprintf("recon_type = $%d", argIdx))
		args = append(args, filters.ReconType)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, recon_name, source_connection_id, target_connection_id,
		       source_query, target_query, recon_type, threshold_percentage,
		       active_flag, created_date, updated_date
		FROM reconciliation_configs
		%s
		ORDER BY created_date DESC, id DESC`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	defer rows.Close()

	var recons []*models.Reconciliation
	for rows.Next() {
		recon, err := scanReconciliation(rows)
		if err != nil {
			return nil, err
		}
		recons = append(recons, recon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliations: %w", err)
	}

	return recons, nil
}

func (r *reconciliationRepository) Update(ctx context.Context, recon *models.Reconciliation) error {
	query := `
		UPDATE reconciliation_configs
		SET recon_name = $2, source_connection_id = $3,
		    target_connection_id = $4, source_query = $5, target_query = $6,
		    recon_type = $7, threshold_percentage = $8, active_flag = $9,
		    updated_date = $10
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.QueryRow(ctx, query,
		recon.ID,
		recon.ReconName,
		recon.SourceConnectionID,
		recon.TargetConnectionID,
		recon.SourceQuery,
		recon.TargetQuery,
		recon.ReconType,
		recon.ThresholdPercentage,
		recon.ActiveFlag,
		time.Now(),
	).Scan(&recon.UpdatedDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrInvalidInput
		}
		return fmt.Errorf("failed to update reconciliation: %w", err)
	}

	return nil
}

func (r *reconciliationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reconciliation_configs WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reconciliation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *reconciliationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reconciliation_configs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reconciliations: %w", err)
	}
	return count, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func scanReconciliation(row pgx.Row) (*models.Reconciliation, error) {
	var rec models.Reconciliation

	err := row.Scan(
		&rec.ID,
		&rec.ReconName,
		&rec.SourceConnectionID,
		&rec.TargetConnectionID,
		&rec.SourceQuery,
		&rec.TargetQuery,
		&rec.ReconType,
		&rec.ThresholdPercentage,
		&rec.ActiveFlag,
		&rec.CreatedDate,
		&rec.UpdatedDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan reconciliation: %w", err)
	}

	return &rec, nil
}
