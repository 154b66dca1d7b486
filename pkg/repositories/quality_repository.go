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

// QualityRepository provides data access for data quality checks.
type QualityRepository interface {
	Create(ctx context.Context, check *models.QualityCheck) error
	GetByID(ctx context.Context, id int64) (*models.QualityCheck, error)
	List(ctx context.Context, filters models.QualityFilters) ([]*models.QualityCheck, error)
	Update(ctx context.Context, check *models.QualityCheck) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type qualityRepository struct {
	db *database.DB
}

// NewQualityRepository creates a new QualityRepository.
func NewQualityRepository(db *database.DB) QualityRepository {
	return &qualityRepository{db: db}
}

var _ QualityRepository = (*qualityRepository)(nil)

// ============================================================================
// CRUD Operations
// ============================================================================

func (r *qualityRepository) Create(ctx context.Context, check *models.QualityCheck) error {
	now := time.Now()

	query := `
		INSERT INTO data_quality_configs (
			table_name, attribute_name, validation_type, reference_table,
			default_value, threshold_percentage, active_flag, created_date,
			updated_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_date, updated_date`

	err := r.db.QueryRow(ctx, query,
		check.TableName,
		check.AttributeName,
		check.ValidationType,
		check.ReferenceTable,
		check.DefaultValue,
		check.ThresholdPercentage,
		check.ActiveFlag,
		now,
		now,
	).Scan(&check.ID, &check.CreatedDate, &check.UpdatedDate)
	if err != nil {
		return fmt.Errorf("failed to create quality check: %w", err)
	}

	return nil
}

func (r *qualityRepository) GetByID(ctx context.Context, id int64) (*models.QualityCheck, error) {
	query := `
		SELECT id, table_name, attribute_name, validation_type,
		       reference_table, default_value, threshold_percentage,
		       active_flag, created_date, updated_date
		FROM data_quality_configs
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	check, err := scanQualityCheck(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return check, nil
}

func (r *qualityRepository) List(ctx context.Context, filters models.QualityFilters) ([]*models.QualityCheck, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filters.ValidationType != "" {
		conditions = append(conditions, fmt.Sprintf("validation_type = $%d", argIdx))
		args = append(args, filters.ValidationType)
		argIdx++
	}
	if filters.TableName != "" {
		conditions = append(conditions, fmt.Sprintf("table_name = $%d", argIdx))
		args = append(args, filters.TableName)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, table_name, attribute_name, validation_type,
		       reference_table, default_value, threshold_percentage,
		       active_flag, created_date, updated_date
		FROM data_quality_configs
		%s
		ORDER BY created_date DESC, id DESC`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quality checks: %w", err)
	}
	defer rows.Close()

	var checks []*models.QualityCheck
	for rows.Next() {
		check, err := scanQualityCheck(rows)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quality checks: %w", err)
	}

	return checks, nil
}

func (r *qualityRepository) Update(ctx context.Context, check *models.QualityCheck) error {
	query := `
		UPDATE data_quality_configs
		SET table_name = $2, attribute_name = $3, validation_type = $4,
		    reference_table = $5, default_value = $6,
		    threshold_percentage = $7, active_flag = $8, updated_date = $9
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.QueryRow(ctx, query,
		check.ID,
		check.TableName,
		check.AttributeName,
		check.ValidationType,
		check.ReferenceTable,
		check.DefaultValue,
		check.ThresholdPercentage,
		check.ActiveFlag,
		time.Now(),
	).Scan(&check.UpdatedDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update quality check: %w", err)
	}

	return nil
}

func (r *qualityRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM data_quality_configs WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete quality check: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *qualityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM data_quality_configs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quality checks: %w", err)
	}
	return count, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func scanQualityCheck(row pgx.Row) (*models.QualityCheck, error) {
	var q models.QualityCheck

	err := row.Scan(
		&q.ID,
		&q.TableName,
		&q.AttributeName,
		&q.ValidationType,
		&q.ReferenceTable,
		&q.DefaultValue,
		&q.ThresholdPercentage,
		&q.ActiveFlag,
		&q.CreatedDate,
		&q.UpdatedDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan quality check: %w", err)
	}

	return &q, nil
}
