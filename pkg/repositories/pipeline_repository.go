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

// PipelineRepository provides data access for pipeline configurations.
type PipelineRepository interface {
	Create(ctx context.Context, pipeline *models.Pipeline) error
	GetByID(ctx context.Context, id int64) (*models.Pipeline, error)
	List(ctx context.Context, filters models.PipelineFilters) ([]*models.Pipeline, error)
	Update(ctx context.Context, pipeline *models.Pipeline) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByLayer(ctx context.Context) (map[string]int64, error)
}

type pipelineRepository struct {
	db *database.DB
}

// NewPipelineRepository creates a new PipelineRepository.
func NewPipelineRepository(db *database.DB) PipelineRepository {
	return &pipelineRepository{db: db}
}

var _ PipelineRepository = (*pipelineRepository)(nil)

// ============================================================================
// CRUD Operations
// ============================================================================

func (r *pipelineRepository) Create(ctx context.Context, pipeline *models.Pipeline) error {
	now := time.Now()

	query := `
		INSERT INTO pipelines (
			pipeline_name, execution_layer, source_system, source_type,
			source_schema, source_table, target_system, target_type,
			target_schema, target_table, load_type, primary_key_column,
			active_flag, created_date, updated_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_date, updated_date`

	err := r.db.QueryRow(ctx, query,
		pipeline.PipelineName,
		pipeline.ExecutionLayer,
		pipeline.SourceSystem,
		pipeline.SourceType,
		pipeline.SourceSchema,
		pipeline.SourceTable,
		pipeline.TargetSystem,
		pipeline.TargetType,
		pipeline.TargetSchema,
		pipeline.TargetTable,
		pipeline.LoadType,
		pipeline.PrimaryKeyColumn,
		pipeline.ActiveFlag,
		now,
		now,
	).Scan(&pipeline.ID, &pipeline.CreatedDate, &pipeline.UpdatedDate)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	return nil
}

func (r *pipelineRepository) GetByID(ctx context.Context, id int64) (*models.Pipeline, error) {
	query := `
		SELECT id, pipeline_name, execution_layer, source_system, source_type,
		       source_schema, source_table, target_system, target_type,
		       target_schema, target_table, load_type, primary_key_column,
		       active_flag, created_date, updated_date
		FROM pipelines
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	pipeline, err := scanPipeline(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return pipeline, nil
}

func (r *pipelineRepository) List(ctx context.Context, filters models.PipelineFilters) ([]*models.Pipeline, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filters.ExecutionLayer != "" {
		conditions = append(conditions, fmt.Sprintf("execution_layer = $%d", argIdx))
		args = append(args, filters.ExecutionLayer)
		argIdx++
	}
	if filters.LoadType != "" {
		conditions = append(conditions, fmt.Sprintf("load_type = $%d", argIdx))
		args = append(args, filters.LoadType)
		argIdx++
	}
	if filters.ActiveFlag != "" {
		conditions = append(conditions, fmt.Sprintf("active_flag = $%d", argIdx))
		args = append(args, filters.ActiveFlag)
		argIdx++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("pipeline_name ILIKE $%d", argIdx))
		args = append(args, "%"+filters.Search+"%")
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, pipeline_name, execution_layer, source_system, source_type,
		       source_schema, source_table, target_system, target_type,
		       target_schema, target_table, load_type, primary_key_column,
		       active_flag, created_date, updated_date
		FROM pipelines
		%s
		ORDER BY created_date DESC, id DESC`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pipelines: %w", err)
	}
	defer rows.Close()

	var pipelines []*models.Pipeline
	for rows.Next() {
		pipeline, err := scanPipeline(rows)
		if err != nil {
			return nil, err
		}
		pipelines = append(pipelines, pipeline)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pipelines: %w", err)
	}

	return pipelines, nil
}

func (r *pipelineRepository) Update(ctx context.Context, pipeline *models.Pipeline) error {
	query := `
		UPDATE pipelines
		SET pipeline_name = $2, execution_layer = $3, source_system = $4,
		    source_type = $5, source_schema = $6, source_table = $7,
		    target_system = $8, target_type = $9, target_schema = $10,
		    target_table = $11, load_type = $12, primary_key_column = $13,
		    active_flag = $14, updated_date = $15
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.QueryRow(ctx, query,
		pipeline.ID,
		pipeline.PipelineName,
		pipeline.ExecutionLayer,
		pipeline.SourceSystem,
		pipeline.SourceType,
		pipeline.SourceSchema,
		pipeline.SourceTable,
		pipeline.TargetSystem,
		pipeline.TargetType,
		pipeline.TargetSchema,
		pipeline.TargetTable,
		pipeline.LoadType,
		pipeline.PrimaryKeyColumn,
		pipeline.ActiveFlag,
		time.Now(),
	).Scan(&pipeline.UpdatedDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update pipeline: %w", err)
	}

	return nil
}

func (r *pipelineRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM pipelines WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete pipeline: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ============================================================================
// Dashboard Counts
// ============================================================================

func (r *pipelineRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pipelines`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pipelines: %w", err)
	}
	return count, nil
}

func (r *pipelineRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pipelines WHERE active_flag = 'Y'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active pipelines: %w", err)
	}
	return count, nil
}

// CountByLayer returns pipeline totals keyed by execution layer. Layers with
// no pipelines are absent from the map.
func (r *pipelineRepository) CountByLayer(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT execution_layer, COUNT(*)
		FROM pipelines
		GROUP BY execution_layer`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count pipelines by layer: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var layer string
		var n int64
		if err := rows.Scan(&layer, &n); err != nil {
			return nil, fmt.Errorf("failed to scan layer count: %w", err)
		}
		counts[layer] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating layer counts: %w", err)
	}

	return counts, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func scanPipeline(row pgx.Row) (*models.Pipeline, error) {
	var p models.Pipeline

	err := row.Scan(
		&p.ID,
		&p.PipelineName,
		&p.ExecutionLayer,
		&p.SourceSystem,
		&p.SourceType,
		&p.SourceSchema,
		&p.SourceTable,
		&p.TargetSystem,
		&p.TargetType,
		&p.TargetSchema,
		&p.TargetTable,
		&p.LoadType,
		&p.PrimaryKeyColumn,
		&p.ActiveFlag,
		&p.CreatedDate,
		&p.UpdatedDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan pipeline: %w", err)
	}

	return &p, nil
}
