package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/apperrors"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/database"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
)

// ConnectionRepository provides data access for stored database connections.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	GetByID(ctx context.Context, id int64) (*models.Connection, error)
	List(ctx context.Context, filters models.ConnectionFilters) ([]*models.Connection, error)
	Update(ctx context.Context, conn *models.Connection) error
	UpdateStatus(ctx context.Context, id int64, status string, lastSync *time.Time) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type connectionRepository struct {
	db *database.DB
}

// NewConnectionRepository creates a new ConnectionRepository.
func NewConnectionRepository(db *database.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

var _ ConnectionRepository = (*connectionRepository)(nil)

// ============================================================================
// CRUD Operations
// ============================================================================

func (r *connectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	now := time.Now()

	query := `
		INSERT INTO connections (
			connection_name, engine_type, host, port, username, password,
			database_name, status, active_flag, created_date, updated_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_date, updated_date`

	err := r.db.QueryRow(ctx, query,
		conn.ConnectionName,
		conn.EngineType,
		conn.Host,
		conn.Port,
		conn.Username,
		conn.Password,
		conn.DatabaseName,
		conn.Status,
		conn.ActiveFlag,
		now,
		now,
	).Scan(&conn.ID, &conn.CreatedDate, &conn.UpdatedDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create connection: %w", err)
	}

	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	query := `
		SELECT id, connection_name, engine_type, host, port, username, password,
		       database_name, status, last_sync, active_flag, created_date, updated_date
		FROM connections
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	conn, err := scanConnection(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return conn, nil
}

func (r *connectionRepository) List(ctx context.Context, filters models.ConnectionFilters) ([]*models.Connection, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filters.EngineType != "" {
		conditions = append(conditions, fmt.Sprintf("engine_type = $%d", argIdx))
		args = append(args, filters.EngineType)
		argIdx++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filters.Status)
		argIdx++
	}
	if filters.ActiveFlag != "" {
		conditions = append(conditions, fmt.Sprintf("active_flag = $%d", argIdx))
		args = append(args, filters.ActiveFlag)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, connection_name, engine_type, host, port, username, password,
		       database_name, status, last_sync, active_flag, created_date, updated_date
		FROM connections
		%s
		ORDER BY created_date DESC, id DESC`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	var conns []*models.Connection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, conn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connections: %w", err)
	}

	return conns, nil
}

// Update persists edits to the caller-settable fields. Status and last_sync
// move only through UpdateStatus.
func (r *connectionRepository) Update(ctx context.Context, conn *models.Connection) error {
	query := `
		UPDATE connections
		SET connection_name = $2, engine_type = $3, host = $4, port = $5,
		    username = $6, password = $7, database_name = $8, active_flag = $9,
		    updated_date = $10
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.QueryRow(ctx, query,
		conn.ID,
		conn.ConnectionName,
		conn.EngineType,
		conn.Host,
		conn.Port,
		conn.Username,
		conn.Password,
		conn.DatabaseName,
		conn.ActiveFlag,
		time.Now(),
	).Scan(&conn.UpdatedDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to update connection: %w", err)
	}

	return nil
}

// UpdateStatus records the outcome of a connectivity probe. A nil lastSync
// keeps the previous sync timestamp.
func (r *connectionRepository) UpdateStatus(ctx context.Context, id int64, status string, lastSync *time.Time) error {
	query := `
		UPDATE connections
		SET status = $2, last_sync = COALESCE($3, last_sync), updated_date = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, lastSync, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update connection status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM connections WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ============================================================================
// Dashboard Counts
// ============================================================================

func (r *connectionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM connections`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count connections: %w", err)
	}
	return count, nil
}

func (r *connectionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM connections WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count connections by status: %w", err)
	}
	return count, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func scanConnection(row pgx.Row) (*models.Connection, error) {
	var c models.Connection

	err := row.Scan(
		&c.ID,
		&c.ConnectionName,
		&c.EngineType,
		&c.Host,
		&c.Port,
		&c.Username,
		&c.Password,
		&c.DatabaseName,
		&c.Status,
		&c.LastSync,
		&c.ActiveFlag,
		&c.CreatedDate,
		&c.UpdatedDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan connection: %w", err)
	}

	return &c, nil
}
