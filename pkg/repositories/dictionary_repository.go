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

// DictionaryRepository provides data access for data dictionary entries.
type DictionaryRepository interface {
	Create(ctx context.Context, entry *models.DictionaryEntry) error
	// CreateBulk inserts every entry in one transaction; on any failure no
	// rows are kept.
	CreateBulk(ctx context.Context, entries []*models.DictionaryEntry) error
	GetByID(ctx context.Context, id int64) (*models.DictionaryEntry, error)
	List(ctx context.Context, filters models.DictionaryFilters) ([]*models.DictionaryEntry, error)
	Update(ctx context.Context, entry *models.DictionaryEntry) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type dictionaryRepository struct {
	db *database.DB
}

// NewDictionaryRepository creates a new DictionaryRepository.
func NewDictionaryRepository(db *database.DB) DictionaryRepository {
	return &dictionaryRepository{db: db}
}

var _ DictionaryRepository = (*dictionaryRepository)(nil)

// ============================================================================
// CRUD Operations
// ============================================================================

func (r *dictionaryRepository) Create(ctx context.Context, entry *models.DictionaryEntry) error {
	now := time.Now()

	query := `
		INSERT INTO data_dictionary (
			config_key, table_name, attribute_name, data_type, length,
			precision, scale, primary_key_flag, foreign_key_flag,
			nullable_flag, description, active_flag, created_date, updated_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_date, updated_date`

	err := r.db.QueryRow(ctx, query,
		entry.ConfigKey,
		entry.TableName,
		entry.AttributeName,
		entry.DataType,
		entry.Length,
		entry.Precision,
		entry.Scale,
		entry.PrimaryKeyFlag,
		entry.ForeignKeyFlag,
		entry.NullableFlag,
		entry.Description,
		entry.ActiveFlag,
		now,
		now,
	).Scan(&entry.ID, &entry.CreatedDate, &entry.UpdatedDate)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrInvalidInput
		}
		return fmt.Errorf("failed to create dictionary entry: %w", err)
	}

	return nil
}

func (r *dictionaryRepository) CreateBulk(ctx context.Context, entries []*models.DictionaryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	query := `
		INSERT INTO data_dictionary (
			config_key, table_name, attribute_name, data_type, length,
			precision, scale, primary_key_flag, foreign_key_flag,
			nullable_flag, description, active_flag, created_date, updated_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_date, updated_date`

	now := time.Now()
	for _, entry := range entries {
		err := tx.QueryRow(ctx, query,
			entry.ConfigKey,
			entry.TableName,
			entry.AttributeName,
			entry.DataType,
			entry.Length,
			entry.Precision,
			entry.Scale,
			entry.PrimaryKeyFlag,
			entry.ForeignKeyFlag,
			entry.NullableFlag,
			entry.Description,
			entry.ActiveFlag,
			now,
			now,
		).Scan(&entry.ID, &entry.CreatedDate, &entry.UpdatedDate)
		if err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.ErrInvalidInput
			}
			return fmt.Errorf("failed to create dictionary entry %s.%s: %w",
				entry.TableName, entry.AttributeName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *dictionaryRepository) GetByID(ctx context.Context, id int64) (*models.DictionaryEntry, error) {
	query := `
		SELECT id, config_key, table_name, attribute_name, data_type, length,
		       precision, scale, primary_key_flag, foreign_key_flag,
		       nullable_flag, description, active_flag, created_date, updated_date
		FROM data_dictionary
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	entry, err := scanDictionaryEntry(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return entry, nil
}

func (r *dictionaryRepository) List(ctx context.Context, filters models.DictionaryFilters) ([]*models.DictionaryEntry, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filters.ConfigKey != nil {
		conditions = append(conditions, fmt.Sprintf("config_key = $%d", argIdx))
		args = append(args, *filters.ConfigKey)
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
		SELECT id, config_key, table_name, attribute_name, data_type, length,
		       precision, scale, primary_key_flag, foreign_key_flag,
		       nullable_flag, description, active_flag, created_date, updated_date
		FROM data_dictionary
		%s
		ORDER BY created_date DESC, id DESC`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dictionary entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.DictionaryEntry
	for rows.Next() {
		entry, err := scanDictionaryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dictionary entries: %w", err)
	}

	return entries, nil
}

func (r *dictionaryRepository) Update(ctx context.Context, entry *models.DictionaryEntry) error {
	query := `
		UPDATE data_dictionary
		SET config_key = $2, table_name = $3, attribute_name = $4,
		    data_type = $5, length = $6, precision = $7, scale = $8,
		    primary_key_flag = $9, foreign_key_flag = $10, nullable_flag = $11,
		    description = $12, active_flag = $13, updated_date = $14
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.QueryRow(ctx, query,
		entry.ID,
		entry.ConfigKey,
		entry.TableName,
		entry.AttributeName,
		entry.DataType,
		entry.Length,
		entry.Precision,
		entry.Scale,
		entry.PrimaryKeyFlag,
		entry.ForeignKeyFlag,
		entry.NullableFlag,
		entry.Description,
		entry.ActiveFlag,
		time.Now(),
	).Scan(&entry.UpdatedDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrInvalidInput
		}
		return fmt.Errorf("failed to update dictionary entry: %w", err)
	}

	return nil
}

func (r *dictionaryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM data_dictionary WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete dictionary entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *dictionaryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM data_dictionary`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count dictionary entries: %w", err)
	}
	return count, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func scanDictionaryEntry(row pgx.Row) (*models.DictionaryEntry, error) {
	var e models.DictionaryEntry

	err := row.Scan(
		&e.ID,
		&e.ConfigKey,
		&e.TableName,
		&e.AttributeName,
		&e.DataType,
		&e.Length,
		&e.Precision,
		&e.Scale,
		&e.PrimaryKeyFlag,
		&e.ForeignKeyFlag,
		&e.NullableFlag,
		&e.Description,
		&e.ActiveFlag,
		&e.CreatedDate,
		&e.UpdatedDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan dictionary entry: %w", err)
	}

	return &e, nil
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation (error code 23503), raised when a row references a parent id
// that does not exist.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
