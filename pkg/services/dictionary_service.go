package services

import (
	"context"
	"fmt"
	"unicode"

	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/repositories"
)

// BulkColumn is one introspected column in a bulk dictionary import,
// matching the shape the table-metadata endpoint returns. An empty
// description gets a generated one from the table and column names.
type BulkColumn struct {
	Name         string
	DataType     string
	Length       *int
	Precision    *int
	Scale        *int
	IsPrimaryKey bool
	IsForeignKey bool
	IsNotNull    bool
	Description  string
}

// DictionaryService manages data-dictionary entries.
type DictionaryService interface {
	Create(ctx context.Context, entry *models.DictionaryEntry) (*models.DictionaryEntry, error)
	Get(ctx context.Context, id int64) (*models.DictionaryEntry, error)
	List(ctx context.Context, filters models.DictionaryFilters) ([]*models.DictionaryEntry, error)
	Update(ctx context.Context, entry *models.DictionaryEntry) (*models.DictionaryEntry, error)
	Delete(ctx context.Context, id int64) error

	// BulkImport turns introspected column metadata into dictionary rows in
	// one transaction. Boolean key/null flags become Y/N text.
	BulkImport(ctx context.Context, configKey *int64, tableName string, columns []BulkColumn) ([]*models.DictionaryEntry, error)
}

type dictionaryService struct {
	repo   repositories.DictionaryRepository
	logger *zap.Logger
}

// NewDictionaryService creates a DictionaryService.
func NewDictionaryService(repo repositories.DictionaryRepository, logger *zap.Logger) DictionaryService {
	return &dictionaryService{
		repo:   repo,
		logger: logger.Named("dictionary-service"),
	}
}

// ============================================================================
// CRUD Operations
// ============================================================================

func (s *dictionaryService) Create(ctx context.Context, entry *models.DictionaryEntry) (*models.DictionaryEntry, error) {
	if err := validateDictionaryEntry(entry); err != nil {
		return nil, err
	}

	normalizeDictionaryEntry(entry)

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to create dictionary entry",
			zap.String("table", entry.TableName),
			zap.String("attribute", entry.AttributeName),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Created dictionary entry",
		zap.Int64("id", entry.ID),
		zap.String("table", entry.TableName))

	return entry, nil
}

func (s *dictionaryService) Get(ctx context.Context, id int64) (*models.DictionaryEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *dictionaryService) List(ctx context.Context, filters models.DictionaryFilters) ([]*models.DictionaryEntry, error) {
	return s.repo.List(ctx, filters)
}

func (s *dictionaryService) Update(ctx context.Context, entry *models.DictionaryEntry) (*models.DictionaryEntry, error) {
	if err := validateDictionaryEntry(entry); err != nil {
		return nil, err
	}

	normalizeDictionaryEntry(entry)

	if err := s.repo.Update(ctx, entry); err != nil {
		s.logger.Error("Failed to update dictionary entry",
			zap.Int64("id", entry.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Updated dictionary entry", zap.Int64("id", entry.ID))

	return s.repo.GetByID(ctx, entry.ID)
}

func (s *dictionaryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted dictionary entry", zap.Int64("id", id))
	return nil
}

// ============================================================================
// Bulk Import
// ============================================================================

func (s *dictionaryService) BulkImport(ctx context.Context, configKey *int64, tableName string, columns []BulkColumn) ([]*models.DictionaryEntry, error) {
	if tableName == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}

	entries := make([]*models.DictionaryEntry, 0, len(columns))
	for _, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column name is required")
		}

		description := col.Description
		if description == "" {
			description = describeColumn(tableName, col.Name)
		}

		entry := &models.DictionaryEntry{
			ConfigKey:      configKey,
			TableName:      tableName,
			AttributeName:  col.Name,
			DataType:       col.DataType,
			Length:         col.Length,
			Precision:      col.Precision,
			Scale:          col.Scale,
			PrimaryKeyFlag: models.FlagFromBool(col.IsPrimaryKey),
			ForeignKeyFlag: models.FlagFromBool(col.IsForeignKey),
			NullableFlag:   models.FlagFromBool(!col.IsNotNull),
			Description:    description,
			ActiveFlag:     models.FlagYes,
		}
		normalizeDictionaryEntry(entry)
		entries = append(entries, entry)
	}

	if err := s.repo.CreateBulk(ctx, entries); err != nil {
		s.logger.Error("Failed to import dictionary entries",
			zap.String("table", tableName),
			zap.Int("count", len(entries)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Imported dictionary entries",
		zap.String("table", tableName),
		zap.Int("count", len(entries)))

	return entries, nil
}

// describeColumn builds a fallback description like "Customer email" from
// the singularized table name and the column name.
func describeColumn(tableName, columnName string) string {
	entity := inflection.Singular(tableName)
	if entity == "" {
		return columnName
	}
	runes := []rune(entity)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + " " + columnName
}

func validateDictionaryEntry(entry *models.DictionaryEntry) error {
	if entry.TableName == "" {
		return fmt.Errorf("table name is required")
	}
	if entry.AttributeName == "" {
		return fmt.Errorf("attribute name is required")
	}
	if entry.DataType == "" {
		return fmt.Errorf("data type is required")
	}
	return nil
}

// normalizeDictionaryEntry clips string fields to their column widths and
// fills flag defaults: key flags default N, nullable and active default Y.
func normalizeDictionaryEntry(entry *models.DictionaryEntry) {
	entry.TableName = models.Truncate(entry.TableName, models.MaxNameLen)
	entry.AttributeName = models.Truncate(entry.AttributeName, models.MaxNameLen)
	entry.DataType = models.Truncate(entry.DataType, models.MaxDataTypeLen)
	entry.Description = models.Truncate(entry.Description, models.MaxDescriptionLen)

	if entry.PrimaryKeyFlag == "" {
		entry.PrimaryKeyFlag = models.FlagNo
	}
	if entry.ForeignKeyFlag == "" {
		entry.ForeignKeyFlag = models.FlagNo
	}
	entry.NullableFlag = models.DefaultFlag(entry.NullableFlag)
	entry.ActiveFlag = models.DefaultFlag(entry.ActiveFlag)
}

// Ensure dictionaryService implements DictionaryService at compile time.
var _ DictionaryService = (*dictionaryService)(nil)
