package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/services"
)

// DictionaryHandler handles data-dictionary HTTP requests.
type DictionaryHandler struct {
	dictionaryService services.DictionaryService
	logger            *zap.Logger
}

// NewDictionaryHandler creates a new dictionary handler.
func NewDictionaryHandler(dictionaryService services.DictionaryService, logger *zap.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		dictionaryService: dictionaryService,
		logger:            logger,
	}
}

// RegisterRoutes registers the dictionary handler's routes on the given mux.
func (h *DictionaryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dictionary", h.ListEntries)
	mux.HandleFunc("POST /api/dictionary", h.CreateEntry)
	mux.HandleFunc("POST /api/dictionary/bulk", h.BulkImport)
	mux.HandleFunc("GET /api/dictionary/{id}", h.GetEntry)
	mux.HandleFunc("PUT /api/dictionary/{id}", h.UpdateEntry)
	mux.HandleFunc("DELETE /api/dictionary/{id}", h.DeleteEntry)
}

type dictionaryEntryRequest struct {
	ConfigKey      *int64 `json:"configKey"`
	TableName      string `json:"tableName" validate:"required"`
	AttributeName  string `json:"attributeName" validate:"required"`
	DataType       string `json:"dataType" validate:"required"`
	Length         *int   `json:"length"`
	Precision      *int   `json:"precision"`
	Scale          *int   `json:"scale"`
	PrimaryKeyFlag string `json:"primaryKeyFlag" validate:"omitempty,oneof=Y N"`
	ForeignKeyFlag string `json:"foreignKeyFlag" validate:"omitempty,oneof=Y N"`
	NullableFlag   string `json:"nullableFlag" validate:"omitempty,oneof=Y N"`
	Description    string `json:"description"`
	ActiveFlag     string `json:"activeFlag" validate:"omitempty,oneof=Y N"`
}

func (req *dictionaryEntryRequest) toModel() *models.DictionaryEntry {
	return &models.DictionaryEntry{
		ConfigKey:      req.ConfigKey,
		TableName:      req.TableName,
		AttributeName:  req.AttributeName,
		DataType:       req.DataType,
		Length:         req.Length,
		Precision:      req.Precision,
		Scale:          req.Scale,
		PrimaryKeyFlag: req.PrimaryKeyFlag,
		ForeignKeyFlag: req.ForeignKeyFlag,
		NullableFlag:   req.NullableFlag,
		Description:    req.Description,
		ActiveFlag:     req.ActiveFlag,
	}
}

// bulkColumnRequest mirrors the table-metadata response shape so the UI can
// feed introspected columns straight into a bulk import.
type bulkColumnRequest struct {
	Name         string `json:"name" validate:"required"`
	DataType     string `json:"dataType" validate:"required"`
	Length       *int   `json:"length"`
	Precision    *int   `json:"precision"`
	Scale        *int   `json:"scale"`
	IsPrimaryKey bool   `json:"isPrimaryKey"`
	IsForeignKey bool   `json:"isForeignKey"`
	IsNotNull    bool   `json:"isNotNull"`
	Description  string `json:"description"`
}

type bulkImportRequest struct {
	ConfigKey *int64              `json:"configKey"`
	TableName string              `json:"tableName" validate:"required"`
	Columns   []bulkColumnRequest `json:"columns" validate:"required,min=1,dive"`
}

// ListEntries handles GET /api/dictionary
func (h *DictionaryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	var filters models.DictionaryFilters
	filters.TableName = r.URL.Query().Get("tableName")

	if raw := r.URL.Query().Get("configKey"); raw != "" {
		configKey, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "Invalid configKey format"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		filters.ConfigKey = &configKey
	}

	entries, err := h.dictionaryService.List(r.Context(), filters)
	if err != nil {
		failRequest(w, h.logger, err, "Dictionary entry not found", "Failed to fetch dictionary entries")
		return
	}

	if entries == nil {
		entries = make([]*models.DictionaryEntry, 0)
	}

	if err := WriteJSON(w, http.StatusOK, entries); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateEntry handles POST /api/dictionary
func (h *DictionaryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req dictionaryEntryRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	created, err := h.dictionaryService.Create(r.Context(), req.toModel())
	if err != nil {
		failRequest(w, h.logger, err, "Dictionary entry not found", "Failed to create dictionary entry")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// BulkImport handles POST /api/dictionary/bulk
func (h *DictionaryHandler) BulkImport(w http.ResponseWriter, r *http.Request) {
	var req bulkImportRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	columns := make([]services.BulkColumn, len(req.Columns))
	for i, col := range req.Columns {
		columns[i] = services.BulkColumn{
			Name:         col.Name,
			DataType:     col.DataType,
			Length:       col.Length,
			Precision:    col.Precision,
			Scale:        col.Scale,
			IsPrimaryKey: col.IsPrimaryKey,
			IsForeignKey: col.IsForeignKey,
			IsNotNull:    col.IsNotNull,
			Description:  col.Description,
		}
	}

	entries, err := h.dictionaryService.BulkImport(r.Context(), req.ConfigKey, req.TableName, columns)
	if err != nil {
		failRequest(w, h.logger, err, "Dictionary entry not found", "Failed to import dictionary entries")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, entries); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetEntry handles GET /api/dictionary/{id}
func (h *DictionaryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	entry, err := h.dictionaryService.Get(r.Context(), id)
	if err != nil {
		failRequest(w, h.logger, err, "Dictionary entry not found", "Failed to fetch dictionary entry")
		return
	}

	if err := WriteJSON(w, http.StatusOK, entry); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateEntry handles PUT /api/dictionary/{id}
func (h *DictionaryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req dictionaryEntryRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	entry := req.toModel()
	entry.ID = id

	updated, err := h.dictionaryService.Update(r.Context(), entry)
	if err != nil {
		failRequest(w, h.logger, err, "Dictionary entry not found", "Failed to update dictionary entry")
		return
	}

	if err := WriteJSON(w, http.StatusOK, updated); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteEntry handles DELETE /api/dictionary/{id}
func (h *DictionaryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.dictionaryService.Delete(r.Context(), id); err != nil {
		failRequest(w, h.logger, err, "Dictionary entry not found", "Failed to delete dictionary entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
