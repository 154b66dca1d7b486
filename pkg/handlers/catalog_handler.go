package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/services"
)

// CatalogHandler handles the cascading introspection endpoints behind the
// connection, schema, table and column pickers.
type CatalogHandler struct {
	catalogService services.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the catalog handler's routes on the given mux.
func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/connections/{id}/schemas"

	mux.HandleFunc("GET "+base, h.ListSchemas)
	mux.HandleFunc("GET "+base+"/{schema}/tables", h.ListTables)
	mux.HandleFunc("GET "+base+"/{schema}/tables/{table}/metadata", h.TableMetadata)
	mux.HandleFunc("GET "+base+"/{schema}/tables/{table}/columns-with-types", h.ColumnsWithTypes)
}

// ListSchemas handles GET /api/connections/{id}/schemas
func (h *CatalogHandler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	schemas, err := h.catalogService.ListSchemas(r.Context(), id)
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to fetch schemas")
		return
	}

	if schemas == nil {
		schemas = []string{}
	}

	if err := WriteJSON(w, http.StatusOK, schemas); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListTables handles GET /api/connections/{id}/schemas/{schema}/tables
func (h *CatalogHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	tables, err := h.catalogService.ListTables(r.Context(), id, r.PathValue("schema"))
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to fetch tables")
		return
	}

	if tables == nil {
		tables = []string{}
	}

	if err := WriteJSON(w, http.StatusOK, tables); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// TableMetadata handles GET /api/connections/{id}/schemas/{schema}/tables/{table}/metadata
func (h *CatalogHandler) TableMetadata(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	columns, err := h.catalogService.TableMetadata(r.Context(), id, r.PathValue("schema"), r.PathValue("table"))
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to fetch table metadata")
		return
	}

	if columns == nil {
		columns = []catalog.ColumnMetadata{}
	}

	if err := WriteJSON(w, http.StatusOK, columns); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ColumnsWithTypes handles GET /api/connections/{id}/schemas/{schema}/tables/{table}/columns-with-types
func (h *CatalogHandler) ColumnsWithTypes(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	columns, err := h.catalogService.ColumnsWithTypes(r.Context(), id,
		r.PathValue("schema"), r.PathValue("table"), r.URL.Query().Get("filter"))
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to fetch columns")
		return
	}

	if err := WriteJSON(w, http.StatusOK, columns); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
