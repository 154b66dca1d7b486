package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/services"
)

// QualityHandler handles data-quality check HTTP requests.
type QualityHandler struct {
	qualityService services.QualityService
	logger         *zap.Logger
}

// NewQualityHandler creates a new quality handler.
func NewQualityHandler(qualityService services.QualityService, logger *zap.Logger) *QualityHandler {
	return &QualityHandler{
		qualityService: qualityService,
		logger:         logger,
	}
}

// RegisterRoutes registers the quality handler's routes on the given mux.
func (h *QualityHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/quality-checks", h.ListChecks)
	mux.HandleFunc("POST /api/quality-checks", h.CreateCheck)
	mux.HandleFunc("GET /api/quality-checks/{id}", h.GetCheck)
	mux.HandleFunc("PUT /api/quality-checks/{id}", h.UpdateCheck)
	mux.HandleFunc("DELETE /api/quality-checks/{id}", h.DeleteCheck)
}

type qualityCheckRequest struct {
	TableName           string  `json:"tableName" validate:"required"`
	AttributeName       string  `json:"attributeName" validate:"required"`
	ValidationType      string  `json:"validationType" validate:"required"`
	ReferenceTable      *string `json:"referenceTable"`
	DefaultValue        *string `json:"defaultValue"`
	ThresholdPercentage float64 `json:"thresholdPercentage" validate:"gte=0,lte=100"`
	ActiveFlag          string  `json:"activeFlag" validate:"omitempty,oneof=Y N"`
}

func (req *qualityCheckRequest) toModel() *models.QualityCheck {
	return &models.QualityCheck{
		TableName:           req.TableName,
		AttributeName:       req.AttributeName,
		ValidationType:      req.ValidationType,
		ReferenceTable:      req.ReferenceTable,
		DefaultValue:        req.DefaultValue,
		ThresholdPercentage: req.ThresholdPercentage,
		ActiveFlag:          req.ActiveFlag,
	}
}

// ListChecks handles GET /api/quality-checks
func (h *QualityHandler) ListChecks(w http.ResponseWriter, r *http.Request) {
	filters := models.QualityFilters{
		ValidationType: r.URL.Query().Get("validationType"),
		TableName:      r.URL.Query().Get("tableName"),
	}

	checks, err := h.qualityService.List(r.Context(), filters)
	if err != nil {
		failRequest(w, h.logger, err, "Quality check not found", "Failed to fetch quality checks")
		return
	}

	if checks == nil {
		checks = make([]*models.QualityCheck, 0)
	}

	if err := WriteJSON(w, http.StatusOK, checks); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateCheck handles POST /api/quality-checks
func (h *QualityHandler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	var req qualityCheckRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	created, err := h.qualityService.Create(r.Context(), req.toModel())
	if err != nil {
		failRequest(w, h.logger, err, "Quality check not found", "Failed to create quality check")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetCheck handles GET /api/quality-checks/{id}
func (h *QualityHandler) GetCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	check, err := h.qualityService.Get(r.Context(), id)
	if err != nil {
		failRequest(w, h.logger, err, "Quality check not found", "Failed to fetch quality check")
		return
	}

	if err := WriteJSON(w, http.StatusOK, check); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateCheck handles PUT /api/quality-checks/{id}
func (h *QualityHandler) UpdateCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req qualityCheckRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	check := req.toModel()
	check.ID = id

	updated, err := h.qualityService.Update(r.Context(), check)
	if err != nil {
		failRequest(w, h.logger, err, "Quality check not found", "Failed to update quality check")
		return
	}

	if err := WriteJSON(w, http.StatusOK, updated); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteCheck handles DELETE /api/quality-checks/{id}
func (h *QualityHandler) DeleteCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.qualityService.Delete(r.Context(), id); err != nil {
		failRequest(w, h.logger, err, "Quality check not found", "Failed to delete quality check")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
