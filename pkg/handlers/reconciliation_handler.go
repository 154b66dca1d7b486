package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/services"
)

// ReconciliationHandler handles reconciliation configuration HTTP requests.
type ReconciliationHandler struct {
	reconciliationService services.ReconciliationService
	logger                *zap.Logger
}

// NewReconciliationHandler creates a new reconciliation handler.
func NewReconciliationHandler(reconciliationService services.ReconciliationService, logger *zap.Logger) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationService: reconciliationService,
		logger:                logger,
	}
}

// RegisterRoutes registers the reconciliation handler's routes on the given mux.
func (h *ReconciliationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/reconciliations", h.ListReconciliations)
	mux.HandleFunc("POST /api/reconciliations", h.CreateReconciliation)
	mux.HandleFunc("GET /api/reconciliations/{id}", h.GetReconciliation)
	mux.HandleFunc("PUT /api/reconciliations/{id}", h.UpdateReconciliation)
	mux.HandleFunc("DELETE /api/reconciliations/{id}", h.DeleteReconciliation)
}

type reconciliationRequest struct {
	ReconName           string  `json:"reconName" validate:"required"`
	SourceConnectionID  *int64  `json:"sourceConnectionId"`
	TargetConnectionID  *int64  `json:"targetConnectionId"`
	SourceQuery         string  `json:"sourceQuery"`
	TargetQuery         string  `json:"targetQuery"`
	ReconType           string  `json:"reconType" validate:"required,oneof=count sum amount data"`
	ThresholdPercentage float64 `json:"thresholdPercentage" validate:"gte=0,lte=100"`
	ActiveFlag          string  `json:"activeFlag" validate:"omitempty,oneof=Y N"`
}

func (req *reconciliationRequest) toModel() *models.Reconciliation {
	return &models.Reconciliation{
		ReconName:           req.ReconName,
		SourceConnectionID:  req.SourceConnectionID,
		TargetConnectionID:  req.TargetConnectionID,
		SourceQuery:         req.SourceQuery,
		TargetQuery:         req.TargetQuery,
		ReconType:           req.ReconType,
		ThresholdPercentage: req.ThresholdPercentage,
		ActiveFlag:          req.ActiveFlag,
	}
}

// ListReconciliations handles GET /api/reconciliations
func (h *ReconciliationHandler) ListReconciliations(w http.ResponseWriter, r *http.Request) {
	filters := models.ReconciliationFilters{
		ReconType: r.URL.Query().Get("reconType"),
	}

	recons, err := h.reconciliationService.List(r.Context(), filters)
	if err != nil {
		failRequest(w, h.logger, err, "Reconciliation not found", "Failed to fetch reconciliations")
		return
	}

	if recons == nil {
		recons = make([]*models.Reconciliation, 0)
	}

	if err := WriteJSON(w, http.StatusOK, recons); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateReconciliation handles POST /api/reconciliations
func (h *ReconciliationHandler) CreateReconciliation(w http.ResponseWriter, r *http.Request) {
	var req reconciliationRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	created, err := h.reconciliationService.Create(r.Context(), req.toModel())
	if err != nil {
		failRequest(w, h.logger, err, "Reconciliation not found", "Failed to create reconciliation")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetReconciliation handles GET /api/reconciliations/{id}
func (h *ReconciliationHandler) GetReconciliation(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	recon, err := h.reconciliationService.Get(r.Context(), id)
	if err != nil {
		failRequest(w, h.logger, err, "Reconciliation not found", "Failed to fetch reconciliation")
		return
	}

	if err := WriteJSON(w, http.StatusOK, recon); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateReconciliation handles PUT /api/reconciliations/{id}
func (h *ReconciliationHandler) UpdateReconciliation(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req reconciliationRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	recon := req.toModel()
	recon.ID = id

	updated, err := h.reconciliationService.Update(r.Context(), recon)
	if err != nil {
		failRequest(w, h.logger, err, "Reconciliation not found", "Failed to update reconciliation")
		return
	}

	if err := WriteJSON(w, http.StatusOK, updated); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteReconciliation handles DELETE /api/reconciliations/{id}
func (h *ReconciliationHandler) DeleteReconciliation(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.reconciliationService.Delete(r.Context(), id); err != nil {
		failRequest(w, h.logger, err, "Reconciliation not found", "Failed to delete reconciliation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
