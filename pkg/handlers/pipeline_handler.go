package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/services"
)

// PipelineHandler handles pipeline configuration HTTP requests.
type PipelineHandler struct {
	pipelineService services.PipelineService
	logger          *zap.Logger
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(pipelineService services.PipelineService, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{
		pipelineService: pipelineService,
		logger:          logger,
	}
}

// RegisterRoutes registers the pipeline handler's routes on the given mux.
func (h *PipelineHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/pipelines", h.ListPipelines)
	mux.HandleFunc("POST /api/pipelines", h.CreatePipeline)
	mux.HandleFunc("GET /api/pipelines/{id}", h.GetPipeline)
	mux.HandleFunc("PUT /api/pipelines/{id}", h.UpdatePipeline)
	mux.HandleFunc("DELETE /api/pipelines/{id}", h.DeletePipeline)
}

type pipelineRequest struct {
	PipelineName     string `json:"pipelineName" validate:"required"`
	ExecutionLayer   string `json:"executionLayer" validate:"required,oneof=Bronze Silver Gold"`
	SourceSystem     string `json:"sourceSystem"`
	SourceType       string `json:"sourceType"`
	SourceSchema     string `json:"sourceSchema"`
	SourceTable      string `json:"sourceTable"`
	TargetSystem     string `json:"targetSystem"`
	TargetType       string `json:"targetType"`
	TargetSchema     string `json:"targetSchema"`
	TargetTable      string `json:"targetTable"`
	LoadType         string `json:"loadType"`
	PrimaryKeyColumn string `json:"primaryKeyColumn"`
	ActiveFlag       string `json:"activeFlag" validate:"omitempty,oneof=Y N"`
}

func (req *pipelineRequest) toModel() *models.Pipeline {
	return &models.Pipeline{
		PipelineName:     req.PipelineName,
		ExecutionLayer:   req.ExecutionLayer,
		SourceSystem:     req.SourceSystem,
		SourceType:       req.SourceType,
		SourceSchema:     req.SourceSchema,
		SourceTable:      req.SourceTable,
		TargetSystem:     req.TargetSystem,
		TargetType:       req.TargetType,
		TargetSchema:     req.TargetSchema,
		TargetTable:      req.TargetTable,
		LoadType:         req.LoadType,
		PrimaryKeyColumn: req.PrimaryKeyColumn,
		ActiveFlag:       req.ActiveFlag,
	}
}

// ListPipelines handles GET /api/pipelines
func (h *PipelineHandler) ListPipelines(w http.ResponseWriter, r *http.Request) {
	filters := models.PipelineFilters{
		ExecutionLayer: r.URL.Query().Get("executionLayer"),
		LoadType:       r.URL.Query().Get("loadType"),
		ActiveFlag:     r.URL.Query().Get("activeFlag"),
		Search:         r.URL.Query().Get("search"),
	}

	pipelines, err := h.pipelineService.List(r.Context(), filters)
	if err != nil {
		failRequest(w, h.logger, err, "Pipeline not found", "Failed to fetch pipelines")
		return
	}

	if pipelines == nil {
		pipelines = make([]*models.Pipeline, 0)
	}

	if err := WriteJSON(w, http.StatusOK, pipelines); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreatePipeline handles POST /api/pipelines
func (h *PipelineHandler) CreatePipeline(w http.ResponseWriter, r *http.Request) {
	var req pipelineRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	created, err := h.pipelineService.Create(r.Context(), req.toModel())
	if err != nil {
		failRequest(w, h.logger, err, "Pipeline not found", "Failed to create pipeline")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetPipeline handles GET /api/pipelines/{id}
func (h *PipelineHandler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	pipeline, err := h.pipelineService.Get(r.Context(), id)
	if err != nil {
		failRequest(w, h.logger, err, "Pipeline not found", "Failed to fetch pipeline")
		return
	}

	if err := WriteJSON(w, http.StatusOK, pipeline); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdatePipeline handles PUT /api/pipelines/{id}
func (h *PipelineHandler) UpdatePipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req pipelineRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	pipeline := req.toModel()
	pipeline.ID = id

	updated, err := h.pipelineService.Update(r.Context(), pipeline)
	if err != nil {
		failRequest(w, h.logger, err, "Pipeline not found", "Failed to update pipeline")
		return
	}

	if err := WriteJSON(w, http.StatusOK, updated); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeletePipeline handles DELETE /api/pipelines/{id}
func (h *PipelineHandler) DeletePipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.pipelineService.Delete(r.Context(), id); err != nil {
		failRequest(w, h.logger, err, "Pipeline not found", "Failed to delete pipeline")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
