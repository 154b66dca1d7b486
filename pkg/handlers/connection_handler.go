package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/models"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/services"
)

// ConnectionHandler handles stored-connection HTTP requests.
type ConnectionHandler struct {
	connectionService services.ConnectionService
	logger            *zap.Logger
}

// NewConnectionHandler creates a new connection handler.
func NewConnectionHandler(connectionService services.ConnectionService, logger *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		connectionService: connectionService,
		logger:            logger,
	}
}

// RegisterRoutes registers the connection handler's routes on the given mux.
func (h *ConnectionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/connections", h.ListConnections)
	mux.HandleFunc("POST /api/connections", h.CreateConnection)
	mux.HandleFunc("GET /api/connections/{id}", h.GetConnection)
	mux.HandleFunc("PUT /api/connections/{id}", h.UpdateConnection)
	mux.HandleFunc("DELETE /api/connections/{id}", h.DeleteConnection)
	mux.HandleFunc("POST /api/connections/{id}/test", h.TestConnection)
}

// connectionRequest is the create/update payload. Host, port and username
// are optional because file and API style systems have none.
type connectionRequest struct {
	ConnectionName string `json:"connectionName" validate:"required"`
	EngineType     string `json:"engineType" validate:"required"`
	Host           string `json:"host"`
	Port           int    `json:"port" validate:"omitempty,gte=1,lte=65535"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	DatabaseName   string `json:"databaseName"`
	ActiveFlag     string `json:"activeFlag" validate:"omitempty,oneof=Y N"`
}

func (req *connectionRequest) toModel() *models.Connection {
	return &models.Connection{
		ConnectionName: req.ConnectionName,
		EngineType:     req.EngineType,
		Host:           req.Host,
		Port:           req.Port,
		Username:       req.Username,
		Password:       req.Password,
		DatabaseName:   req.DatabaseName,
		ActiveFlag:     req.ActiveFlag,
	}
}

// ListConnections handles GET /api/connections
func (h *ConnectionHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	filters := models.ConnectionFilters{
		EngineType: r.URL.Query().Get("engineType"),
		Status:     r.URL.Query().Get("status"),
		ActiveFlag: r.URL.Query().Get("activeFlag"),
	}

	conns, err := h.connectionService.List(r.Context(), filters)
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to fetch connections")
		return
	}

	if conns == nil {
		conns = make([]*models.Connection, 0)
	}

	if err := WriteJSON(w, http.StatusOK, conns); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateConnection handles POST /api/connections
func (h *ConnectionHandler) CreateConnection(w http.ResponseWriter, r *http.Request) {
	var req connectionRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	created, err := h.connectionService.Create(r.Context(), req.toModel())
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to create connection")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetConnection handles GET /api/connections/{id}
func (h *ConnectionHandler) GetConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	conn, err := h.connectionService.Get(r.Context(), id)
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to fetch connection")
		return
	}

	if err := WriteJSON(w, http.StatusOK, conn); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateConnection handles PUT /api/connections/{id}
func (h *ConnectionHandler) UpdateConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req connectionRequest
	if !decodeValid(w, r, &req, h.logger) {
		return
	}

	conn := req.toModel()
	conn.ID = id

	updated, err := h.connectionService.Update(r.Context(), conn)
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to update connection")
		return
	}

	if err := WriteJSON(w, http.StatusOK, updated); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteConnection handles DELETE /api/connections/{id}
func (h *ConnectionHandler) DeleteConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.connectionService.Delete(r.Context(), id); err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to delete connection")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TestConnection handles POST /api/connections/{id}/test
func (h *ConnectionHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	tested, err := h.connectionService.TestConnection(r.Context(), id)
	if err != nil {
		failRequest(w, h.logger, err, "Connection not found", "Failed to test connection")
		return
	}

	if err := WriteJSON(w, http.StatusOK, tested); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
