package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/apperrors"
)

// ErrorResponse writes the flat {"error": message} envelope and returns any
// encoding error. Every failure on the API surface uses this shape.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// failRequest translates a service error onto the flat envelope. notFound
// names the missing record for 404s; fallback covers unexpected failures,
// whose cause is logged server-side but never returned to the client.
// Connection-probe failures keep their sanitized message verbatim.
func failRequest(w http.ResponseWriter, logger *zap.Logger, err error, notFound, fallback string) {
	var status int
	var message string
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, notFound
	case errors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusConflict, "A record with this name already exists"
	case errors.Is(err, apperrors.ErrInvalidInput):
		status, message = http.StatusBadRequest, "Referenced record does not exist"
	case errors.Is(err, apperrors.ErrConnectionFailed):
		status, message = http.StatusInternalServerError, err.Error()
	default:
		logger.Error(fallback, zap.Error(err))
		status, message = http.StatusInternalServerError, fallback
	}

	if err := ErrorResponse(w, status, message); err != nil {
		logger.Error("Failed to write error response", zap.Error(err))
	}
}
