package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/apperrors"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
	}{
		{"bad request", http.StatusBadRequest, "connectionName is required"},
		{"not found", http.StatusNotFound, "Connection not found"},
		{"internal error", http.StatusInternalServerError, "Failed to fetch connections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			err := ErrorResponse(w, tt.statusCode, tt.message)
			if err != nil {
				t.Fatalf("ErrorResponse returned error: %v", err)
			}

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.statusCode {
				t.Errorf("status code = %d, want %d", resp.StatusCode, tt.statusCode)
			}

			ct := resp.Header.Get("Content-Type")
			if ct != "application/json" {
				t.Errorf("Content-Type = %q, want %q", ct, "application/json")
			}

			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}

			if len(body) != 1 {
				t.Errorf("envelope has %d fields, want 1", len(body))
			}
			if body["error"] != tt.message {
				t.Errorf("body[error] = %q, want %q", body["error"], tt.message)
			}
		})
	}
}

func TestWriteJSON_Status200(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}

	err := WriteJSON(w, http.StatusOK, data)
	if err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	resp := w.Result()
	defer resp.Body.Close()

	// Status 200 is the default for ResponseRecorder, WriteJSON should not call WriteHeader
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status code = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["key"] != "value" {
		t.Errorf("body[key] = %q, want %q", body["key"], "value")
	}
}

func TestWriteJSON_NonOKStatus(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]int{"count": 5}

	err := WriteJSON(w, http.StatusCreated, data)
	if err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status code = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func TestWriteJSON_UnencodableData(t *testing.T) {
	w := httptest.NewRecorder()
	data := make(chan int) // channels cannot be JSON-encoded

	err := WriteJSON(w, http.StatusOK, data)
	if err == nil {
		t.Error("expected error for unencodable data, got nil")
	}
}

func TestFailRequest(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "not found uses the caller's record name",
			err:         apperrors.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Pipeline not found",
		},
		{
			name:        "duplicate name maps to conflict",
			err:         apperrors.ErrConflict,
			wantStatus:  http.StatusConflict,
			wantMessage: "A record with this name already exists",
		},
		{
			name:        "broken reference maps to bad request",
			err:         apperrors.ErrInvalidInput,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Referenced record does not exist",
		},
		{
			name:        "probe failure keeps the sanitized message",
			err:         catalog.NewConnectionError(errors.New("dial tcp 10.0.0.5:5432: connection refused")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to connect to database: dial tcp 10.0.0.5:5432: connection refused",
		},
		{
			name:        "unexpected error hides the cause",
			err:         errors.New(`pq: relation "config.connections" does not exist`),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to fetch pipeline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			failRequest(w, zap.NewNop(), tt.err, "Pipeline not found", "Failed to fetch pipeline")

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status code = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}
			if body["error"] != tt.wantMessage {
				t.Errorf("body[error] = %q, want %q", body["error"], tt.wantMessage)
			}
		})
	}
}

func TestFailRequest_NeverLeaksRepositoryCause(t *testing.T) {
	w := httptest.NewRecorder()

	failRequest(w, zap.NewNop(), errors.New("pq: password authentication failed for user"), "Connection not found", "Failed to fetch connections")

	resp := w.Result()
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["error"] != "Failed to fetch connections" {
		t.Errorf("body[error] = %q, want fallback message", body["error"])
	}
}
