// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HealthHandlers handles liveness endpoints
type HealthHandlers struct {
	version string
	logger  *zap.Logger
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(version string, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{version: version, logger: logger}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   h.version,
		},
	})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError converts any error into the standard error envelope
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "An unexpected error occurred")
	requestID := chimiddleware.GetReqID(r.Context())

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}

	writeJSON(w, logger, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}
