// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes its message as a JSON error body.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	RespondErrorDetails(w, logger, status, err.Error(), nil)
}

// RespondErrorDetails writes message and optional structured details as a
// JSON error body. Server errors log at error level, client errors at warn.
func RespondErrorDetails(
	w http.ResponseWriter,
	logger *slog.Logger,
	status int,
	message string,
	details any,
) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", message)
	} else {
		logger.Warn("request rejected", "status", status, "error", message)
	}

	RespondJSON(w, status, ErrorResponse{Error: message, Details: details})
}
