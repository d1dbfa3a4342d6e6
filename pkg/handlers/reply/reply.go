// Package reply writes JSON responses for the API handlers.
package reply

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Error writes the error body for err. Errors that map to 500 are logged.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, body := mapping.ToApiError(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	JSON(w, status, body)
}

// BadRequest reports an undecodable request body.
func BadRequest(w http.ResponseWriter, err error) {
	JSON(w, http.StatusBadRequest, &api.Error{Error: fmt.Sprintf("Invalid request body: %v", err)})
}

// Decode reads a JSON body into v, writing a 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, err)
		return false
	}
	return true
}
