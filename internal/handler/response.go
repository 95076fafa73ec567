// Package handler contains the HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/ecommerce-api/internal/apperror"
)

// validate is the shared validator instance. validator.New is expensive
// (it builds a tag cache), so one package-level instance serves all
// handlers; it is safe for concurrent use.
var validate = validator.New()

// ErrorResponse is the standard error body for every failing endpoint.
//
// Error is machine-readable ("not_found", "validation_error", ...);
// Message is the human-readable detail. Clients can rely on this shape for
// any 4xx/5xx the API produces.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body — once Encode starts
// writing, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends it.
//
// The service layer returns apperror sentinels; this is the single place
// they become status codes:
//
//	ErrValidation   → 400 (includes admin-query faults, raw message intact)
//	ErrConflict     → 400 (duplicate registration — the published contract
//	                       uses 400 here, not 409)
//	ErrUnauthorized → 401
//	ErrForbidden    → 403
//	ErrNotFound     → 404
//
// Anything without an AppError in its chain is an internal fault: log-only,
// generic 500, no detail leaked to the client.
func writeError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
			errorType = "conflict"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	logger.Error("internal error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeAndValidate decodes a JSON body into dst and runs the struct's
// `validate` tags. On failure it writes the 400 itself and returns false —
// the handler just returns.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		// Report the first failing field; one precise message beats a
		// wall of them.
		var verrs validator.ValidationErrors
		msg := "Invalid request body"
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msg = fmt.Sprintf("Invalid value for field %q", verrs[0].Field())
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: msg,
		})
		return false
	}

	return true
}
