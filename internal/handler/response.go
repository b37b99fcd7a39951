package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// WHY HELPERS?
// Without helpers, every handler repeats the same boilerplate:
//   w.Header().Set("Content-Type", "application/json")
//   w.WriteHeader(statusCode)
//   json.NewEncoder(w).Encode(data)
//
// With helpers, handlers are cleaner and more consistent:
//   writeSuccess(w, http.StatusOK, "Login successful", data)
//   writeError(w, err)
//
// CONSISTENT RESPONSE SHAPES:
// Every success response has the shape {"success":true, "message"?, "data"?}
// and every error response has the shape {"error": "<human-readable message>"}.
// The frontend renders `message` on success and `error` on failure, so the
// shape must never vary between endpoints.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mdhafiz/wedding-invite/internal/apperror"
)

// SuccessResponse is the envelope for every successful API response.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the standard error format returned by all API endpoints.
// Having a struct ensures consistent JSON shape across all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// You MUST set headers and status code BEFORE writing the body.
// Once you call w.Write() (which Encode does internally), the headers are sent.
// Any header changes after that are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// If encoding fails, the headers are already sent — we can only log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeSuccess wraps the payload in the standard success envelope.
// Pass an empty message or nil data to omit those fields.
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// ERROR MAPPING:
// This is where domain errors (from the service layer) get translated to HTTP.
// The service layer returns apperror.ErrValidation, apperror.ErrNotFound, etc.
// This function maps those to 400, 404, etc.
//
// WHY HERE AND NOT IN THE SERVICE?
// The service layer should not know about HTTP status codes.
// Different consumers of the service might use different protocols:
// - HTTP handler: maps ErrNotFound → 404
// - CLI tool: maps ErrNotFound → "Item not found" message
//
// errors.Is() UNWRAPPING:
// errors.Is(err, target) walks the entire error chain (via Unwrap())
// to see if `target` appears anywhere, so services are free to wrap
// sentinel errors with fmt.Errorf("...: %w", ...).
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	// errors.As() is like errors.Is() but extracts the error value.
	// It walks the chain and fills appErr if it finds an *AppError.
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest // 400
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized // 401
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden // 403
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict // 409
		}

		writeJSON(w, status, ErrorResponse{Error: appErr.Message})
		return
	}

	// Unknown error — return a generic 500.
	// NEVER expose internal error details to the client: the raw error message
	// might contain SQL queries, file paths, or other sensitive info.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
	})
}
