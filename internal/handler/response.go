package handler

// RESPONSE ENVELOPE:
// Every API response has one of two shapes:
//
//	{"success": true,  "data": ...}
//	{"success": false, "error": "Idea not found"}
//	{"success": false, "error": "Validation failed", "details": {"[0].score": ["..."]}}
//
// Clients check "success" first and never have to guess which fields exist.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/ideaforge/internal/apperror"
)

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Details apperror.Details `json:"details,omitempty"`
}

// writeJSON sends v as JSON with the given status code. Headers must be set
// before WriteHeader; anything set afterwards is silently dropped.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; all we can do is log.
		logger.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

func writeData(w http.ResponseWriter, logger *slog.Logger, data any) {
	writeJSON(w, logger, http.StatusOK, successResponse{Success: true, Data: data})
}

// statusFor maps a domain error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrRelationMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError translates err into the failure envelope. Only AppErrors that
// are not internal contribute their message; everything else becomes a
// generic 500 so driver or file-system details never reach the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)

	var appErr *apperror.AppError
	if status == http.StatusInternalServerError || !errors.As(err, &appErr) {
		if !errors.Is(err, apperror.ErrInternal) {
			// Internal AppErrors were logged where they were created.
			logger.Error("unhandled error", slog.String("error", err.Error()))
		}
		writeJSON(w, logger, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	resp := ErrorResponse{Error: appErr.Message}
	if errors.Is(err, apperror.ErrValidation) {
		resp.Details = appErr.Details
	}
	writeJSON(w, logger, status, resp)
}

// NotFound answers requests that match no route.
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, logger, http.StatusNotFound, ErrorResponse{Error: "Route not found"})
	}
}

// MethodNotAllowed answers requests whose path matches but method does not.
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, logger, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	}
}
