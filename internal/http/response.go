// Package http is the JSON API surface of the application.
//
// This file centralizes response formatting: one JSON envelope for data,
// one for errors, with store/validation errors mapped to status codes in a
// single place.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gestionale/internal/core"
	"gestionale/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status. Encoding failures are logged;
// by then the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain and store errors onto HTTP statuses. Validation
// errors are 422 so the client can show field-level text; unknown ids are
// 404; anything else is a 500 with a generic body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, store.ErrUnknownRefKind):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case isValidationError(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	default:
		slog.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func isValidationError(err error) bool {
	for _, v := range []error{
		core.ErrInvalidAmount,
		core.ErrEmptyName,
		core.ErrEmptyTitle,
		core.ErrInvalidFiscalCode,
		core.ErrInvalidIBAN,
		core.ErrInvalidType,
		core.ErrMissingClient,
		core.ErrNoParticipants,
		core.ErrInvalidMethod,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// writeBadRequest is for malformed bodies and parameters, before any
// domain validation runs.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
