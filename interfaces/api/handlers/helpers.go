// Package handlers exposes the JSON API. Handlers are thin: decode, call one
// application service, present the result.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fieldops/domain/contracts"
	"fieldops/domain/lifecycle"
)

// errorResponse is the uniform JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes and writes the error
// envelope. Validation failures carry their user-facing message through;
// anything unrecognized becomes an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contracts.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, contracts.ErrOrderHasJobs),
		errors.Is(err, contracts.ErrJobHasCheckoutEvents):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case lifecycle.IsValidationError(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// badRequest writes a 400 with the given message.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// parseDate parses an RFC 3339 timestamp or a plain date, returning nil for
// the empty string.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// actorFromRequest builds the acting user from request headers. Identity
// comes from the reverse proxy in front of the service; the default role is
// worker.
func actorFromRequest(r *http.Request) lifecycle.Actor {
	actor := lifecycle.Actor{
		ID:   r.Header.Get("X-User-ID"),
		Role: lifecycle.RoleWorker,
	}
	if r.Header.Get("X-User-Role") == string(lifecycle.RoleBackoffice) {
		actor.Role = lifecycle.RoleBackoffice
	}
	return actor
}
