// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/internal/observability"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.RecordResponseWriteFailure(routePattern(r))
		slog.Warn("response write failed", "route", routePattern(r), "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes. Ownership
// failures deliberately share a 404 with missing rows so the API never
// confirms that another author's article exists.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var authValidation *auth.ValidationError
	var blogValidation *blog.ValidationError

	switch {
	case errors.As(err, &authValidation):
		fields := make(map[string]string, len(authValidation.Violations))
		for _, v := range authValidation.Violations {
			fields[v.Field] = v.Message
		}
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
	case errors.As(err, &blogValidation):
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: map[string]string{blogValidation.Field: blogValidation.Message},
		})
	case errors.Is(err, auth.ErrDuplicateUsername):
		writeJSON(w, r, http.StatusConflict, errorResponse{Error: auth.ErrDuplicateUsername.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, r, http.StatusUnauthorized, errorResponse{Error: auth.ErrInvalidCredentials.Error()})
	case errors.Is(err, auth.ErrUnauthorized):
		writeJSON(w, r, http.StatusUnauthorized, errorResponse{Error: auth.ErrUnauthorized.Error()})
	case errors.Is(err, blog.ErrNotFound), errors.Is(err, blog.ErrNotFoundOrUnauthorized),
		errors.Is(err, auth.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		slog.Error("request failed", "route", routePattern(r), "error", err)
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// routePattern returns the matched mux pattern, falling back to the
// raw path for unmatched requests. Patterns keep metric label
// cardinality bounded.
func routePattern(r *http.Request) string {
	if p := r.Pattern; p != "" {
		return p
	}
	return r.URL.Path
}
