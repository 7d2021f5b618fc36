package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "writing response", "error", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// A missing resource and a forbidden one share the 404 so resource ids
// cannot be probed across accounts. Unexpected errors are logged
// server-side and surface as an opaque 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := common.AsValidationError(err); ok {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: ve.Fields})
		return
	}

	switch {
	case errors.Is(err, common.ErrorDuplicateUsername):
		s.writeError(w, http.StatusBadRequest, "username is already taken")
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorNotFoundOrForbidden):
		s.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
