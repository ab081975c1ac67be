package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/exportsuite/internal/pricing"
	"github.com/Simplici0/exportsuite/internal/store"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error     string         `json:"error"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *server) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
		Details:   details,
	})
}

// respondErr maps pricing and store errors onto HTTP statuses.
func (s *server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *pricing.InputError
	switch {
	case errors.As(err, &inputErr):
		s.respondError(w, r, http.StatusBadRequest, "invalid_input", inputErr.Error(), map[string]any{"field": inputErr.Field})
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, r, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, store.ErrConflict):
		s.respondError(w, r, http.StatusConflict, "conflict", "record conflicts with an existing one, retry the request", nil)
	default:
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		s.respondError(w, r, http.StatusInternalServerError, "internal", "internal server error", nil)
	}
}

func (s *server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid_json", fmt.Sprintf("request body: %v", err), nil)
		return false
	}
	return true
}

func (s *server) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		s.respondError(w, r, http.StatusBadRequest, "invalid_id", fmt.Sprintf("invalid %s", param), nil)
		return 0, false
	}
	return id, true
}
