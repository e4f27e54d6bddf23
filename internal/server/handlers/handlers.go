// Package handlers contains the HTTP handlers for the API server.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/logger"
	"jobmanager/internal/server/middleware"
	"jobmanager/internal/service"
	"jobmanager/internal/store"
	"jobmanager/pkg/api"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// Handlers holds all HTTP handlers and their dependencies.
type Handlers struct {
	accounts *service.AccountService
	users    *service.UserService
	jobs     *service.JobService
	auth     *service.AuthService
	log      *slog.Logger
}

// New creates a new Handlers instance with the given service dependencies.
func New(accounts *service.AccountService, users *service.UserService, jobs *service.JobService, auth *service.AuthService, log *slog.Logger) *Handlers {
	return &Handlers{
		accounts: accounts,
		users:    users,
		jobs:     jobs,
		auth:     auth,
		log:      log,
	}
}

// A helper function to write standard JSON responses.
func (h *Handlers) respondJson(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// A helper function to return consistent error messages.
func (h *Handlers) httpError(w http.ResponseWriter, message string, code int) {
	h.respondJson(w, code, api.ErrorResponse{
		Error: message,
		Code:  strconv.Itoa(code),
	})
}

// respondError maps a taxonomy error to its HTTP status. Unknown
// errors are logged and surface as an opaque 500.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrInvalidState),
		errors.Is(err, apperr.ErrInvalidCredentials):
		h.httpError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrForbidden), errors.Is(err, apperr.ErrInvalidToken):
		h.httpError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrNotFound):
		h.httpError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrConflict):
		h.httpError(w, err.Error(), http.StatusConflict)
	default:
		logger.FromContext(r.Context(), h.log).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		h.httpError(w, "internal server error", http.StatusInternalServerError)
	}
}

// actor extracts the authenticated user placed in the context by the
// auth middleware.
func (h *Handlers) actor(w http.ResponseWriter, r *http.Request) (*store.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.httpError(w, "not authenticated", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

// parsePagination reads the skip/limit query parameters. Limit
// defaults to 100 and is clamped to 1000; negative values are
// rejected.
func parsePagination(r *http.Request) (offset, limit int, err error) {
	offset, err = queryInt(r, "skip", 0)
	if err != nil || offset < 0 {
		return 0, 0, apperr.Wrap(apperr.ErrValidation, "invalid skip parameter")
	}
	limit, err = queryInt(r, "limit", defaultPageLimit)
	if err != nil || limit < 0 {
		return 0, 0, apperr.Wrap(apperr.ErrValidation, "invalid limit parameter")
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// pathID parses the {id} path segment as a UUID.
func (h *Handlers) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.httpError(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
