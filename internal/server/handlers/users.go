package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"jobmanager/internal/service"
	"jobmanager/internal/store"
	"jobmanager/pkg/api"
)

func userResponse(u *store.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		AccountID: u.AccountID.String(),
	}
}

// ListUsers handles GET /users.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	offset, limit, err := parsePagination(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	users, err := h.users.List(r.Context(), actor, offset, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]api.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i]))
	}
	h.respondJson(w, http.StatusOK, resp)
}

// GetUser handles GET /users/{id}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, userResponse(user))
}

// CreateUser handles POST /users.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req api.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in := service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     store.Role(req.Role),
	}
	if req.AccountID != "" {
		accountID, err := uuid.Parse(req.AccountID)
		if err != nil {
			h.httpError(w, "invalid account_id", http.StatusBadRequest)
			return
		}
		in.AccountID = &accountID
	}

	user, err := h.users.Create(r.Context(), actor, in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusCreated, userResponse(user))
}

// UpdateUser handles PUT /users/{id}.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in := service.UpdateUserInput{
		Email:    req.Email,
		IsActive: req.IsActive,
		Password: req.Password,
	}
	if req.Role != nil {
		role := store.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.users.Update(r.Context(), actor, id, in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, userResponse(user))
}

// ActivateUser handles PUT /users/{id}/activate.
func (h *Handlers) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, true)
}

// DeactivateUser handles PUT /users/{id}/deactivate.
func (h *Handlers) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, false)
}

func (h *Handlers) setUserActive(w http.ResponseWriter, r *http.Request, active bool) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var (
		user *store.User
		err  error
	)
	if active {
		user, err = h.users.Activate(r.Context(), actor, id)
	} else {
		user, err = h.users.Deactivate(r.Context(), actor, id)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, userResponse(user))
}

// DeleteUser handles DELETE /users/{id}.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, api.MessageResponse{Message: "user deleted"})
}
