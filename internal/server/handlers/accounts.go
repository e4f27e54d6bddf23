package handlers

import (
	"encoding/json"
	"net/http"

	"jobmanager/internal/store"
	"jobmanager/pkg/api"
)

func accountResponse(a *store.Account) api.AccountResponse {
	return api.AccountResponse{
		ID:       a.ID.String(),
		Name:     a.Name,
		IsActive: a.IsActive,
		IsGlobal: a.IsGlobal,
	}
}

// ListAccounts handles GET /accounts.
func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	offset, limit, err := parsePagination(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	accounts, err := h.accounts.List(r.Context(), actor, offset, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]api.AccountResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, accountResponse(&accounts[i]))
	}
	h.respondJson(w, http.StatusOK, resp)
}

// GetAccount handles GET /accounts/{id}.
func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.Get(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, accountResponse(account))
}

// CreateAccount handles POST /accounts.
func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req api.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.accounts.Create(r.Context(), actor, req.Name, req.IsGlobal)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusCreated, accountResponse(account))
}

// UpdateAccount handles PUT /accounts/{id}.
func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req api.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patch := store.AccountPatch{
		Name:     req.Name,
		IsActive: req.IsActive,
		IsGlobal: req.IsGlobal,
	}
	account, err := h.accounts.Update(r.Context(), actor, id, patch)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, accountResponse(account))
}

// ActivateAccount handles PUT /accounts/{id}/activate.
func (h *Handlers) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	h.setAccountActive(w, r, true)
}

// DeactivateAccount handles PUT /accounts/{id}/deactivate.
func (h *Handlers) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	h.setAccountActive(w, r, false)
}

func (h *Handlers) setAccountActive(w http.ResponseWriter, r *http.Request, active bool) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var (
		account *store.Account
		err     error
	)
	if active {
		account, err = h.accounts.Activate(r.Context(), actor, id)
	} else {
		account, err = h.accounts.Deactivate(r.Context(), actor, id)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, accountResponse(account))
}

// DeleteAccount handles DELETE /accounts/{id}.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.accounts.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, api.MessageResponse{Message: "account deleted"})
}
