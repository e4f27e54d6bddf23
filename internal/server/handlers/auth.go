package handlers

import (
	"net/http"

	"jobmanager/pkg/api"
)

// Login handles POST /auth/login.
// Credentials arrive as a form body with username and password
// fields; the username is the user's email address.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.httpError(w, "invalid form body", http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		h.httpError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJson(w, http.StatusOK, api.Token{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
