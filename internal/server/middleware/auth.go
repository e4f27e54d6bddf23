// Package middleware contains HTTP middleware for the API server.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"jobmanager/internal/auth"
	"jobmanager/internal/logger"
	"jobmanager/internal/store"
	"jobmanager/pkg/api"
)

// userKey is the context key for the authenticated user.
type userKey struct{}

// AuthMiddleware validates the bearer token on each request and loads
// the authenticated user into the context. Missing, malformed or
// expired tokens are rejected, as are tokens whose user no longer
// exists or has been deactivated.
func AuthMiddleware(tokens *auth.TokenIssuer, users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "not authenticated")
				return
			}

			email, err := tokens.Decode(token)
			if err != nil {
				unauthorized(w, "could not validate credentials")
				return
			}

			user, err := users.GetUserByEmail(r.Context(), email)
			if err != nil || !user.IsActive {
				unauthorized(w, "could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			ctx = logger.WithUserEmail(ctx, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the context.
func UserFromContext(ctx context.Context) (*store.User, bool) {
	user, ok := ctx.Value(userKey{}).(*store.User)
	return user, ok
}

// NewContextWithUser returns a context carrying the given user.
// Used by handler tests to bypass the token round trip.
func NewContextWithUser(ctx context.Context, user *store.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(api.ErrorResponse{
		Error: message,
		Code:  "401",
	})
}
