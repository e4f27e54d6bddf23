package service

import (
	"context"
	"errors"

	"jobmanager/internal/apperr"
	"jobmanager/internal/auth"
	"jobmanager/internal/store"
)

// AuthService verifies login credentials and issues bearer tokens.
type AuthService struct {
	users  store.UserStore
	tokens *auth.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users store.UserStore, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login checks the email/password combination and returns a signed
// bearer token. Unknown users and wrong passwords yield the same
// error; inactive users are rejected after the password check.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.Wrap(apperr.ErrInvalidCredentials, "wrong username/password combination")
		}
		return "", err
	}

	if !auth.VerifyPassword(password, user.HashedPassword) {
		return "", apperr.Wrap(apperr.ErrInvalidCredentials, "wrong username/password combination")
	}
	if !user.IsActive {
		return "", apperr.Wrap(apperr.ErrInvalidCredentials, "inactive user")
	}

	return s.tokens.Issue(user.Email)
}
