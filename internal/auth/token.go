package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobmanager/internal/apperr"
)

// TokenIssuer signs and verifies bearer tokens. It is purely
// functional given the secret key material supplied at construction.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer for the given HMAC algorithm
// (HS256, HS384 or HS512).
func NewTokenIssuer(secret, algorithm string, ttl time.Duration) (*TokenIssuer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}

	return &TokenIssuer{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

// Issue returns a signed token embedding the subject and an expiry
// of now plus the configured lifetime.
func (t *TokenIssuer) Issue(subject string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(t.method, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the token signature and expiry and returns the
// subject claim. Any failure, including a missing subject, yields
// apperr.ErrInvalidToken.
func (t *TokenIssuer) Decode(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{t.method.Alg()}),
	)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrInvalidToken, "could not validate credentials")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperr.Wrap(apperr.ErrInvalidToken, "could not validate credentials")
	}
	return claims.Subject, nil
}
