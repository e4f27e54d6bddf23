// Package apperr defines the application error taxonomy.
// Sentinel errors let the transport layer map service failures to
// HTTP status codes with errors.Is, while Wrap attaches the
// human-readable detail returned to the caller.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers resources that are absent or hidden by policy.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden covers coarse role-gate failures on list/create endpoints.
	ErrForbidden = errors.New("not enough privileges")

	// ErrConflict covers unique-key collisions.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidState covers redundant state transitions.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrInvalidCredentials covers login failures.
	ErrInvalidCredentials = errors.New("wrong username/password combination")

	// ErrInvalidToken covers bearer tokens that are malformed, tampered
	// with, expired, or missing the subject claim.
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrValidation covers input that fails field constraints.
	ErrValidation = errors.New("invalid input")
)

// wrapped carries a detail message on top of a sentinel kind.
type wrapped struct {
	kind   error
	detail string
}

func (e *wrapped) Error() string { return e.detail }

func (e *wrapped) Unwrap() error { return e.kind }

// Wrap returns an error that unwraps to kind and renders the given
// detail message.
func Wrap(kind error, format string, args ...any) error {
	return &wrapped{kind: kind, detail: fmt.Sprintf(format, args...)}
}
