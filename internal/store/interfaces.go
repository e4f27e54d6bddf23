package store

import (
	"context"

	"github.com/google/uuid"
)

// Store contracts. Implementations return apperr.ErrNotFound when a
// row is absent and apperr.ErrConflict on unique-key violations.
// Mutations return the freshly persisted representation, reflecting
// generated identifiers and defaults.

// AccountStore handles the persistence of accounts.
type AccountStore interface {
	// CreateAccount inserts a new account and fills generated fields.
	CreateAccount(ctx context.Context, account *Account) error

	// GetAccountByID returns an account by its ID.
	GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetAccountByName returns an account by its unique name.
	GetAccountByName(ctx context.Context, name string) (*Account, error)

	// ListAccounts returns accounts ordered by creation time.
	ListAccounts(ctx context.Context, offset, limit int) ([]Account, error)

	// UpdateAccount applies the non-nil patch fields and returns the
	// updated account.
	UpdateAccount(ctx context.Context, id uuid.UUID, patch AccountPatch) (*Account, error)

	// DeleteAccount removes an account. The store's cascade rules
	// remove its users and their jobs.
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// UserStore handles the persistence of users.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, filter UserFilter, offset, limit int) ([]User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*User, error)

	// DeleteUser removes a user; the store cascades to the user's jobs.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// JobStore handles the persistence of jobs.
type JobStore interface {
	CreateJob(ctx context.Context, job *Job) error
	GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter, offset, limit int) ([]Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error

	// CountJobs returns the number of jobs in the given status,
	// used by the metrics gauge.
	CountJobs(ctx context.Context, status Status) (int64, error)
}
