package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/auth"
	"jobmanager/internal/policy"
	"jobmanager/internal/store"
)

const (
	maxEmailLength    = 256
	minPasswordLength = 8
	maxPasswordLength = 40
)

// UserService orchestrates policy checks and persistence for the
// user lifecycle.
type UserService struct {
	users      store.UserStore
	accounts   store.AccountStore
	bcryptCost int
}

// NewUserService creates a new UserService. Cost is the bcrypt cost
// factor used when deriving password hashes.
func NewUserService(users store.UserStore, accounts store.AccountStore, cost int) *UserService {
	return &UserService{users: users, accounts: accounts, bcryptCost: cost}
}

// CreateUserInput carries the fields for user creation. AccountID is
// the admin-only target override; when nil the user is created in the
// actor's account.
type CreateUserInput struct {
	Email     string
	Password  string
	Role      store.Role
	AccountID *uuid.UUID
}

// UpdateUserInput carries a partial user update. A set Password is
// hashed before persisting; the plaintext never reaches the store.
type UpdateUserInput struct {
	Email    *string
	Role     *store.Role
	IsActive *bool
	Password *string
}

// List returns users visible to the actor: all of them for admins,
// same-account users for everyone else.
func (s *UserService) List(ctx context.Context, actor *store.User, offset, limit int) ([]store.User, error) {
	filter := store.UserFilter{AccountID: policy.UserListScope(actor)}
	return s.users.ListUsers(ctx, filter, offset, limit)
}

// Get returns a single user: any for admins, same-account for
// everyone else. Users outside visibility read as absent.
func (s *UserService) Get(ctx context.Context, actor *store.User, id uuid.UUID) (*store.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := decisionErr(policy.ReadUser(actor, user), fmt.Sprintf("user %s not found", id)); err != nil {
		return nil, err
	}
	return user, nil
}

// Create persists a new user with a derived password hash. The role
// must be consistent with the target account: admins belong to global
// accounts, non-admins to regular ones. Violations are rejected, not
// corrected.
func (s *UserService) Create(ctx context.Context, actor *store.User, in CreateUserInput) (*store.User, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, apperr.Wrap(apperr.ErrValidation, "unknown role %q", in.Role)
	}

	targetID := actor.AccountID
	if in.AccountID != nil {
		targetID = *in.AccountID
	}
	if err := decisionErr(policy.CreateUser(actor, targetID, in.Role), ""); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetAccountByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := checkRoleAccountConsistency(in.Role, account); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Wrap(apperr.ErrConflict, "user %s already exists", in.Email)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &store.User{
		ID:             uuid.New(),
		Email:          in.Email,
		Role:           in.Role,
		IsActive:       true,
		HashedPassword: hash,
		AccountID:      account.ID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial patch to a user: admin anywhere,
// maintainer within the own account.
func (s *UserService) Update(ctx context.Context, actor *store.User, id uuid.UUID, in UpdateUserInput) (*store.User, error) {
	target, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := decisionErr(policy.ManageUser(actor, target), fmt.Sprintf("user %s not found", id)); err != nil {
		return nil, err
	}

	patch := store.UserPatch{IsActive: in.IsActive}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return nil, err
		}
		patch.Email = in.Email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, apperr.Wrap(apperr.ErrValidation, "unknown role %q", *in.Role)
		}
		if *in.Role != target.Role {
			account, err := s.accounts.GetAccountByID(ctx, target.AccountID)
			if err != nil {
				return nil, err
			}
			if err := checkRoleAccountConsistency(*in.Role, account); err != nil {
				return nil, err
			}
		}
		patch.Role = in.Role
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.HashedPassword = &hash
	}

	return s.users.UpdateUser(ctx, id, patch)
}

// Activate flips an inactive user to active.
func (s *UserService) Activate(ctx context.Context, actor *store.User, id uuid.UUID) (*store.User, error) {
	return s.setActive(ctx, actor, id, true)
}

// Deactivate flips an active user to inactive. Inactive users cannot
// log in or use existing tokens.
func (s *UserService) Deactivate(ctx context.Context, actor *store.User, id uuid.UUID) (*store.User, error) {
	return s.setActive(ctx, actor, id, false)
}

func (s *UserService) setActive(ctx context.Context, actor *store.User, id uuid.UUID, active bool) (*store.User, error) {
	target, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := decisionErr(policy.ManageUser(actor, target), fmt.Sprintf("user %s not found", id)); err != nil {
		return nil, err
	}
	if target.IsActive == active {
		state := "inactive"
		if active {
			state = "active"
		}
		return nil, apperr.Wrap(apperr.ErrInvalidState, "user %s is already %s", id, state)
	}

	return s.users.UpdateUser(ctx, id, store.UserPatch{IsActive: &active})
}

// Delete removes a user immediately and irreversibly; the user's jobs
// cascade with it.
func (s *UserService) Delete(ctx context.Context, actor *store.User, id uuid.UUID) error {
	target, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := decisionErr(policy.ManageUser(actor, target), fmt.Sprintf("user %s not found", id)); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, id)
}

// checkRoleAccountConsistency enforces the invariant that admins
// belong to global accounts and non-admins to regular ones.
func checkRoleAccountConsistency(role store.Role, account *store.Account) error {
	if account.IsGlobal && role != store.RoleAdmin {
		return apperr.Wrap(apperr.ErrValidation, "account %s is global: users must have the admin role", account.Name)
	}
	if !account.IsGlobal && role == store.RoleAdmin {
		return apperr.Wrap(apperr.ErrValidation, "account %s is not global: users must not have the admin role", account.Name)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength {
		return apperr.Wrap(apperr.ErrValidation, "invalid email address")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.Wrap(apperr.ErrValidation, "invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return apperr.Wrap(apperr.ErrValidation, "password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	}
	return nil
}
