package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/policy"
	"jobmanager/internal/store"
)

const maxAccountNameLength = 256

// AccountService orchestrates policy checks and persistence for the
// account lifecycle.
type AccountService struct {
	accounts store.AccountStore
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts store.AccountStore) *AccountService {
	return &AccountService{accounts: accounts}
}

// List returns accounts visible to the actor. Admin only.
func (s *AccountService) List(ctx context.Context, actor *store.User, offset, limit int) ([]store.Account, error) {
	if err := decisionErr(policy.ListAccounts(actor), ""); err != nil {
		return nil, err
	}
	return s.accounts.ListAccounts(ctx, offset, limit)
}

// Get returns a single account: any for admins, the caller's own for
// everyone else. Accounts outside visibility read as absent.
func (s *AccountService) Get(ctx context.Context, actor *store.User, id uuid.UUID) (*store.Account, error) {
	if err := decisionErr(policy.ReadAccount(actor, id), fmt.Sprintf("account %s not found", id)); err != nil {
		return nil, err
	}
	return s.accounts.GetAccountByID(ctx, id)
}

// Create persists a new account, active by default. Admin only.
func (s *AccountService) Create(ctx context.Context, actor *store.User, name string, isGlobal bool) (*store.Account, error) {
	if err := decisionErr(policy.ManageAccount(actor), ""); err != nil {
		return nil, err
	}
	if err := validateAccountName(name); err != nil {
		return nil, err
	}

	if _, err := s.accounts.GetAccountByName(ctx, name); err == nil {
		return nil, apperr.Wrap(apperr.ErrConflict, "account %s already exists", name)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	account := &store.Account{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  true,
		IsGlobal:  isGlobal,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Update applies a partial patch to an account. Admin only.
func (s *AccountService) Update(ctx context.Context, actor *store.User, id uuid.UUID, patch store.AccountPatch) (*store.Account, error) {
	if err := decisionErr(policy.ManageAccount(actor), ""); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := validateAccountName(*patch.Name); err != nil {
			return nil, err
		}
	}
	return s.accounts.UpdateAccount(ctx, id, patch)
}

// Activate flips an inactive account to active. Activating an
// already active account is rejected, not silently accepted.
func (s *AccountService) Activate(ctx context.Context, actor *store.User, id uuid.UUID) (*store.Account, error) {
	return s.setActive(ctx, actor, id, true)
}

// Deactivate flips an active account to inactive. Deactivation does
// not stop the account's jobs; that is a manual follow-up action.
func (s *AccountService) Deactivate(ctx context.Context, actor *store.User, id uuid.UUID) (*store.Account, error) {
	return s.setActive(ctx, actor, id, false)
}

func (s *AccountService) setActive(ctx context.Context, actor *store.User, id uuid.UUID, active bool) (*store.Account, error) {
	if err := decisionErr(policy.ManageAccount(actor), ""); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.IsActive == active {
		state := "inactive"
		if active {
			state = "active"
		}
		return nil, apperr.Wrap(apperr.ErrInvalidState, "account %s is already %s", id, state)
	}

	return s.accounts.UpdateAccount(ctx, id, store.AccountPatch{IsActive: &active})
}

// Delete removes an account immediately and irreversibly; its users
// and their jobs cascade with it. Admin only.
func (s *AccountService) Delete(ctx context.Context, actor *store.User, id uuid.UUID) error {
	if err := decisionErr(policy.ManageAccount(actor), ""); err != nil {
		return err
	}
	return s.accounts.DeleteAccount(ctx, id)
}

func validateAccountName(name string) error {
	if name == "" {
		return apperr.Wrap(apperr.ErrValidation, "account name is required")
	}
	if len(name) > maxAccountNameLength {
		return apperr.Wrap(apperr.ErrValidation, "account name exceeds %d characters", maxAccountNameLength)
	}
	return nil
}
