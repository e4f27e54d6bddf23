package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/auth"
	"jobmanager/internal/store"
)

// AdminBootstrap holds the administrator bootstrap credentials
// sourced from configuration.
type AdminBootstrap struct {
	Email       string
	Password    string
	AccountName string
	BcryptCost  int
}

// Bootstrap idempotently creates the administrator account and user
// at startup. Existing rows are left untouched, so repeated starts
// are safe.
func Bootstrap(ctx context.Context, accounts store.AccountStore, users store.UserStore, in AdminBootstrap, log *slog.Logger) error {
	account, err := accounts.GetAccountByName(ctx, in.AccountName)
	if errors.Is(err, apperr.ErrNotFound) {
		account = &store.Account{
			ID:        uuid.New(),
			Name:      in.AccountName,
			IsActive:  true,
			IsGlobal:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err := accounts.CreateAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}
		log.Info("created admin account", "name", account.Name)
	} else if err != nil {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	_, err = users.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		hash, err := auth.HashPassword(in.Password, in.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		user := &store.User{
			ID:             uuid.New(),
			Email:          in.Email,
			Role:           store.RoleAdmin,
			IsActive:       true,
			HashedPassword: hash,
			AccountID:      account.ID,
			CreatedAt:      time.Now().UTC(),
		}
		if err := users.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Info("created admin user", "email", user.Email)
	} else if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	return nil
}
