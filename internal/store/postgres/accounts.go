package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/store"
)

const accountColumns = "id, name, is_active, is_global, created_at"

func scanAccount(row interface{ Scan(...any) error }) (*store.Account, error) {
	var a store.Account
	err := row.Scan(&a.ID, &a.Name, &a.IsActive, &a.IsGlobal, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, account *store.Account) error {
	query := `
		INSERT INTO accounts (id, name, is_active, is_global, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.IsActive,
		account.IsGlobal,
		account.CreatedAt,
	)
	return mapError(err, "account not found")
}

func (s *Store) GetAccountByID(ctx context.Context, id uuid.UUID) (*store.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE id = $1"

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("account %s not found", id))
	}
	return account, nil
}

func (s *Store) GetAccountByName(ctx context.Context, name string) (*store.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE name = $1"

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("account %s not found", name))
	}
	return account, nil
}

func (s *Store) ListAccounts(ctx context.Context, offset, limit int) ([]store.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts ORDER BY created_at OFFSET $1 LIMIT $2"

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []store.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// UpdateAccount applies only the non-nil patch fields and returns the
// post-commit row. An empty patch reads the current row back.
func (s *Store) UpdateAccount(ctx context.Context, id uuid.UUID, patch store.AccountPatch) (*store.Account, error) {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.IsActive != nil {
		set.add("is_active", *patch.IsActive)
	}
	if patch.IsGlobal != nil {
		set.add("is_global", *patch.IsGlobal)
	}
	if set.empty() {
		return s.GetAccountByID(ctx, id)
	}

	query := fmt.Sprintf(
		"UPDATE accounts SET %s WHERE id = $%d RETURNING %s",
		set.String(), set.next(), accountColumns,
	)
	args := append(set.args, id)

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("account %s not found", id))
	}
	return account, nil
}

// DeleteAccount hard-deletes an account; users and their jobs go with
// it through the ON DELETE CASCADE rules.
func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "account %s not found", id)
	}
	return nil
}
