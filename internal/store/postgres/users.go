package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/store"
)

const userColumns = "id, email, role, is_active, hashed_password, account_id, created_at"

func scanUser(row interface{ Scan(...any) error }) (*store.User, error) {
	var u store.User
	err := row.Scan(&u.ID, &u.Email, &u.Role, &u.IsActive, &u.HashedPassword, &u.AccountID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, user *store.User) error {
	query := `
		INSERT INTO users (id, email, role, is_active, hashed_password, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Role,
		user.IsActive,
		user.HashedPassword,
		user.AccountID,
		user.CreatedAt,
	)
	return mapError(err, "user not found")
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*store.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("user %s not found", id))
	}
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("user %s not found", email))
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context, filter store.UserFilter, offset, limit int) ([]store.User, error) {
	query := "SELECT " + userColumns + " FROM users"
	args := []any{}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += fmt.Sprintf(" WHERE account_id = $%d", len(args))
	}

	args = append(args, offset)
	query += fmt.Sprintf(" ORDER BY created_at OFFSET $%d", len(args))
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []store.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, patch store.UserPatch) (*store.User, error) {
	var set setClause
	if patch.Email != nil {
		set.add("email", *patch.Email)
	}
	if patch.Role != nil {
		set.add("role", *patch.Role)
	}
	if patch.IsActive != nil {
		set.add("is_active", *patch.IsActive)
	}
	if patch.HashedPassword != nil {
		set.add("hashed_password", *patch.HashedPassword)
	}
	if set.empty() {
		return s.GetUserByID(ctx, id)
	}

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		set.String(), set.next(), userColumns,
	)
	args := append(set.args, id)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("user %s not found", id))
	}
	return user, nil
}

// DeleteUser hard-deletes a user; the user's jobs go with it through
// the ON DELETE CASCADE rule.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "user %s not found", id)
	}
	return nil
}
