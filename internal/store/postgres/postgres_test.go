package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"jobmanager/internal/apperr"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return &Store{db: db}, mock
}

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint}
}

func TestMapError_NoRows(t *testing.T) {
	err := mapError(sql.ErrNoRows, "account a1 not found")

	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "account a1 not found" {
		t.Errorf("unexpected detail: %q", err.Error())
	}
}

func TestMapError_UniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Constraint: "users_email_key"}

	err := mapError(pqErr, "user not found")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestMapError_PassesThroughOtherErrors(t *testing.T) {
	cause := errors.New("connection reset")

	err := mapError(cause, "whatever")
	if !errors.Is(err, cause) {
		t.Errorf("expected original error, got %v", err)
	}
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrConflict) {
		t.Errorf("unexpected taxonomy match for %v", err)
	}
}

func TestSetClause_Ordering(t *testing.T) {
	var set setClause
	set.add("name", "acme")
	set.add("is_active", false)

	if set.String() != "name = $1, is_active = $2" {
		t.Errorf("unexpected SET fragment: %s", set.String())
	}
	if set.next() != 3 {
		t.Errorf("expected next placeholder 3, got %d", set.next())
	}
}
