// Package postgres implements the store interfaces using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"jobmanager/internal/apperr"
)

// Store provides PostgreSQL-backed implementations of all repositories.
type Store struct {
	db *sql.DB
}

// New connects to PostgreSQL and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying connection pool for migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks database connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// mapError translates driver-level failures into the application
// error taxonomy. Unique violations (SQLSTATE 23505) become conflicts,
// missing rows become not-found.
func mapError(err error, notFoundDetail string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Wrap(apperr.ErrNotFound, "%s", notFoundDetail)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return apperr.Wrap(apperr.ErrConflict, "duplicate key: %s", pqErr.Constraint)
	}
	return err
}

// setClause builds the SET fragment for a partial update. Columns are
// appended in a fixed order so query text stays deterministic.
type setClause struct {
	fragments []string
	args      []any
}

func (c *setClause) add(column string, value any) {
	c.fragments = append(c.fragments, fmt.Sprintf("%s = $%d", column, len(c.args)+1))
	c.args = append(c.args, value)
}

func (c *setClause) empty() bool {
	return len(c.fragments) == 0
}

func (c *setClause) String() string {
	return strings.Join(c.fragments, ", ")
}

// next returns the placeholder index for the argument after the SET
// fragment, e.g. the WHERE clause parameter.
func (c *setClause) next() int {
	return len(c.args) + 1
}
