package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/store"
)

const jobColumns = "id, name, command, status, owner_id, created_at"

func scanJob(row interface{ Scan(...any) error }) (*store.Job, error) {
	var j store.Job
	err := row.Scan(&j.ID, &j.Name, &j.Command, &j.Status, &j.OwnerID, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *Store) CreateJob(ctx context.Context, job *store.Job) error {
	query := `
		INSERT INTO jobs (id, name, command, status, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		job.ID,
		job.Name,
		job.Command,
		job.Status,
		job.OwnerID,
		job.CreatedAt,
	)
	return mapError(err, "job not found")
}

func (s *Store) GetJobByID(ctx context.Context, id uuid.UUID) (*store.Job, error) {
	query := "SELECT " + jobColumns + " FROM jobs WHERE id = $1"

	job, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("job %s not found", id))
	}
	return job, nil
}

// ListJobs returns jobs narrowed by the filter. Scoping by account
// joins through the owning user's account_id.
func (s *Store) ListJobs(ctx context.Context, filter store.JobFilter, offset, limit int) ([]store.Job, error) {
	cols := make([]string, 0, 6)
	for _, c := range strings.Split(jobColumns, ", ") {
		cols = append(cols, "j."+c)
	}
	query := "SELECT " + strings.Join(cols, ", ") + " FROM jobs j"

	args := []any{}
	conds := []string{}

	if filter.AccountID != nil {
		query += " JOIN users u ON u.id = j.owner_id"
		args = append(args, *filter.AccountID)
		conds = append(conds, fmt.Sprintf("u.account_id = $%d", len(args)))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conds = append(conds, fmt.Sprintf("j.owner_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, offset)
	query += fmt.Sprintf(" ORDER BY j.created_at OFFSET $%d", len(args))
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []store.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (s *Store) UpdateJob(ctx context.Context, id uuid.UUID, patch store.JobPatch) (*store.Job, error) {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Command != nil {
		set.add("command", *patch.Command)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if set.empty() {
		return s.GetJobByID(ctx, id)
	}

	query := fmt.Sprintf(
		"UPDATE jobs SET %s WHERE id = $%d RETURNING %s",
		set.String(), set.next(), jobColumns,
	)
	args := append(set.args, id)

	job, err := scanJob(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("job %s not found", id))
	}
	return job, nil
}

func (s *Store) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "job %s not found", id)
	}
	return nil
}

// CountJobs reports how many jobs currently carry the given status.
func (s *Store) CountJobs(ctx context.Context, status store.Status) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs WHERE status = $1", status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
