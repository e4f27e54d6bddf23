package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/store"
)

func jobRows(j *store.Job) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "command", "status", "owner_id", "created_at"}).
		AddRow(j.ID, j.Name, j.Command, j.Status, j.OwnerID, j.CreatedAt)
}

func testJob() *store.Job {
	return &store.Job{
		ID:        uuid.New(),
		Name:      "build",
		Command:   "make all",
		Status:    store.StatusStopped,
		OwnerID:   uuid.New(),
		CreatedAt: time.Now().Truncate(time.Second),
	}
}

func TestCreateJob_Success(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	job := testJob()
	mock.ExpectExec(`INSERT INTO jobs`).
		WithArgs(job.ID, job.Name, job.Command, job.Status, job.OwnerID, job.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetJobByID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, name, command, status, owner_id, created_at FROM jobs WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetJobByID(context.Background(), id)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListJobs_ByOwner(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	job := testJob()
	mock.ExpectQuery(`SELECT j.id, j.name, j.command, j.status, j.owner_id, j.created_at FROM jobs j WHERE j.owner_id = \$1 ORDER BY j.created_at OFFSET \$2 LIMIT \$3`).
		WithArgs(job.OwnerID, 0, 100).
		WillReturnRows(jobRows(job))

	jobs, err := s.ListJobs(context.Background(), store.JobFilter{OwnerID: &job.OwnerID}, 0, 100)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(jobs) != 1 {
		t.Errorf("got %d jobs, want 1", len(jobs))
	}
}

func TestListJobs_ByAccountJoinsOwners(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	job := testJob()
	accountID := uuid.New()
	mock.ExpectQuery(`SELECT j.id, j.name, j.command, j.status, j.owner_id, j.created_at FROM jobs j JOIN users u ON u.id = j.owner_id WHERE u.account_id = \$1 ORDER BY j.created_at OFFSET \$2 LIMIT \$3`).
		WithArgs(accountID, 0, 100).
		WillReturnRows(jobRows(job))

	jobs, err := s.ListJobs(context.Background(), store.JobFilter{AccountID: &accountID}, 0, 100)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(jobs) != 1 {
		t.Errorf("got %d jobs, want 1", len(jobs))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListJobs_AccountAndStatus(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	job := testJob()
	job.Status = store.StatusRunning
	accountID := uuid.New()
	running := store.StatusRunning

	mock.ExpectQuery(`SELECT j.id, j.name, j.command, j.status, j.owner_id, j.created_at FROM jobs j JOIN users u ON u.id = j.owner_id WHERE u.account_id = \$1 AND j.status = \$2 ORDER BY j.created_at OFFSET \$3 LIMIT \$4`).
		WithArgs(accountID, running, 0, 100).
		WillReturnRows(jobRows(job))

	jobs, err := s.ListJobs(context.Background(), store.JobFilter{AccountID: &accountID, Status: &running}, 0, 100)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Status != store.StatusRunning {
		t.Errorf("unexpected jobs: %+v", jobs)
	}
}

func TestUpdateJob_StatusPatch(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	want := testJob()
	want.Status = store.StatusRunning
	running := store.StatusRunning

	mock.ExpectQuery(`UPDATE jobs SET status = \$1 WHERE id = \$2 RETURNING id, name, command, status, owner_id, created_at`).
		WithArgs(running, want.ID).
		WillReturnRows(jobRows(want))

	got, err := s.UpdateJob(context.Background(), want.ID, store.JobPatch{Status: &running})
	if err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}
	if got.Status != store.StatusRunning {
		t.Errorf("got status %s, want running", got.Status)
	}
}

func TestDeleteJob_Success(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.DeleteJob(context.Background(), id); err != nil {
		t.Fatalf("DeleteJob failed: %v", err)
	}
}

func TestCountJobs(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE status = \$1`).
		WithArgs(store.StatusRunning).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.CountJobs(context.Background(), store.StatusRunning)
	if err != nil {
		t.Fatalf("CountJobs failed: %v", err)
	}
	if count != 3 {
		t.Errorf("got count %d, want 3", count)
	}
}
