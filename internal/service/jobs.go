package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/policy"
	"jobmanager/internal/store"
)

// ListScope selects which jobs a listing covers.
type ListScope int

const (
	// ScopeAccount lists jobs owned by any user in the caller's account.
	ScopeAccount ListScope = iota
	// ScopeOwn lists only the caller's jobs.
	ScopeOwn
	// ScopeAll lists every job; admin only.
	ScopeAll
)

// JobService orchestrates policy checks and persistence for the job
// lifecycle. Jobs are bookkeeping entries: run and stop flip the
// status flag and never touch an operating-system process.
type JobService struct {
	jobs  store.JobStore
	users store.UserStore
}

// NewJobService creates a new JobService.
func NewJobService(jobs store.JobStore, users store.UserStore) *JobService {
	return &JobService{jobs: jobs, users: users}
}

// List returns jobs in the requested scope, optionally filtered by
// status.
func (s *JobService) List(ctx context.Context, actor *store.User, scope ListScope, status *store.Status, offset, limit int) ([]store.Job, error) {
	filter := store.JobFilter{Status: status}

	switch scope {
	case ScopeOwn:
		ownerID := actor.ID
		filter.OwnerID = &ownerID
	case ScopeAll:
		if err := decisionErr(policy.ListAllJobs(actor), ""); err != nil {
			return nil, err
		}
	default:
		accountID := actor.AccountID
		filter.AccountID = &accountID
	}

	return s.jobs.ListJobs(ctx, filter, offset, limit)
}

// Get returns a single job the actor may access.
func (s *JobService) Get(ctx context.Context, actor *store.User, id uuid.UUID) (*store.Job, error) {
	return s.authorize(ctx, actor, id)
}

// Create persists a new job owned by the actor. Status defaults to
// stopped unless the caller explicitly requests an immediate running
// state.
func (s *JobService) Create(ctx context.Context, actor *store.User, name, command string, status store.Status) (*store.Job, error) {
	if name == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "job name is required")
	}
	if command == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "job command is required")
	}
	if status == "" {
		status = store.StatusStopped
	}
	if !status.Valid() {
		return nil, apperr.Wrap(apperr.ErrValidation, "unknown status %q", status)
	}

	job := &store.Job{
		ID:        uuid.New(),
		Name:      name,
		Command:   command,
		Status:    status,
		OwnerID:   actor.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Run flips a stopped job to running. Running a job that is already
// running is rejected, not silently accepted.
func (s *JobService) Run(ctx context.Context, actor *store.User, id uuid.UUID) (*store.Job, error) {
	return s.transition(ctx, actor, id, store.StatusRunning)
}

// Stop flips a running job to stopped.
func (s *JobService) Stop(ctx context.Context, actor *store.User, id uuid.UUID) (*store.Job, error) {
	return s.transition(ctx, actor, id, store.StatusStopped)
}

func (s *JobService) transition(ctx context.Context, actor *store.User, id uuid.UUID, target store.Status) (*store.Job, error) {
	job, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if job.Status == target {
		return nil, apperr.Wrap(apperr.ErrInvalidState, "job %s is already %s", id, target)
	}

	return s.jobs.UpdateJob(ctx, id, store.JobPatch{Status: &target})
}

// Delete removes a job immediately and irreversibly.
func (s *JobService) Delete(ctx context.Context, actor *store.User, id uuid.UUID) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	return s.jobs.DeleteJob(ctx, id)
}

// authorize loads a job and its owner and applies the single-job
// access rule: owner always, same-account maintainer or admin,
// admin anywhere.
func (s *JobService) authorize(ctx context.Context, actor *store.User, id uuid.UUID) (*store.Job, error) {
	job, err := s.jobs.GetJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetUserByID(ctx, job.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := decisionErr(policy.AccessJob(actor, owner), fmt.Sprintf("job %s not found", id)); err != nil {
		return nil, err
	}
	return job, nil
}
