package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"jobmanager/internal/apperr"
	"jobmanager/internal/store"
)

// fakeStore is an in-memory implementation of the store interfaces
// honoring the same contracts as the postgres store: not-found and
// conflict errors from the taxonomy, patch-only updates, cascading
// deletes.
type fakeStore struct {
	accounts map[uuid.UUID]*store.Account
	users    map[uuid.UUID]*store.User
	jobs     map[uuid.UUID]*store.Job

	// forcedErr, when set, is returned by every call.
	forcedErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: map[uuid.UUID]*store.Account{},
		users:    map[uuid.UUID]*store.User{},
		jobs:     map[uuid.UUID]*store.Job{},
	}
}

func (f *fakeStore) CreateAccount(ctx context.Context, account *store.Account) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for _, a := range f.accounts {
		if a.Name == account.Name {
			return apperr.Wrap(apperr.ErrConflict, "duplicate key: accounts_name_key")
		}
	}
	cp := *account
	f.accounts[account.ID] = &cp
	return nil
}

func (f *fakeStore) GetAccountByID(ctx context.Context, id uuid.UUID) (*store.Account, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if a, ok := f.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperr.Wrap(apperr.ErrNotFound, "account %s not found", id)
}

func (f *fakeStore) GetAccountByName(ctx context.Context, name string) (*store.Account, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for _, a := range f.accounts {
		if a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperr.Wrap(apperr.ErrNotFound, "account %s not found", name)
}

func (f *fakeStore) ListAccounts(ctx context.Context, offset, limit int) ([]store.Account, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := []store.Account{}
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, offset, limit), nil
}

func (f *fakeStore) UpdateAccount(ctx context.Context, id uuid.UUID, patch store.AccountPatch) (*store.Account, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, apperr.Wrap(apperr.ErrNotFound, "account %s not found", id)
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.IsActive != nil {
		a.IsActive = *patch.IsActive
	}
	if patch.IsGlobal != nil {
		a.IsGlobal = *patch.IsGlobal
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.accounts[id]; !ok {
		return apperr.Wrap(apperr.ErrNotFound, "account %s not found", id)
	}
	delete(f.accounts, id)
	for uid, u := range f.users {
		if u.AccountID == id {
			for jid, j := range f.jobs {
				if j.OwnerID == uid {
					delete(f.jobs, jid)
				}
			}
			delete(f.users, uid)
		}
	}
	return nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *store.User) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperr.Wrap(apperr.ErrConflict, "duplicate key: users_email_key")
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id uuid.UUID) (*store.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.Wrap(apperr.ErrNotFound, "user %s not found", id)
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.Wrap(apperr.ErrNotFound, "user %s not found", email)
}

func (f *fakeStore) ListUsers(ctx context.Context, filter store.UserFilter, offset, limit int) ([]store.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := []store.User{}
	for _, u := range f.users {
		if filter.AccountID != nil && u.AccountID != *filter.AccountID {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, offset, limit), nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, id uuid.UUID, patch store.UserPatch) (*store.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.Wrap(apperr.ErrNotFound, "user %s not found", id)
	}
	if patch.Email != nil {
		for oid, other := range f.users {
			if oid != id && other.Email == *patch.Email {
				return nil, apperr.Wrap(apperr.ErrConflict, "duplicate key: users_email_key")
			}
		}
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.HashedPassword != nil {
		u.HashedPassword = *patch.HashedPassword
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.users[id]; !ok {
		return apperr.Wrap(apperr.ErrNotFound, "user %s not found", id)
	}
	delete(f.users, id)
	for jid, j := range f.jobs {
		if j.OwnerID == id {
			delete(f.jobs, jid)
		}
	}
	return nil
}

func (f *fakeStore) CreateJob(ctx context.Context, job *store.Job) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}

func (f *fakeStore) GetJobByID(ctx context.Context, id uuid.UUID) (*store.Job, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if j, ok := f.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, apperr.Wrap(apperr.ErrNotFound, "job %s not found", id)
}

func (f *fakeStore) ListJobs(ctx context.Context, filter store.JobFilter, offset, limit int) ([]store.Job, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := []store.Job{}
	for _, j := range f.jobs {
		if filter.OwnerID != nil && j.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.AccountID != nil {
			owner, ok := f.users[j.OwnerID]
			if !ok || owner.AccountID != *filter.AccountID {
				continue
			}
		}
		if filter.Status != nil && j.Status != *filter.Status {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, offset, limit), nil
}

func (f *fakeStore) UpdateJob(ctx context.Context, id uuid.UUID, patch store.JobPatch) (*store.Job, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperr.Wrap(apperr.ErrNotFound, "job %s not found", id)
	}
	if patch.Name != nil {
		j.Name = *patch.Name
	}
	if patch.Command != nil {
		j.Command = *patch.Command
	}
	if patch.Status != nil {
		j.Status = *patch.Status
	}
	cp := *j
	return &cp, nil
}

func (f *fakeStore) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.jobs[id]; !ok {
		return apperr.Wrap(apperr.ErrNotFound, "job %s not found", id)
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeStore) CountJobs(ctx context.Context, status store.Status) (int64, error) {
	if f.forcedErr != nil {
		return 0, f.forcedErr
	}
	var count int64
	for _, j := range f.jobs {
		if j.Status == status {
			count++
		}
	}
	return count, nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// Seeding helpers shared across service tests.

var seedCounter int

func (f *fakeStore) seedAccount(name string, global bool) *store.Account {
	seedCounter++
	account := &store.Account{
		ID:        uuid.New(),
		Name:      name,
		IsActive:  true,
		IsGlobal:  global,
		CreatedAt: time.Unix(int64(seedCounter), 0).UTC(),
	}
	f.accounts[account.ID] = account
	return account
}

func (f *fakeStore) seedUser(email string, role store.Role, accountID uuid.UUID) *store.User {
	seedCounter++
	user := &store.User{
		ID:        uuid.New(),
		Email:     email,
		Role:      role,
		IsActive:  true,
		AccountID: accountID,
		CreatedAt: time.Unix(int64(seedCounter), 0).UTC(),
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeStore) seedJob(name string, status store.Status, ownerID uuid.UUID) *store.Job {
	seedCounter++
	job := &store.Job{
		ID:        uuid.New(),
		Name:      name,
		Command:   "make all",
		Status:    status,
		OwnerID:   ownerID,
		CreatedAt: time.Unix(int64(seedCounter), 0).UTC(),
	}
	f.jobs[job.ID] = job
	return job
}
