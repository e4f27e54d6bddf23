// Package store contains the database layer for jobmanager.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's privilege level, ordered admin > maintainer > dev.
type Role string

const (
	RoleDev        Role = "dev"
	RoleMaintainer Role = "maintainer"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleDev, RoleMaintainer, RoleAdmin:
		return true
	}
	return false
}

// Status is a job's running/stopped flag. Jobs are bookkeeping
// entries; the command is never executed.
type Status string

const (
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusRunning || s == StatusStopped
}

// Account is a tenant grouping of users. Global accounts may host
// administrators; regular accounts may not.
type Account struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	IsGlobal  bool
	CreatedAt time.Time
}

// User belongs to exactly one account and owns zero or more jobs.
type User struct {
	ID             uuid.UUID
	Email          string
	Role           Role
	IsActive       bool
	HashedPassword string
	AccountID      uuid.UUID
	CreatedAt      time.Time
}

// Job is a named unit with an opaque command string and a
// running/stopped status flag.
type Job struct {
	ID        uuid.UUID
	Name      string
	Command   string
	Status    Status
	OwnerID   uuid.UUID
	CreatedAt time.Time
}

// AccountPatch is a partial account update. Only non-nil fields are
// applied; unset fields are left untouched.
type AccountPatch struct {
	Name     *string
	IsActive *bool
	IsGlobal *bool
}

// UserPatch is a partial user update.
type UserPatch struct {
	Email          *string
	Role           *Role
	IsActive       *bool
	HashedPassword *string
}

// JobPatch is a partial job update.
type JobPatch struct {
	Name    *string
	Command *string
	Status  *Status
}

// UserFilter narrows user listings.
type UserFilter struct {
	AccountID *uuid.UUID
}

// JobFilter narrows job listings. OwnerID and AccountID scope
// ownership; Status filters by the running/stopped flag.
type JobFilter struct {
	OwnerID   *uuid.UUID
	AccountID *uuid.UUID
	Status    *Status
}
