// Package policy is the centralized authorization layer: pure
// decision functions mapping (actor, resource, action) to a Decision,
// consulted before every protected operation. It performs no I/O;
// callers load the resources a rule needs and pass them in.
package policy

import (
	"github.com/google/uuid"

	"jobmanager/internal/store"
)

// Decision is the outcome of a policy check. Resources outside the
// caller's visibility are denied as not-found so their existence does
// not leak; coarse role gates on list/create endpoints deny as
// forbidden directly.
type Decision int

const (
	Allow Decision = iota
	DenyNotFound
	DenyForbidden
)

// ListAccounts gates the account collection: admin only.
func ListAccounts(actor *store.User) Decision {
	if actor.Role == store.RoleAdmin {
		return Allow
	}
	return DenyForbidden
}

// ReadAccount allows admins to read any account and everyone else
// only their own. Other accounts are reported as absent.
func ReadAccount(actor *store.User, accountID uuid.UUID) Decision {
	if actor.Role == store.RoleAdmin || actor.AccountID == accountID {
		return Allow
	}
	return DenyNotFound
}

// ManageAccount gates account creation, update, activation,
// deactivation and deletion: admin only.
func ManageAccount(actor *store.User) Decision {
	if actor.Role == store.RoleAdmin {
		return Allow
	}
	return DenyForbidden
}

// UserListScope returns the account the user listing must be narrowed
// to, or nil when the actor may see every user.
func UserListScope(actor *store.User) *uuid.UUID {
	if actor.Role == store.RoleAdmin {
		return nil
	}
	accountID := actor.AccountID
	return &accountID
}

// ReadUser allows admins to read any user and everyone else only
// users of their own account.
func ReadUser(actor, target *store.User) Decision {
	if actor.Role == store.RoleAdmin || actor.AccountID == target.AccountID {
		return Allow
	}
	return DenyNotFound
}

// CreateUser gates user creation. Admins may create any role in any
// account. Maintainers may create non-admin users in their own
// account only. Developers may not create users. The check runs
// before the target account is loaded, so it takes only its ID.
func CreateUser(actor *store.User, targetAccountID uuid.UUID, role store.Role) Decision {
	switch actor.Role {
	case store.RoleAdmin:
		return Allow
	case store.RoleMaintainer:
		if role == store.RoleAdmin {
			return DenyForbidden
		}
		if targetAccountID != actor.AccountID {
			return DenyForbidden
		}
		return Allow
	}
	return DenyForbidden
}

// ManageUser gates user update, activation, deactivation and
// deletion: admin anywhere, maintainer within the own account.
// Users of other accounts are reported as absent; a same-account
// denial is a plain privilege failure.
func ManageUser(actor, target *store.User) Decision {
	if actor.Role == store.RoleAdmin {
		return Allow
	}
	if actor.AccountID != target.AccountID {
		return DenyNotFound
	}
	if actor.Role == store.RoleMaintainer {
		return Allow
	}
	return DenyForbidden
}

// ListAllJobs gates the unscoped job listing: admin only.
func ListAllJobs(actor *store.User) Decision {
	if actor.Role == store.RoleAdmin {
		return Allow
	}
	return DenyForbidden
}

// AccessJob gates reading, running, stopping and deleting a single
// job. The owner is always allowed; within the owner's account the
// caller additionally needs maintainer or admin role; admins are
// allowed regardless of account. Jobs of other accounts are reported
// as absent.
func AccessJob(actor, owner *store.User) Decision {
	if actor.ID == owner.ID {
		return Allow
	}
	if actor.Role == store.RoleAdmin {
		return Allow
	}
	if actor.AccountID != owner.AccountID {
		return DenyNotFound
	}
	if actor.Role == store.RoleMaintainer {
		return Allow
	}
	return DenyForbidden
}
