// Package service contains the resource services for accounts, users
// and jobs. Each operation runs a single serial sequence: policy
// check, read, mutate, commit. Services never touch the transport
// layer; they return taxonomy errors the handlers map to statuses.
package service

import (
	"jobmanager/internal/apperr"
	"jobmanager/internal/policy"
)

// decisionErr converts a policy decision into a taxonomy error.
// Not-found denials carry the given detail so hidden resources are
// indistinguishable from absent ones.
func decisionErr(d policy.Decision, notFoundDetail string) error {
	switch d {
	case policy.DenyNotFound:
		return apperr.Wrap(apperr.ErrNotFound, "%s", notFoundDetail)
	case policy.DenyForbidden:
		return apperr.Wrap(apperr.ErrForbidden, "not enough privileges")
	}
	return nil
}
