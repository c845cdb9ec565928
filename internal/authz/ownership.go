// Package authz holds the ownership check shared by every managed resource
// kind. Role seniority lives in internal/auth and is never consulted here;
// the two authorization universes are disjoint.
package authz

import (
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// Owned is a resource bound to a single managing staff identity. Ownership is
// set at creation and immutable afterward.
type Owned interface {
	OwnerID() string
}

// Authorize returns nil when callerID manages the resource, Forbidden
// otherwise. Comparison is raw string equality on identity values; no
// case-folding. Pure function of the two inputs; callers handle logging.
func Authorize(callerID string, resource Owned) error {
	if resource == nil || callerID == "" || callerID != resource.OwnerID() {
		return apperrors.NewForbidden("resource is not managed by caller")
	}
	return nil
}
