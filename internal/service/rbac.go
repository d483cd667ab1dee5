package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/repository"
)

// Authorizer answers exactly one question: does this user hold one of the
// allowed roles on this event?  It is a pure decision over a single
// membership lookup — no mutation, no caching, no super-admin bypass, and
// no inheritance between events.
type Authorizer struct {
	memberships MembershipStore
}

func NewAuthorizer(memberships MembershipStore) *Authorizer {
	return &Authorizer{memberships: memberships}
}

// RequireRoles returns nil when the user's membership role on the event is
// in the allowed set, ErrForbidden when the membership is absent or its
// role insufficient.
func (a *Authorizer) RequireRoles(ctx context.Context, userID, eventID uint64, allowed ...model.OrganiserRole) error {
	role, err := a.memberships.GetRole(ctx, userID, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("looking up membership: %w", err)
	}
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return ErrForbidden
}
