// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package patron

import (
	"context"

	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
)

// # Authorization Guards
//
// Guards are pure policy checks applied after identity resolution. They
// compose left-to-right: a handler resolves the patron once, then applies
// whichever guards its operation requires.

// RequireActive fails when the patron's account has been deactivated.
func RequireActive(current *Patron) error {
	if !current.IsActive {
		return apperr.Forbidden("Inactive patron")
	}
	return nil
}

// RequireSuperuser fails when the patron lacks administrative privileges.
func RequireSuperuser(current *Patron) error {
	if !current.IsSuperuser {
		return apperr.Forbidden("The patron doesn't have enough privileges")
	}
	return nil
}

// RequireSelf fails when the patron is acting on a resource owned by
// someone else. Superuser status does not bypass this check; privileged
// patron edits go through the dedicated su_update route.
func RequireSelf(current *Patron, ownerID string) error {
	if current.ID != ownerID {
		return apperr.Forbidden("Cannot act on another patron's resource")
	}
	return nil
}

// RequireOwner fails when the patron neither owns the resource nor holds
// administrative privileges. Catalog records may be curated by their
// proposer or by a superuser.
func RequireOwner(current *Patron, ownerID string) error {
	if current.IsSuperuser {
		return nil
	}
	if current.ID != ownerID {
		return apperr.Forbidden("Cannot act on another patron's resource")
	}
	return nil
}

// # Composite Resolution

// ResolveActive resolves the current patron and verifies the account is
// active. This is the baseline requirement for every catalog operation.
func ResolveActive(ctx context.Context, session postgres.Session, resolver Resolver) (*Patron, error) {
	current, err := resolver.Require(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := RequireActive(current); err != nil {
		return nil, err
	}
	return current, nil
}

// ResolveSuperuser resolves the current patron and verifies both activity
// and administrative privileges.
func ResolveSuperuser(ctx context.Context, session postgres.Session, resolver Resolver) (*Patron, error) {
	current, err := ResolveActive(ctx, session, resolver)
	if err != nil {
		return nil, err
	}
	if err := RequireSuperuser(current); err != nil {
		return nil, err
	}
	return current, nil
}
