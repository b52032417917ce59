// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package patron

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/platform/sec"
	"github.com/taibuivan/mediateca/internal/platform/validate"
	"github.com/taibuivan/mediateca/internal/repo"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// # Service Layer

// Service orchestrates registration, profile updates, and credential checks
// for patrons. Every method operates on the caller's session so the whole
// request commits or rolls back as one transaction.
type Service struct {
	store  *Store
	logger *slog.Logger
}

// NewService constructs a new patron [Service].
func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Store exposes the underlying store for the authentication gate.
func (service *Service) Store() *Store {
	return service.store
}

// # Registration

// RegisterInput defines the payload for creating a new patron.
type RegisterInput struct {
	Username string
	Email    string
	Name     string
	Password string
}

/*
Register creates a new patron account.

Description: Validates the input, rejects duplicate usernames, hashes the
password, and stores the account. New accounts are active non-superusers.

Parameters:
  - context: context.Context
  - session: postgres.Session
  - input: RegisterInput

Returns:
  - *Patron: The stored patron
  - error: Validation, conflict, or storage failures
*/
func (service *Service) Register(ctx context.Context, session postgres.Session, input RegisterInput) (*Patron, error) {
	v := &validate.Validator{}
	v.Required("username", input.Username).
		Matches("username", input.Username, UsernamePattern,
			"Must start with a lowercase letter and contain only lowercase letters, digits, and underscores").
		Required("name", input.Name).
		Email("email", input.Email).
		MinLen("password", input.Password, 8)

	if err := v.Err(); err != nil {
		return nil, err
	}

	// Business: usernames are unique across the system
	existing, err := service.store.FindByUsername(ctx, session, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("A patron with this username already exists in the system")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now().UTC()
	record := &Patron{
		Username:    input.Username,
		Email:       input.Email,
		Name:        NormalizeName(input.Name),
		IsActive:    true,
		IsSuperuser: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The digest travels through the repository's extra bindings, mirroring
	// how server-assigned columns are injected for media records.
	stored, err := service.store.Records().Create(ctx, session, record, map[string]any{
		"hashedpassword": hashedPassword,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("patron_registered", slog.String("patron_id", stored.ID))

	return stored, nil
}

// # Lookup

/*
Get retrieves a patron by ID.

Returns:
  - *Patron: The patron
  - error: apperr.NotFound when the ID names no patron
*/
func (service *Service) Get(ctx context.Context, session postgres.Session, id string) (*Patron, error) {
	found, err := service.store.Records().Read(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("Patron")
	}
	return found, nil
}

/*
List retrieves a page of patrons with the total count for pagination metadata.
*/
func (service *Service) List(ctx context.Context, session postgres.Session, params pagination.Params) ([]Patron, int64, error) {
	patrons, err := service.store.Records().ReadMany(ctx, session, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := service.store.Records().Count(ctx, session)
	if err != nil {
		return nil, 0, err
	}

	return patrons, total, nil
}

// # Profile Updates

// UpdateInput defines the mutable subset of patron fields. Nil pointers mark
// fields the client omitted; those columns are never touched.
type UpdateInput struct {
	Username *string
	Email    *string
	Name     *string
	Password *string
}

// SuperuserUpdateInput extends [UpdateInput] with the administrative flags
// only superusers may change.
type SuperuserUpdateInput struct {
	UpdateInput
	IsActive    *bool
	IsSuperuser *bool
}

/*
Update applies a partial patch to a patron's own profile.

Description: Passwords are hashed before storage; the plaintext never reaches
a patch. Names are normalized the same way as at registration.

Returns:
  - *Patron: The refreshed patron
  - error: Validation failures, apperr.NotFound, or storage failures
*/
func (service *Service) Update(ctx context.Context, session postgres.Session, id string, input UpdateInput) (*Patron, error) {
	patch, err := service.buildPatch(input)
	if err != nil {
		return nil, err
	}
	return service.applyPatch(ctx, session, id, patch)
}

/*
UpdateAsSuperuser applies a partial patch including the administrative flags.
*/
func (service *Service) UpdateAsSuperuser(ctx context.Context, session postgres.Session, id string, input SuperuserUpdateInput) (*Patron, error) {
	patch, err := service.buildPatch(input.UpdateInput)
	if err != nil {
		return nil, err
	}

	repo.SetIfPresent(patch, "isactive", input.IsActive)
	repo.SetIfPresent(patch, "issuperuser", input.IsSuperuser)

	return service.applyPatch(ctx, session, id, patch)
}

// buildPatch validates the shared update fields and converts them to column
// assignments.
func (service *Service) buildPatch(input UpdateInput) (*repo.Patch, error) {
	v := &validate.Validator{}
	if input.Username != nil {
		v.Required("username", *input.Username).
			Matches("username", *input.Username, UsernamePattern,
				"Must start with a lowercase letter and contain only lowercase letters, digits, and underscores")
	}
	if input.Email != nil {
		v.Email("email", *input.Email)
	}
	if input.Name != nil {
		v.Required("name", *input.Name)
	}
	if input.Password != nil {
		v.MinLen("password", *input.Password, 8)
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	patch := &repo.Patch{}
	repo.SetIfPresent(patch, "username", input.Username)
	repo.SetIfPresent(patch, "email", input.Email)

	if input.Name != nil {
		patch.Set("name", NormalizeName(*input.Name))
	}

	if input.Password != nil {
		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		patch.Set("hashedpassword", hashedPassword)
	}

	return patch, nil
}

// applyPatch stamps the update time and persists the patch.
func (service *Service) applyPatch(ctx context.Context, session postgres.Session, id string, patch *repo.Patch) (*Patron, error) {
	if !patch.IsEmpty() {
		patch.Set("updatedat", time.Now().UTC())
	}

	updated, err := service.store.Records().Update(ctx, session, id, *patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("Patron")
	}

	service.logger.Info("patron_updated", slog.String("patron_id", id))

	return updated, nil
}

// # Removal

/*
Delete removes a patron account.

Returns:
  - error: apperr.NotFound when the ID names no patron, or storage failures
*/
func (service *Service) Delete(ctx context.Context, session postgres.Session, id string) error {
	existing, err := service.store.Records().Read(ctx, session, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("Patron")
	}

	if err := service.store.Records().Delete(ctx, session, id); err != nil {
		return err
	}

	service.logger.Warn("patron_deleted", slog.String("patron_id", id))

	return nil
}

// # Credential Verification

/*
Authenticate verifies a username/password pair.

Description: A missing username and a wrong password are indistinguishable to
the caller, so login responses cannot be used to probe for valid usernames.

Returns:
  - *Patron: The authenticated patron, or nil when the credentials are wrong
  - error: Storage failures only
*/
func (service *Service) Authenticate(ctx context.Context, session postgres.Session, username, password string) (*Patron, error) {
	found, err := service.store.FindByUsername(ctx, session, username)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}

	if !sec.CheckPasswordHash(password, found.HashedPassword) {
		return nil, nil
	}

	return found, nil
}
