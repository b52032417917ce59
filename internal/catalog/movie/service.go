// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/platform/validate"
	"github.com/taibuivan/mediateca/internal/repo"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// # Service Layer

// Service orchestrates proposal and curation rules for movie records.
type Service struct {
	store  *Store
	logger *slog.Logger
}

// NewService constructs a new movie [Service].
func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// # Submission

// CreateInput defines the payload for proposing a new movie.
type CreateInput struct {
	TitleOrig   string
	TitleEn     string
	TitleIt     *string
	ReleaseDate *time.Time
	RunningTime *int
	Notes       *string
	Link        *string
}

/*
Create proposes a new movie record on behalf of the submitting patron.

Description: The duplicate check matches the English title against all
three title columns, so a record cannot be re-proposed under a translation
of an existing entry.

Returns:
  - *Movie: The stored record
  - error: Validation, conflict, or storage failures
*/
func (service *Service) Create(ctx context.Context, session postgres.Session, proposer *patron.Patron, input CreateInput) (*Movie, error) {
	v := &validate.Validator{}
	v.Required("title_orig", input.TitleOrig).
		Required("title_en", input.TitleEn)
	if input.RunningTime != nil {
		v.Min("running_time", *input.RunningTime, 1)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing, err := service.store.FindByTitle(ctx, session, input.TitleEn)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("A movie with this title already exists in the system")
	}

	now := time.Now().UTC()
	record := &Movie{
		TitleOrig:   input.TitleOrig,
		TitleEn:     input.TitleEn,
		TitleIt:     input.TitleIt,
		ReleaseDate: input.ReleaseDate,
		RunningTime: input.RunningTime,
		Notes:       input.Notes,
		Link:        input.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := service.store.Records().Create(ctx, session, record, map[string]any{
		"patronid": proposer.ID,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("movie_created",
		slog.String("movie_id", stored.ID),
		slog.String("patron_id", proposer.ID),
	)

	return stored, nil
}

// # Lookup

// Get retrieves a movie by ID, failing with apperr.NotFound when absent.
func (service *Service) Get(ctx context.Context, session postgres.Session, id string) (*Movie, error) {
	found, err := service.store.Records().Read(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("Movie")
	}
	return found, nil
}

// List retrieves a page of movies with the total count.
func (service *Service) List(ctx context.Context, session postgres.Session, params pagination.Params) ([]Movie, int64, error) {
	records, err := service.store.Records().ReadMany(ctx, session, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := service.store.Records().Count(ctx, session)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// # Curation

// UpdateInput defines the mutable fields of a movie record. Nil pointers
// mark fields the client omitted.
type UpdateInput struct {
	TitleOrig   *string
	TitleEn     *string
	TitleIt     *string
	ReleaseDate *time.Time
	RunningTime *int
	Notes       *string
	Link        *string
}

/*
Update applies a partial patch to a movie record. The proposing patron
or a superuser may edit the submission.

Returns:
  - *Movie: The refreshed record
  - error: Validation failures, apperr.NotFound, apperr.Forbidden, or
    storage failures
*/
func (service *Service) Update(ctx context.Context, session postgres.Session, editor *patron.Patron, id string, input UpdateInput) (*Movie, error) {
	existing, err := service.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if err := patron.RequireOwner(editor, existing.ProposedBy); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if input.TitleOrig != nil {
		v.Required("title_orig", *input.TitleOrig)
	}
	if input.TitleEn != nil {
		v.Required("title_en", *input.TitleEn)
	}
	if input.RunningTime != nil {
		v.Min("running_time", *input.RunningTime, 1)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	patch := &repo.Patch{}
	repo.SetIfPresent(patch, "titleorig", input.TitleOrig)
	repo.SetIfPresent(patch, "titleen", input.TitleEn)
	repo.SetIfPresent(patch, "titleit", input.TitleIt)
	repo.SetIfPresent(patch, "releasedate", input.ReleaseDate)
	repo.SetIfPresent(patch, "runningtime", input.RunningTime)
	repo.SetIfPresent(patch, "notes", input.Notes)
	repo.SetIfPresent(patch, "link", input.Link)

	if !patch.IsEmpty() {
		patch.Set("updatedat", time.Now().UTC())
	}

	updated, err := service.store.Records().Update(ctx, session, id, *patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("Movie")
	}

	service.logger.Info("movie_updated", slog.String("movie_id", id))

	return updated, nil
}

/*
Delete removes a movie record. The route layer restricts this to superusers.
*/
func (service *Service) Delete(ctx context.Context, session postgres.Session, id string) error {
	if _, err := service.Get(ctx, session, id); err != nil {
		return err
	}

	if err := service.store.Records().Delete(ctx, session, id); err != nil {
		return err
	}

	service.logger.Warn("movie_deleted", slog.String("movie_id", id))

	return nil
}
