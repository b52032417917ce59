// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

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

// Service orchestrates proposal and curation rules for anime records.
type Service struct {
	store  *Store
	logger *slog.Logger
}

// NewService constructs a new anime [Service].
func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// # Submission

// CreateInput defines the payload for proposing a new anime.
type CreateInput struct {
	TitleEn     string
	TitleJp     *string
	SeasonAnime *int
	Year        *int
	SeasonYear  *string
	Notes       *string
	Link        *string
}

/*
Create proposes a new anime record on behalf of the submitting patron.

Description: Rejects duplicate English titles, stamps timestamps, and binds
the record to its proposer through the repository's extra bindings.

Returns:
  - *Anime: The stored record
  - error: Validation, conflict, or storage failures
*/
func (service *Service) Create(ctx context.Context, session postgres.Session, proposer *patron.Patron, input CreateInput) (*Anime, error) {
	v := &validate.Validator{}
	v.Required("title_en", input.TitleEn)
	if input.Year != nil {
		v.Min("year", *input.Year, 1900)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing, err := service.store.FindByTitle(ctx, session, input.TitleEn)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("An anime with this title already exists in the system")
	}

	now := time.Now().UTC()
	record := &Anime{
		TitleEn:     input.TitleEn,
		TitleJp:     input.TitleJp,
		SeasonAnime: input.SeasonAnime,
		Year:        input.Year,
		SeasonYear:  input.SeasonYear,
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

	service.logger.Info("anime_created",
		slog.String("anime_id", stored.ID),
		slog.String("patron_id", proposer.ID),
	)

	return stored, nil
}

// # Lookup

// Get retrieves an anime by ID, failing with apperr.NotFound when absent.
func (service *Service) Get(ctx context.Context, session postgres.Session, id string) (*Anime, error) {
	found, err := service.store.Records().Read(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("Anime")
	}
	return found, nil
}

// List retrieves a page of anime with the total count.
func (service *Service) List(ctx context.Context, session postgres.Session, params pagination.Params) ([]Anime, int64, error) {
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

// UpdateInput defines the mutable fields of an anime record. Nil pointers
// mark fields the client omitted.
type UpdateInput struct {
	TitleEn     *string
	TitleJp     *string
	SeasonAnime *int
	Year        *int
	SeasonYear  *string
	Notes       *string
	Link        *string
}

/*
Update applies a partial patch to an anime record. The proposing patron
or a superuser may edit the submission.

Returns:
  - *Anime: The refreshed record
  - error: Validation failures, apperr.NotFound, apperr.Forbidden, or
    storage failures
*/
func (service *Service) Update(ctx context.Context, session postgres.Session, editor *patron.Patron, id string, input UpdateInput) (*Anime, error) {
	existing, err := service.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if err := patron.RequireOwner(editor, existing.ProposedBy); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if input.TitleEn != nil {
		v.Required("title_en", *input.TitleEn)
	}
	if input.Year != nil {
		v.Min("year", *input.Year, 1900)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	patch := &repo.Patch{}
	repo.SetIfPresent(patch, "titleen", input.TitleEn)
	repo.SetIfPresent(patch, "titlejp", input.TitleJp)
	repo.SetIfPresent(patch, "seasonanime", input.SeasonAnime)
	repo.SetIfPresent(patch, "year", input.Year)
	repo.SetIfPresent(patch, "seasonyear", input.SeasonYear)
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
		return nil, apperr.NotFound("Anime")
	}

	service.logger.Info("anime_updated", slog.String("anime_id", id))

	return updated, nil
}

/*
Delete removes an anime record. The route layer restricts this to superusers.

Returns:
  - error: apperr.NotFound when the ID names no record, or storage failures
*/
func (service *Service) Delete(ctx context.Context, session postgres.Session, id string) error {
	if _, err := service.Get(ctx, session, id); err != nil {
		return err
	}

	if err := service.store.Records().Delete(ctx, session, id); err != nil {
		return err
	}

	service.logger.Warn("anime_deleted", slog.String("anime_id", id))

	return nil
}
