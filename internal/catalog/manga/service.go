// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/mediateca/internal/catalog"
	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/platform/validate"
	"github.com/taibuivan/mediateca/internal/repo"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// # Service Layer

// Service orchestrates proposal and curation rules for manga records.
type Service struct {
	store  *Store
	logger *slog.Logger
}

// NewService constructs a new manga [Service].
func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// # Submission

// CreateInput defines the payload for proposing a new manga. Dates arrive
// pre-parsed from their YYYY-MM-DD wire form.
type CreateInput struct {
	TitleEn   string
	TitleJp   *string
	Volumes   *int
	Chapters  *int
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
	Link      *string
}

/*
Create proposes a new manga record on behalf of the submitting patron.

Description: Titles are normalized before the duplicate check so that
" dorohedoro" and "Dorohedoro" collide. Publication dates must not precede
1900-01-01 and the end date cannot precede the start date.

Returns:
  - *Manga: The stored record
  - error: Validation, conflict, or storage failures
*/
func (service *Service) Create(ctx context.Context, session postgres.Session, proposer *patron.Patron, input CreateInput) (*Manga, error) {
	input.TitleEn = catalog.NormalizeTitle(input.TitleEn)
	input.TitleJp = catalog.NormalizeTitlePtr(input.TitleJp)

	v := &validate.Validator{}
	v.Required("title_en", input.TitleEn)
	if input.Volumes != nil {
		v.Min("volumes", *input.Volumes, 0)
	}
	if input.Chapters != nil {
		v.Min("chapters", *input.Chapters, 1)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := catalog.CheckDateOrder(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	existing, err := service.store.FindByTitle(ctx, session, input.TitleEn)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("A manga with this title already exists in the system")
	}

	now := time.Now().UTC()
	record := &Manga{
		TitleEn:   input.TitleEn,
		TitleJp:   input.TitleJp,
		Volumes:   input.Volumes,
		Chapters:  input.Chapters,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Notes:     input.Notes,
		Link:      input.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, err := service.store.Records().Create(ctx, session, record, map[string]any{
		"patronid": proposer.ID,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("manga_created",
		slog.String("manga_id", stored.ID),
		slog.String("patron_id", proposer.ID),
	)

	return stored, nil
}

// # Lookup

// Get retrieves a manga by ID, failing with apperr.NotFound when absent.
func (service *Service) Get(ctx context.Context, session postgres.Session, id string) (*Manga, error) {
	found, err := service.store.Records().Read(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("Manga")
	}
	return found, nil
}

// List retrieves a page of manga with the total count.
func (service *Service) List(ctx context.Context, session postgres.Session, params pagination.Params) ([]Manga, int64, error) {
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

// UpdateInput defines the mutable fields of a manga record. Nil pointers
// mark fields the client omitted.
type UpdateInput struct {
	TitleEn   *string
	TitleJp   *string
	Volumes   *int
	Chapters  *int
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
	Link      *string
}

/*
Update applies a partial patch to a manga record. The proposing patron
or a superuser may edit the submission.

Description: The date-order rule is checked against the payload alone, so a
patch touching only one of the two dates is accepted as-is.

Returns:
  - *Manga: The refreshed record
  - error: Validation failures, apperr.NotFound, apperr.Forbidden, or
    storage failures
*/
func (service *Service) Update(ctx context.Context, session postgres.Session, editor *patron.Patron, id string, input UpdateInput) (*Manga, error) {
	existing, err := service.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if err := patron.RequireOwner(editor, existing.ProposedBy); err != nil {
		return nil, err
	}

	input.TitleEn = catalog.NormalizeTitlePtr(input.TitleEn)
	input.TitleJp = catalog.NormalizeTitlePtr(input.TitleJp)

	v := &validate.Validator{}
	if input.TitleEn != nil {
		v.Required("title_en", *input.TitleEn)
	}
	if input.Volumes != nil {
		v.Min("volumes", *input.Volumes, 0)
	}
	if input.Chapters != nil {
		v.Min("chapters", *input.Chapters, 1)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := catalog.CheckDateOrder(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	patch := &repo.Patch{}
	repo.SetIfPresent(patch, "titleen", input.TitleEn)
	repo.SetIfPresent(patch, "titlejp", input.TitleJp)
	repo.SetIfPresent(patch, "volumes", input.Volumes)
	repo.SetIfPresent(patch, "chapters", input.Chapters)
	repo.SetIfPresent(patch, "startdate", input.StartDate)
	repo.SetIfPresent(patch, "enddate", input.EndDate)
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
		return nil, apperr.NotFound("Manga")
	}

	service.logger.Info("manga_updated", slog.String("manga_id", id))

	return updated, nil
}

/*
Delete removes a manga record. The route layer restricts this to superusers.
*/
func (service *Service) Delete(ctx context.Context, session postgres.Session, id string) error {
	if _, err := service.Get(ctx, session, id); err != nil {
		return err
	}

	if err := service.store.Records().Delete(ctx, session, id); err != nil {
		return err
	}

	service.logger.Warn("manga_deleted", slog.String("manga_id", id))

	return nil
}
