// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/mediateca/internal/platform/constants"
	"github.com/taibuivan/mediateca/internal/platform/dberr"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/repo"
	"github.com/taibuivan/mediateca/pkg/uuid"
)

const tableName = constants.SchemaCatalog + ".anime"

const columnList = `id, titleen, titlejp, seasonanime, year, seasonyear,
	notes, link, patronid, createdat, updatedat`

// Descriptor maps [Anime] onto the catalog.anime table.
func Descriptor() repo.Descriptor[Anime] {
	return repo.Descriptor[Anime]{
		Resource: "Anime",
		Table:    tableName,
		IDColumn: "id",
		Columns: []string{
			"id", "titleen", "titlejp", "seasonanime", "year", "seasonyear",
			"notes", "link", "patronid", "createdat", "updatedat",
		},
		Values: func(a *Anime) []any {
			return []any{
				a.ID, a.TitleEn, a.TitleJp, a.SeasonAnime, a.Year, a.SeasonYear,
				a.Notes, a.Link, a.ProposedBy, a.CreatedAt, a.UpdatedAt,
			}
		},
		ScanDest: func(a *Anime) []any {
			return []any{
				&a.ID, &a.TitleEn, &a.TitleJp, &a.SeasonAnime, &a.Year, &a.SeasonYear,
				&a.Notes, &a.Link, &a.ProposedBy, &a.CreatedAt, &a.UpdatedAt,
			}
		},
		NewID:   uuid.New,
		SetID:   func(a *Anime, id string) { a.ID = id },
		OrderBy: "createdat, id",
	}
}

// Store wraps the generic repository with anime-specific lookups.
type Store struct {
	records *repo.Repository[Anime]
}

// NewStore constructs an anime [Store].
func NewStore() *Store {
	return &Store{records: repo.New(Descriptor())}
}

// Records exposes the underlying generic repository.
func (store *Store) Records() *repo.Repository[Anime] {
	return store.records
}

// FindByTitle retrieves an anime by its English title, or nil when absent.
// Used for the duplicate-title check on submission.
func (store *Store) FindByTitle(ctx context.Context, session postgres.Session, title string) (*Anime, error) {
	query := `SELECT ` + columnList + ` FROM ` + tableName + ` WHERE titleen = $1`

	found := &Anime{}
	err := session.QueryRow(ctx, query, title).Scan(Descriptor().ScanDest(found)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Anime")
	}

	return found, nil
}
