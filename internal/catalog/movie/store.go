// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

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

const tableName = constants.SchemaCatalog + ".movie"

const columnList = `id, titleorig, titleen, titleit, releasedate,
	runningtime, notes, link, patronid, createdat, updatedat`

// Descriptor maps [Movie] onto the catalog.movie table.
func Descriptor() repo.Descriptor[Movie] {
	return repo.Descriptor[Movie]{
		Resource: "Movie",
		Table:    tableName,
		IDColumn: "id",
		Columns: []string{
			"id", "titleorig", "titleen", "titleit", "releasedate",
			"runningtime", "notes", "link", "patronid", "createdat", "updatedat",
		},
		Values: func(m *Movie) []any {
			return []any{
				m.ID, m.TitleOrig, m.TitleEn, m.TitleIt, m.ReleaseDate,
				m.RunningTime, m.Notes, m.Link, m.ProposedBy, m.CreatedAt, m.UpdatedAt,
			}
		},
		ScanDest: func(m *Movie) []any {
			return []any{
				&m.ID, &m.TitleOrig, &m.TitleEn, &m.TitleIt, &m.ReleaseDate,
				&m.RunningTime, &m.Notes, &m.Link, &m.ProposedBy, &m.CreatedAt, &m.UpdatedAt,
			}
		},
		NewID:   uuid.New,
		SetID:   func(m *Movie, id string) { m.ID = id },
		OrderBy: "createdat, id",
	}
}

// Store wraps the generic repository with movie-specific lookups.
type Store struct {
	records *repo.Repository[Movie]
}

// NewStore constructs a movie [Store].
func NewStore() *Store {
	return &Store{records: repo.New(Descriptor())}
}

// Records exposes the underlying generic repository.
func (store *Store) Records() *repo.Repository[Movie] {
	return store.records
}

// FindByTitle retrieves a movie whose original, English, or Italian title
// matches, or nil when absent.
func (store *Store) FindByTitle(ctx context.Context, session postgres.Session, title string) (*Movie, error) {
	query := `SELECT ` + columnList + ` FROM ` + tableName + `
		WHERE titleorig = $1 OR titleen = $1 OR titleit = $1 LIMIT 1`

	found := &Movie{}
	err := session.QueryRow(ctx, query, title).Scan(Descriptor().ScanDest(found)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Movie")
	}

	return found, nil
}
