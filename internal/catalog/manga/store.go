// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

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

const tableName = constants.SchemaCatalog + ".manga"

const columnList = `id, titleen, titlejp, volumes, chapters, startdate,
	enddate, notes, link, patronid, createdat, updatedat`

// Descriptor maps [Manga] onto the catalog.manga table.
func Descriptor() repo.Descriptor[Manga] {
	return repo.Descriptor[Manga]{
		Resource: "Manga",
		Table:    tableName,
		IDColumn: "id",
		Columns: []string{
			"id", "titleen", "titlejp", "volumes", "chapters", "startdate",
			"enddate", "notes", "link", "patronid", "createdat", "updatedat",
		},
		Values: func(m *Manga) []any {
			return []any{
				m.ID, m.TitleEn, m.TitleJp, m.Volumes, m.Chapters, m.StartDate,
				m.EndDate, m.Notes, m.Link, m.ProposedBy, m.CreatedAt, m.UpdatedAt,
			}
		},
		ScanDest: func(m *Manga) []any {
			return []any{
				&m.ID, &m.TitleEn, &m.TitleJp, &m.Volumes, &m.Chapters, &m.StartDate,
				&m.EndDate, &m.Notes, &m.Link, &m.ProposedBy, &m.CreatedAt, &m.UpdatedAt,
			}
		},
		NewID:   uuid.New,
		SetID:   func(m *Manga, id string) { m.ID = id },
		OrderBy: "createdat, id",
	}
}

// Store wraps the generic repository with manga-specific lookups.
type Store struct {
	records *repo.Repository[Manga]
}

// NewStore constructs a manga [Store].
func NewStore() *Store {
	return &Store{records: repo.New(Descriptor())}
}

// Records exposes the underlying generic repository.
func (store *Store) Records() *repo.Repository[Manga] {
	return store.records
}

// FindByTitle retrieves a manga by its English title, or nil when absent.
func (store *Store) FindByTitle(ctx context.Context, session postgres.Session, title string) (*Manga, error) {
	query := `SELECT ` + columnList + ` FROM ` + tableName + ` WHERE titleen = $1`

	found := &Manga{}
	err := session.QueryRow(ctx, query, title).Scan(Descriptor().ScanDest(found)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Manga")
	}

	return found, nil
}
