// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

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

const tableName = constants.SchemaCatalog + ".book"

const columnList = `id, titleorig, titleen, titleit, author, releaseyear,
	pages, notes, link, patronid, createdat, updatedat`

// Descriptor maps [Book] onto the catalog.book table.
func Descriptor() repo.Descriptor[Book] {
	return repo.Descriptor[Book]{
		Resource: "Book",
		Table:    tableName,
		IDColumn: "id",
		Columns: []string{
			"id", "titleorig", "titleen", "titleit", "author", "releaseyear",
			"pages", "notes", "link", "patronid", "createdat", "updatedat",
		},
		Values: func(b *Book) []any {
			return []any{
				b.ID, b.TitleOrig, b.TitleEn, b.TitleIt, b.Author, b.ReleaseYear,
				b.Pages, b.Notes, b.Link, b.ProposedBy, b.CreatedAt, b.UpdatedAt,
			}
		},
		ScanDest: func(b *Book) []any {
			return []any{
				&b.ID, &b.TitleOrig, &b.TitleEn, &b.TitleIt, &b.Author, &b.ReleaseYear,
				&b.Pages, &b.Notes, &b.Link, &b.ProposedBy, &b.CreatedAt, &b.UpdatedAt,
			}
		},
		NewID:   uuid.New,
		SetID:   func(b *Book, id string) { b.ID = id },
		OrderBy: "createdat, id",
	}
}

// Store wraps the generic repository with book-specific lookups.
type Store struct {
	records *repo.Repository[Book]
}

// NewStore constructs a book [Store].
func NewStore() *Store {
	return &Store{records: repo.New(Descriptor())}
}

// Records exposes the underlying generic repository.
func (store *Store) Records() *repo.Repository[Book] {
	return store.records
}

// FindByTitle retrieves a book whose original, English, or Italian title
// matches, or nil when absent.
func (store *Store) FindByTitle(ctx context.Context, session postgres.Session, title string) (*Book, error) {
	query := `SELECT ` + columnList + ` FROM ` + tableName + `
		WHERE titleorig = $1 OR titleen = $1 OR titleit = $1 LIMIT 1`

	found := &Book{}
	err := session.QueryRow(ctx, query, title).Scan(Descriptor().ScanDest(found)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Book")
	}

	return found, nil
}
