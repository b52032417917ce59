// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package patron

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

// tableName is the schema-qualified patron table.
const tableName = constants.SchemaUsers + ".patron"

// Descriptor maps [Patron] onto the users.patron table for the generic
// repository.
func Descriptor() repo.Descriptor[Patron] {
	return repo.Descriptor[Patron]{
		Resource: "Patron",
		Table:    tableName,
		IDColumn: "id",
		Columns: []string{
			"id", "username", "email", "name", "hashedpassword",
			"isactive", "issuperuser", "createdat", "updatedat",
		},
		Values: func(p *Patron) []any {
			return []any{
				p.ID, p.Username, p.Email, p.Name, p.HashedPassword,
				p.IsActive, p.IsSuperuser, p.CreatedAt, p.UpdatedAt,
			}
		},
		ScanDest: func(p *Patron) []any {
			return []any{
				&p.ID, &p.Username, &p.Email, &p.Name, &p.HashedPassword,
				&p.IsActive, &p.IsSuperuser, &p.CreatedAt, &p.UpdatedAt,
			}
		},
		NewID:   uuid.New,
		SetID:   func(p *Patron, id string) { p.ID = id },
		OrderBy: "createdat, id",
	}
}

// Store wraps the generic repository with patron-specific lookups.
type Store struct {
	records *repo.Repository[Patron]
}

// NewStore constructs a patron [Store].
func NewStore() *Store {
	return &Store{records: repo.New(Descriptor())}
}

// Records exposes the underlying generic repository.
func (store *Store) Records() *repo.Repository[Patron] {
	return store.records
}

/*
FindByUsername retrieves a patron by their unique username.

Parameters:
  - context: context.Context
  - session: postgres.Session
  - username: string

Returns:
  - *Patron: The patron, or nil if no such username exists
  - error: Storage failures
*/
func (store *Store) FindByUsername(ctx context.Context, session postgres.Session, username string) (*Patron, error) {
	query := `SELECT id, username, email, name, hashedpassword,
		isactive, issuperuser, createdat, updatedat
		FROM ` + tableName + ` WHERE username = $1`

	found := &Patron{}
	err := session.QueryRow(ctx, query, username).Scan(
		&found.ID, &found.Username, &found.Email, &found.Name, &found.HashedPassword,
		&found.IsActive, &found.IsSuperuser, &found.CreatedAt, &found.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Patron")
	}

	return found, nil
}
