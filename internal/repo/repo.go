// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package repo implements the generic persistence layer for catalog records.

Every entity in the system (patrons, anime, manga, movies, books) shares the
same five data-access operations. Instead of re-implementing them per table,
each entity supplies a [Descriptor] — an explicit, reflection-free description
of its table shape — and receives a fully typed [Repository].

Architecture:

  - Descriptor: Table name, column list, and field binding functions.
  - Repository: Create / Read / ReadMany / Update / Delete built once.
  - Session-bound: Every operation takes a [postgres.Session] so it joins
    the caller's transaction.
*/
package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/mediateca/internal/platform/dberr"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// Descriptor declares how an entity type maps onto its table.
//
// # Binding functions
//
// Values and ScanDest must return slices aligned index-for-index with
// Columns. Values reads fields out of the entity for INSERT parameters;
// ScanDest returns pointers into the entity for row scanning. Keeping the
// binding explicit (rather than via struct-tag reflection) makes the mapping
// greppable and lets the compiler catch a renamed field.
type Descriptor[T any] struct {
	// Resource is the human-readable name used in error messages ("Anime").
	Resource string

	// Table is the schema-qualified table name ("catalog.anime").
	Table string

	// IDColumn is the primary-key column. It must also appear in Columns.
	IDColumn string

	// Columns lists every column in insertion order, ID included.
	Columns []string

	// Values returns the entity's field values aligned with Columns.
	Values func(entity *T) []any

	// ScanDest returns scan destinations aligned with Columns.
	ScanDest func(entity *T) []any

	// NewID generates a fresh primary key for Create.
	NewID func() string

	// SetID writes a generated primary key into the entity before insert.
	SetID func(entity *T, id string)

	// OrderBy is the deterministic ordering clause for ReadMany
	// ("createdat DESC, id").
	OrderBy string
}

// Repository provides the shared data-access operations for one entity type.
type Repository[T any] struct {
	desc Descriptor[T]
}

// New creates a Repository from a descriptor.
func New[T any](desc Descriptor[T]) *Repository[T] {
	return &Repository[T]{desc: desc}
}

// Descriptor returns the descriptor the repository was built from.
func (r *Repository[T]) Descriptor() Descriptor[T] {
	return r.desc
}

// # Write Operations

// Create inserts the entity and returns the stored row.
//
// A fresh primary key is generated and written into the entity first. The
// optional extra map supplies server-assigned columns the client payload
// never carries (e.g. the submitting patron's ID); an extra keyed by an
// existing column overrides the entity's own value.
func (r *Repository[T]) Create(ctx context.Context, session postgres.Session, entity *T, extra map[string]any) (*T, error) {
	r.desc.SetID(entity, r.desc.NewID())

	columns, values := r.insertBindings(entity, extra)
	query := r.insertSQL(columns)

	stored := new(T)
	if err := session.QueryRow(ctx, query, values...).Scan(r.desc.ScanDest(stored)...); err != nil {
		return nil, dberr.Wrap(err, r.desc.Resource)
	}

	return stored, nil
}

// Update applies a partial patch to the row with the given ID and returns
// the refreshed row.
//
// An empty patch degenerates to a read. A missing row yields (nil, nil),
// mirroring [Repository.Read]; the service layer decides whether absence is
// an error.
func (r *Repository[T]) Update(ctx context.Context, session postgres.Session, id string, patch Patch) (*T, error) {
	if patch.IsEmpty() {
		return r.Read(ctx, session, id)
	}

	query, values := r.updateSQL(id, patch)

	stored := new(T)
	err := session.QueryRow(ctx, query, values...).Scan(r.desc.ScanDest(stored)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, r.desc.Resource)
	}

	return stored, nil
}

// Delete removes the row with the given ID.
//
// Deleting a row that does not exist is not an error at this layer; the
// route layer performs its own existence check first, and a concurrent
// delete between the two is indistinguishable from having won the race.
func (r *Repository[T]) Delete(ctx context.Context, session postgres.Session, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.desc.Table, r.desc.IDColumn)

	if _, err := session.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, r.desc.Resource)
	}

	return nil
}

// # Read Operations

// Read fetches a single row by ID. A missing row yields (nil, nil).
func (r *Repository[T]) Read(ctx context.Context, session postgres.Session, id string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(r.desc.Columns, ", "), r.desc.Table, r.desc.IDColumn)

	stored := new(T)
	err := session.QueryRow(ctx, query, id).Scan(r.desc.ScanDest(stored)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, r.desc.Resource)
	}

	return stored, nil
}

// ReadMany fetches a page of rows in the descriptor's deterministic order.
func (r *Repository[T]) ReadMany(ctx context.Context, session postgres.Session, params pagination.Params) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2",
		strings.Join(r.desc.Columns, ", "), r.desc.Table, r.desc.OrderBy)

	rows, err := session.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, dberr.Wrap(err, r.desc.Resource)
	}
	defer rows.Close()

	entities := make([]T, 0, params.Limit)
	for rows.Next() {
		var entity T
		if err := rows.Scan(r.desc.ScanDest(&entity)...); err != nil {
			return nil, dberr.Wrap(err, r.desc.Resource)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, r.desc.Resource)
	}

	return entities, nil
}

// Count returns the total number of rows in the table, for pagination metadata.
func (r *Repository[T]) Count(ctx context.Context, session postgres.Session) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.desc.Table)

	var total int64
	if err := session.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, r.desc.Resource)
	}

	return total, nil
}

// # SQL Construction

// insertBindings merges the entity's column values with the extra overrides.
// Extra keys matching a descriptor column replace that value in place; new
// keys are appended in sorted order so the generated SQL is deterministic.
func (r *Repository[T]) insertBindings(entity *T, extra map[string]any) ([]string, []any) {
	columns := make([]string, len(r.desc.Columns))
	copy(columns, r.desc.Columns)
	values := r.desc.Values(entity)

	if len(extra) == 0 {
		return columns, values
	}

	position := make(map[string]int, len(columns))
	for index, column := range columns {
		position[column] = index
	}

	appended := make([]string, 0, len(extra))
	for column, value := range extra {
		if index, ok := position[column]; ok {
			values[index] = value
			continue
		}
		appended = append(appended, column)
	}

	sort.Strings(appended)
	for _, column := range appended {
		columns = append(columns, column)
		values = append(values, extra[column])
	}

	return columns, values
}

// insertSQL builds the INSERT statement returning the descriptor's columns.
func (r *Repository[T]) insertSQL(columns []string) string {
	placeholders := make([]string, len(columns))
	for index := range columns {
		placeholders[index] = fmt.Sprintf("$%d", index+1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.desc.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(r.desc.Columns, ", "),
	)
}

// updateSQL builds the UPDATE statement for a patch, with the row ID bound
// as the final parameter.
func (r *Repository[T]) updateSQL(id string, patch Patch) (string, []any) {
	assignments := make([]string, len(patch.columns))
	values := make([]any, 0, len(patch.columns)+1)

	for index, column := range patch.columns {
		assignments[index] = fmt.Sprintf("%s = $%d", column, index+1)
		values = append(values, patch.values[index])
	}
	values = append(values, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		r.desc.Table,
		strings.Join(assignments, ", "),
		r.desc.IDColumn,
		len(patch.columns)+1,
		strings.Join(r.desc.Columns, ", "),
	)

	return query, values
}
