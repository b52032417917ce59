// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID    string
	Title string
	Score int
}

func newTestRepository() *Repository[testRecord] {
	return New(Descriptor[testRecord]{
		Resource: "Record",
		Table:    "catalog.record",
		IDColumn: "id",
		Columns:  []string{"id", "title", "score"},
		Values: func(r *testRecord) []any {
			return []any{r.ID, r.Title, r.Score}
		},
		ScanDest: func(r *testRecord) []any {
			return []any{&r.ID, &r.Title, &r.Score}
		},
		NewID: func() string { return "fixed-id" },
		SetID: func(r *testRecord, id string) { r.ID = id },
		OrderBy: "title, id",
	})
}

/*
TestInsertSQL verifies the generated INSERT statement and its placeholders.
*/
func TestInsertSQL(t *testing.T) {
	repository := newTestRepository()

	query := repository.insertSQL([]string{"id", "title", "score"})

	assert.Equal(t,
		"INSERT INTO catalog.record (id, title, score) VALUES ($1, $2, $3) RETURNING id, title, score",
		query,
	)
}

/*
TestInsertBindings_NoExtra verifies that without extras the bindings mirror
the descriptor exactly.
*/
func TestInsertBindings_NoExtra(t *testing.T) {
	repository := newTestRepository()
	record := &testRecord{ID: "r1", Title: "Akira", Score: 9}

	columns, values := repository.insertBindings(record, nil)

	assert.Equal(t, []string{"id", "title", "score"}, columns)
	assert.Equal(t, []any{"r1", "Akira", 9}, values)
}

/*
TestInsertBindings_ExtraAppended verifies that extra columns absent from the
descriptor are appended in sorted order for deterministic SQL.
*/
func TestInsertBindings_ExtraAppended(t *testing.T) {
	repository := newTestRepository()
	record := &testRecord{ID: "r1", Title: "Akira", Score: 9}

	columns, values := repository.insertBindings(record, map[string]any{
		"patronid":  "p1",
		"createdat": "2026-01-01",
	})

	assert.Equal(t, []string{"id", "title", "score", "createdat", "patronid"}, columns)
	assert.Equal(t, []any{"r1", "Akira", 9, "2026-01-01", "p1"}, values)
}

/*
TestInsertBindings_ExtraOverride verifies that an extra keyed by an existing
column replaces the entity's own value instead of duplicating the column.
*/
func TestInsertBindings_ExtraOverride(t *testing.T) {
	repository := newTestRepository()
	record := &testRecord{ID: "r1", Title: "Akira", Score: 9}

	columns, values := repository.insertBindings(record, map[string]any{
		"score": 10,
	})

	assert.Equal(t, []string{"id", "title", "score"}, columns)
	assert.Equal(t, []any{"r1", "Akira", 10}, values)
}

/*
TestUpdateSQL verifies the generated UPDATE statement, assignment ordering,
and the ID bound as the trailing parameter.
*/
func TestUpdateSQL(t *testing.T) {
	repository := newTestRepository()

	var patch Patch
	patch.Set("title", "Ghost in the Shell")
	patch.Set("score", 10)

	query, values := repository.updateSQL("r1", patch)

	assert.Equal(t,
		"UPDATE catalog.record SET title = $1, score = $2 WHERE id = $3 RETURNING id, title, score",
		query,
	)
	assert.Equal(t, []any{"Ghost in the Shell", 10, "r1"}, values)
}

/*
TestPatch_SetIfPresent verifies the nil-pointer convention for omitted fields.
*/
func TestPatch_SetIfPresent(t *testing.T) {
	var patch Patch

	title := "Paprika"
	SetIfPresent(&patch, "title", &title)
	SetIfPresent[int](&patch, "score", nil)

	require.Equal(t, 1, patch.Len())
	assert.Equal(t, []string{"title"}, patch.columns)
	assert.Equal(t, []any{"Paprika"}, patch.values)
}

/*
TestPatch_Empty verifies that a zero-value patch reports empty.
*/
func TestPatch_Empty(t *testing.T) {
	var patch Patch
	assert.True(t, patch.IsEmpty())

	patch.Set("title", "x")
	assert.False(t, patch.IsEmpty())
}
