// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements the book section of the catalog.

Books follow the movie titling scheme (original, English, Italian) and add
an author, a release year, and a page count.
*/
package book

import "time"

// Book represents a proposed book record.
type Book struct {
	ID string `json:"id"`

	TitleOrig   string  `json:"title_orig"`
	TitleEn     string  `json:"title_en"`
	TitleIt     *string `json:"title_it"`
	Author      string  `json:"author"`
	ReleaseYear *int    `json:"release_year"`
	Pages       *int    `json:"pages"`
	Notes       *string `json:"notes"`
	Link        *string `json:"link"`

	// ProposedBy is the patron who submitted the record. Assigned by the
	// server from the authenticated identity, never taken from the payload.
	ProposedBy string `json:"proposed_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
