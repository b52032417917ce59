// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manga implements the manga section of the catalog.

Manga records carry publication-run dates (start and end) with ordering
rules, and their titles are normalized on the way in.
*/
package manga

import "time"

// Manga represents a proposed manga record.
type Manga struct {
	ID string `json:"id"`

	TitleEn   string     `json:"title_en"`
	TitleJp   *string    `json:"title_jp"`
	Volumes   *int       `json:"volumes"`
	Chapters  *int       `json:"chapters"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     *string    `json:"notes"`
	Link      *string    `json:"link"`

	// ProposedBy is the patron who submitted the record. Assigned by the
	// server from the authenticated identity, never taken from the payload.
	ProposedBy string `json:"proposed_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
