// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie implements the movie section of the catalog.

Movies are titled in up to three languages (original, English, Italian);
the duplicate check treats a match on any of the three as a collision.
*/
package movie

import "time"

// Movie represents a proposed movie record.
type Movie struct {
	ID string `json:"id"`

	TitleOrig   string     `json:"title_orig"`
	TitleEn     string     `json:"title_en"`
	TitleIt     *string    `json:"title_it"`
	ReleaseDate *time.Time `json:"release_date"`
	RunningTime *int       `json:"running_time"`
	Notes       *string    `json:"notes"`
	Link        *string    `json:"link"`

	// ProposedBy is the patron who submitted the record. Assigned by the
	// server from the authenticated identity, never taken from the payload.
	ProposedBy string `json:"proposed_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
