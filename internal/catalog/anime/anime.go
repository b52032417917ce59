// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package anime implements the anime section of the catalog.

# Architecture

  - Entities: Anime.
  - Store: Generic repository descriptor plus the title lookup.
  - Service: Proposal rules (unique titles, ownership, partial patches).
  - HTTP: REST endpoints under /api/v1/anime.
*/
package anime

import "time"

// Anime represents a proposed anime record.
type Anime struct {
	ID string `json:"id"`

	TitleEn     string  `json:"title_en"`
	TitleJp     *string `json:"title_jp"`
	SeasonAnime *int    `json:"season_anime"`
	Year        *int    `json:"year"`
	SeasonYear  *string `json:"season_year"`
	Notes       *string `json:"notes"`
	Link        *string `json:"link"`

	// ProposedBy is the patron who submitted the record. Assigned by the
	// server from the authenticated identity, never taken from the payload.
	ProposedBy string `json:"proposed_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
