// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package patron handles the people who use the catalog: registration, profile
management, and the authorization guards the rest of the API builds on.

# Architecture

  - Entities: Patron.
  - Guards: RequireActive / RequireSuperuser / RequireSelf / RequireOwner policy checks.
  - Resolver: The contract the authentication gate implements to turn a
    bearer credential into a loaded Patron inside the request's session.

Media packages depend on this package for identity, never the other way
around, which keeps the dependency graph acyclic.
*/
package patron

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/mediateca/internal/platform/postgres"
)

// UsernamePattern constrains usernames to a lowercase identifier:
// a leading letter followed by letters, digits, or underscores.
var UsernamePattern = regexp.MustCompile(`^[a-z][_a-z0-9]*$`)

// nameCaser title-cases each word of a patron's display name.
var nameCaser = cases.Title(language.Und)

// # Domain Entities

// Patron represents a registered user of the catalog.
type Patron struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`

	// HashedPassword is the bcrypt digest. Never serialized.
	HashedPassword string `json:"-"`

	// IsActive gates every API operation; deactivated patrons keep their
	// records but lose access.
	IsActive bool `json:"is_active"`

	// IsSuperuser unlocks administrative operations (deleting records,
	// editing other patrons).
	IsSuperuser bool `json:"is_superuser"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeName strips surrounding whitespace and title-cases every word,
// so "  ada lovelace " is stored as "Ada Lovelace".
func NormalizeName(name string) string {
	return nameCaser.String(strings.TrimSpace(name))
}

// # Identity Resolution Contract

// Resolver turns the request's bearer credential into a loaded [Patron].
//
// # Why an interface?
//
// The concrete implementation lives in the auth package, which depends on
// this one. Declaring the contract here lets handlers (and the media
// packages) resolve identity without importing auth, keeping the import
// graph acyclic — and makes the gate trivial to stub in tests.
type Resolver interface {
	/*
		Require resolves the current patron or fails.

		Parameters:
		  - context: context.Context (carries the bearer credential)
		  - session: postgres.Session (the request's transaction)

		Returns:
		  - *Patron: The resolved patron
		  - error: apperr.Unauthorized when the credential is missing,
		    invalid, expired, or names no patron
	*/
	Require(context context.Context, session postgres.Session) (*Patron, error)

	/*
		Optional resolves the current patron if a credential was presented.

		Returns:
		  - *Patron: The resolved patron, or nil for anonymous requests
		  - error: apperr.Unauthorized when a credential was presented but
		    failed verification
	*/
	Optional(context context.Context, session postgres.Session) (*Patron, error)
}
