// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements credential verification for the Mediateca API.

It owns the login endpoint, the authentication gate that turns bearer tokens
into loaded patrons, the brute-force throttle, and the initial superuser
bootstrap.

# The Gate

Identity is resolved per request, inside the request's own database session:
the middleware only transports the raw bearer credential, and the gate
performs token decoding plus the patron lookup when a handler asks for it.
A patron deactivated mid-session is therefore locked out on their very next
request, at the cost of one indexed lookup per authenticated call.
*/
package auth

import (
	"context"

	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/ctxutil"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/platform/sec"
)

// errCredentials is the single error returned for every authentication
// failure. Missing header, malformed token, expired token, and unknown
// subject are deliberately indistinguishable to the client.
var errCredentials = apperr.Unauthorized("Could not validate credentials")

// PatronFinder is the subset of the patron store the gate needs.
type PatronFinder interface {
	FindByUsername(ctx context.Context, session postgres.Session, username string) (*patron.Patron, error)
}

// Gate implements [patron.Resolver] on top of the token service and the
// patron store.
type Gate struct {
	tokens  *sec.TokenService
	patrons PatronFinder
}

// NewGate constructs an authentication [Gate].
func NewGate(tokens *sec.TokenService, patrons PatronFinder) *Gate {
	return &Gate{tokens: tokens, patrons: patrons}
}

// Require resolves the current patron or fails with 401.
func (gate *Gate) Require(ctx context.Context, session postgres.Session) (*patron.Patron, error) {
	bearer := ctxutil.GetBearer(ctx)
	if !bearer.Presented {
		return nil, errCredentials
	}

	return gate.resolve(ctx, session, bearer.Token)
}

// Optional resolves the current patron when a credential was presented,
// or returns (nil, nil) for anonymous requests. A presented credential
// that fails verification is still an error.
func (gate *Gate) Optional(ctx context.Context, session postgres.Session) (*patron.Patron, error) {
	bearer := ctxutil.GetBearer(ctx)
	if !bearer.Presented {
		return nil, nil
	}

	return gate.resolve(ctx, session, bearer.Token)
}

// resolve decodes the token and loads the patron it names.
func (gate *Gate) resolve(ctx context.Context, session postgres.Session, token string) (*patron.Patron, error) {
	if token == "" {
		return nil, errCredentials
	}

	// Token subjects are usernames, so a patron can be looked up directly
	// without exposing internal IDs in the credential.
	username, err := gate.tokens.Decode(token)
	if err != nil {
		return nil, errCredentials
	}

	found, err := gate.patrons.FindByUsername(ctx, session, username)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errCredentials
	}

	return found, nil
}
