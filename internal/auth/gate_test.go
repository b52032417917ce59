// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediateca/internal/auth"
	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/ctxutil"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/platform/sec"
)

// stubFinder returns a fixed set of patrons keyed by username.
type stubFinder struct {
	patrons map[string]*patron.Patron
}

func (finder *stubFinder) FindByUsername(_ context.Context, _ postgres.Session, username string) (*patron.Patron, error) {
	return finder.patrons[username], nil
}

func newTestGate(t *testing.T) (*auth.Gate, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService("gate-test-secret", "mediateca.test", time.Hour)
	require.NoError(t, err)

	finder := &stubFinder{patrons: map[string]*patron.Patron{
		"ada": {ID: "p1", Username: "ada", IsActive: true},
	}}

	return auth.NewGate(tokens, finder), tokens
}

func withBearer(token string) context.Context {
	return ctxutil.WithBearer(context.Background(), ctxutil.Bearer{Token: token, Presented: true})
}

/*
TestGate_Anonymous verifies behavior when no credential is presented:
Require fails with 401, Optional resolves to nil.
*/
func TestGate_Anonymous(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	_, err := gate.Require(ctx, nil)
	requireUnauthorized(t, err)

	resolved, err := gate.Optional(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

/*
TestGate_ValidToken verifies that a well-formed token for a known patron
resolves through both entry points.
*/
func TestGate_ValidToken(t *testing.T) {
	gate, tokens := newTestGate(t)

	token, err := tokens.Issue("ada", time.Hour)
	require.NoError(t, err)
	ctx := withBearer(token)

	resolved, err := gate.Require(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "p1", resolved.ID)

	resolved, err = gate.Optional(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "p1", resolved.ID)
}

/*
TestGate_InvalidToken verifies that malformed and empty presented tokens
fail uniformly, on Optional as well as Require.
*/
func TestGate_InvalidToken(t *testing.T) {
	gate, _ := newTestGate(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		ctx := withBearer(token)

		_, err := gate.Require(ctx, nil)
		requireUnauthorized(t, err)

		_, err = gate.Optional(ctx, nil)
		requireUnauthorized(t, err)
	}
}

/*
TestGate_ExpiredToken verifies that an expired token is rejected with the
same error as an invalid one.
*/
func TestGate_ExpiredToken(t *testing.T) {
	gate, tokens := newTestGate(t)

	token, err := tokens.Issue("ada", -time.Minute)
	require.NoError(t, err)

	_, err = gate.Require(withBearer(token), nil)
	requireUnauthorized(t, err)
}

/*
TestGate_UnknownSubject verifies that a valid token naming a nonexistent
patron is rejected identically to a bad token.
*/
func TestGate_UnknownSubject(t *testing.T) {
	gate, tokens := newTestGate(t)

	token, err := tokens.Issue("nobody", time.Hour)
	require.NoError(t, err)

	_, err = gate.Require(withBearer(token), nil)
	requireUnauthorized(t, err)
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
	assert.Equal(t, "Could not validate credentials", appError.Message)
}
