// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediateca/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService("test-secret-key", "mediateca.test", time.Hour)
	require.NoError(t, err)

	return service
}

/*
TestTokenService_IssueAndDecode verifies the happy-path round trip.
*/
func TestTokenService_IssueAndDecode(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.Issue("patron-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := service.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "patron-123", subject)
}

/*
TestTokenService_DefaultTTL verifies that a zero lifetime falls back to the
service default rather than issuing an already-expired token.
*/
func TestTokenService_DefaultTTL(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.Issue("patron-123", 0)
	require.NoError(t, err)

	subject, err := service.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "patron-123", subject)
}

/*
TestTokenService_Expired verifies that expired tokens are rejected with the
dedicated sentinel error.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.Issue("patron-123", -time.Hour)
	require.NoError(t, err)

	_, err = service.Decode(token)
	assert.ErrorIs(t, err, sec.ErrExpiredToken)
}

/*
TestTokenService_WrongSecret verifies that tokens signed with a different
secret fail verification.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuing := newTestTokenService(t)

	verifying, err := sec.NewTokenService("another-secret", "mediateca.test", time.Hour)
	require.NoError(t, err)

	token, err := issuing.Issue("patron-123", time.Hour)
	require.NoError(t, err)

	_, err = verifying.Decode(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_Garbage verifies that malformed input is rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.Decode(input)
		assert.ErrorIs(t, err, sec.ErrInvalidToken, "input: %q", input)
	}
}

/*
TestTokenService_EmptySecret verifies that construction refuses an empty secret.
*/
func TestTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "mediateca.test", time.Hour)
	assert.Error(t, err)
}
