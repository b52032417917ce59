// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediateca/internal/platform/sec"
)

/*
TestHashPassword verifies hashing and verification of passwords.
*/
func TestHashPassword(t *testing.T) {
	password := "correct-horse-battery-staple"

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Bcrypt hashes are salted, so the plaintext never appears verbatim.
	assert.NotEqual(t, password, hash)

	assert.True(t, sec.CheckPasswordHash(password, hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
}

/*
TestHashPassword_UniqueSalts verifies that hashing the same password twice
produces different digests.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
