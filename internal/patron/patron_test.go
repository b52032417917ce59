// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package patron_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mediateca/internal/patron"
)

/*
TestNormalizeName verifies whitespace stripping and per-word title-casing.
*/
func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"ada lovelace", "Ada Lovelace"},
		{"  ada lovelace ", "Ada Lovelace"},
		{"ADA LOVELACE", "Ada Lovelace"},
		{"ada", "Ada"},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, patron.NormalizeName(testCase.input), "input: %q", testCase.input)
	}
}

/*
TestUsernamePattern verifies the username format constraint.
*/
func TestUsernamePattern(t *testing.T) {
	valid := []string{"ada", "ada_lovelace", "a1", "a_1_b"}
	for _, username := range valid {
		assert.True(t, patron.UsernamePattern.MatchString(username), "expected valid: %q", username)
	}

	invalid := []string{"", "Ada", "1ada", "_ada", "ada-lovelace", "ada lovelace"}
	for _, username := range invalid {
		assert.False(t, patron.UsernamePattern.MatchString(username), "expected invalid: %q", username)
	}
}

/*
TestGuards verifies the policy checks applied after identity resolution.
*/
func TestGuards(t *testing.T) {
	active := &patron.Patron{ID: "p1", IsActive: true}
	inactive := &patron.Patron{ID: "p2", IsActive: false}
	admin := &patron.Patron{ID: "p3", IsActive: true, IsSuperuser: true}

	// 1. Activity guard
	assert.NoError(t, patron.RequireActive(active))
	assert.Error(t, patron.RequireActive(inactive))

	// 2. Privilege guard
	assert.NoError(t, patron.RequireSuperuser(admin))
	assert.Error(t, patron.RequireSuperuser(active))

	// 3. Self guard (no superuser bypass)
	assert.NoError(t, patron.RequireSelf(active, "p1"))
	assert.Error(t, patron.RequireSelf(active, "p3"))
	assert.Error(t, patron.RequireSelf(admin, "p1"))

	// 4. Ownership guard (superusers may curate any record)
	assert.NoError(t, patron.RequireOwner(active, "p1"))
	assert.Error(t, patron.RequireOwner(active, "p3"))
	assert.NoError(t, patron.RequireOwner(admin, "p1"))
}
