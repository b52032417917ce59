// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediateca/internal/catalog"
	"github.com/taibuivan/mediateca/pkg/pointer"
)

/*
TestNormalizeTitle verifies whitespace stripping and first-letter casing.
*/
func TestNormalizeTitle(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"dorohedoro", "Dorohedoro"},
		{"  dorohedoro ", "Dorohedoro"},
		{"Dorohedoro", "Dorohedoro"},
		{"DOROHEDORO", "Dorohedoro"},
		{"the promised neverland", "The promised neverland"},
		{"The Promised Neverland", "The promised neverland"},
		{"", ""},
		{"   ", ""},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, catalog.NormalizeTitle(testCase.input), "input: %q", testCase.input)
	}
}

/*
TestNormalizeTitlePtr verifies the optional-field wrapper preserves nil.
*/
func TestNormalizeTitlePtr(t *testing.T) {
	assert.Nil(t, catalog.NormalizeTitlePtr(nil))

	normalized := catalog.NormalizeTitlePtr(pointer.To(" berserk"))
	require.NotNil(t, normalized)
	assert.Equal(t, "Berserk", *normalized)
}

/*
TestParseDate verifies wire-format parsing and the 1900 floor.
*/
func TestParseDate(t *testing.T) {
	// 1. Omitted field passes through as nil
	parsed, err := catalog.ParseDate("start_date", nil)
	require.NoError(t, err)
	assert.Nil(t, parsed)

	// 2. Valid date
	parsed, err = catalog.ParseDate("start_date", pointer.To("1989-08-25"))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(1989, time.August, 25, 0, 0, 0, 0, time.UTC), *parsed)

	// 3. Malformed input
	for _, bad := range []string{"25-08-1989", "1989/08/25", "not-a-date"} {
		_, err = catalog.ParseDate("start_date", pointer.To(bad))
		assert.Error(t, err, "input: %q", bad)
	}

	// 4. Dates before the floor are rejected
	_, err = catalog.ParseDate("start_date", pointer.To("1899-12-31"))
	assert.Error(t, err)

	// 5. The floor itself is accepted
	_, err = catalog.ParseDate("start_date", pointer.To("1900-01-01"))
	assert.NoError(t, err)
}

/*
TestCheckDateOrder verifies the start/end ordering rule and its
partial-patch escape hatch.
*/
func TestCheckDateOrder(t *testing.T) {
	earlier := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC)

	// 1. Correct ordering
	assert.NoError(t, catalog.CheckDateOrder(&earlier, &later))

	// 2. Equal dates are allowed (one-shot publications)
	assert.NoError(t, catalog.CheckDateOrder(&earlier, &earlier))

	// 3. Reversed ordering is rejected
	assert.Error(t, catalog.CheckDateOrder(&later, &earlier))

	// 4. One-sided patches skip the check
	assert.NoError(t, catalog.CheckDateOrder(nil, &earlier))
	assert.NoError(t, catalog.CheckDateOrder(&later, nil))
	assert.NoError(t, catalog.CheckDateOrder(nil, nil))
}
