// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog holds the helpers shared by the media domains (anime, manga,
movies, books): title normalization and date handling.

Each media type lives in its own subpackage with the same four-file layout
(entity, store, service, http); this package keeps them from re-implementing
the few rules they genuinely share.
*/
package catalog

import (
	"strings"
	"time"
	"unicode"

	"github.com/taibuivan/mediateca/internal/platform/apperr"
)

// DateLayout is the wire format for calendar dates in request payloads.
const DateLayout = "2006-01-02"

// MinDate is the earliest calendar date the catalog accepts.
var MinDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// NormalizeTitle strips surrounding whitespace, upper-cases the first letter,
// and lower-cases the rest: " DOROHEDORO" becomes "Dorohedoro". Titles are
// deduplicated by exact match, so every write must go through the same
// canonical form.
func NormalizeTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return trimmed
	}

	runes := []rune(strings.ToLower(trimmed))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// NormalizeTitlePtr applies [NormalizeTitle] through an optional field.
func NormalizeTitlePtr(title *string) *string {
	if title == nil {
		return nil
	}
	normalized := NormalizeTitle(*title)
	return &normalized
}

/*
ParseDate converts an optional "YYYY-MM-DD" payload field into a time value.

Returns:
  - *time.Time: The parsed date (UTC midnight), or nil when the field was omitted
  - error: apperr.ValidationError for malformed or pre-1900 dates
*/
func ParseDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	parsed, err := time.ParseInLocation(DateLayout, *value, time.UTC)
	if err != nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   field,
			Message: "Must be a date in YYYY-MM-DD format",
		})
	}

	if parsed.Before(MinDate) {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   field,
			Message: "The date must be after 1900-01-01",
		})
	}

	return &parsed, nil
}

// CheckDateOrder fails when both dates are present and the end precedes the
// start. Single-sided patches skip the check, matching how partial updates
// only see the fields the client sent.
func CheckDateOrder(start, end *time.Time) error {
	if start == nil || end == nil {
		return nil
	}

	if end.Before(*start) {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "end_date",
			Message: "The end date cannot precede the start date",
		})
	}

	return nil
}
