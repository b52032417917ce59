// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how offset-based navigation is requested via query
// parameters and how the resulting metadata is delivered in the API
// response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items returned when no limit is specified.
	DefaultLimit = 100
	// MaxLimit is the upper bound for items per request to prevent system abuse.
	MaxLimit = 100
)

// Params holds the parsed offset and limit from a request's query string.
type Params struct {
	Offset int
	Limit  int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(params Params, total int64) Meta {
	return Meta{
		Offset: params.Offset,
		Limit:  params.Limit,
		Total:  total,
	}
}

// FromRequest parses "offset" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or negative offsets fall back to 0. Limits below 1 fall back to
// [DefaultLimit]; limits above [MaxLimit] are capped at [MaxLimit] regardless
// of the caller-requested value.
func FromRequest(r *http.Request) Params {
	offset := parseIntParam(r, "offset", 0)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if offset < 0 {
		offset = 0
	}

	if limit < 1 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Offset: offset, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
