// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mediateca/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping of offset/limit values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantOffset int
		wantLimit  int
	}{
		{"defaults", "/anime", 0, 100},
		{"explicit_values", "/anime?offset=20&limit=10", 20, 10},
		{"negative_offset_clamped", "/anime?offset=-5", 0, 100},
		{"zero_limit_falls_back", "/anime?limit=0", 0, 100},
		{"limit_capped_at_max", "/anime?limit=500", 0, 100},
		{"garbage_ignored", "/anime?offset=abc&limit=xyz", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantOffset, params.Offset)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestNewMeta verifies the response metadata mirrors the request parameters.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Offset: 40, Limit: 20}, 123)

	assert.Equal(t, 40, meta.Offset)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, int64(123), meta.Total)
}
