// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mediateca/internal/platform/ctxutil"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Bearer verifies that bearer credentials can be stored in context.
*/
func TestContext_Bearer(t *testing.T) {
	ctx := context.Background()

	// 1. Initially should be the zero value (nothing presented)
	assert.False(t, ctxutil.GetBearer(ctx).Presented)
	assert.Empty(t, ctxutil.GetBearer(ctx).Token)

	// 2. Inject and retrieve
	ctx = ctxutil.WithBearer(ctx, ctxutil.Bearer{Token: "abc.def.ghi", Presented: true})
	retrieved := ctxutil.GetBearer(ctx)

	assert.True(t, retrieved.Presented)
	assert.Equal(t, "abc.def.ghi", retrieved.Token)
}
