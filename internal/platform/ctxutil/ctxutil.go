// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/mediateca/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Bearer Credentials

// Bearer carries the raw bearer credential extracted from the Authorization
// header by the middleware chain.
//
// # Why keep the raw token?
//
// Identity resolution requires a patron lookup inside the request's database
// session, which is only acquired later by the handler. The middleware
// therefore records what was presented and defers verification to the
// authentication gate.
type Bearer struct {
	// Token is the credential part of the header. It is empty when the
	// header was absent or malformed.
	Token string

	// Presented reports whether an Authorization header was sent at all.
	// A presented-but-empty token is always an authentication failure.
	Presented bool
}

// WithBearer returns a new context with the bearer credential attached.
func WithBearer(ctx context.Context, bearer Bearer) context.Context {
	return context.WithValue(ctx, ctxkey.KeyBearer, bearer)
}

// GetBearer retrieves the bearer credential from the context.
// The zero value means no Authorization header was presented.
func GetBearer(ctx context.Context) Bearer {
	bearer, _ := ctx.Value(ctxkey.KeyBearer).(Bearer)
	return bearer
}
