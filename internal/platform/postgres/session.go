// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session is the database handle passed to store operations.
//
// It is satisfied by [pgx.Tx], so every store call inside a
// [Provider.WithSession] block runs on the same transaction and commits or
// rolls back as a unit.
type Session interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Provider hands out transactional sessions backed by the connection pool.
//
// # Session-per-request
//
// Each API request acquires exactly one session and performs identity
// resolution, authorization checks, and the repository operation on it. The
// transaction commits only if the whole block succeeds, so a failed guard can
// never leave a half-applied write behind.
type Provider struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewProvider creates a session provider on top of an existing pool.
func NewProvider(pool *pgxpool.Pool, logger *slog.Logger) *Provider {
	return &Provider{pool: pool, logger: logger}
}

// Pool exposes the underlying pool for health checks.
func (provider *Provider) Pool() *pgxpool.Pool {
	return provider.pool
}

// WithSession runs fn inside a single database transaction.
//
// The transaction is committed when fn returns nil and rolled back otherwise.
// Rollback is also guaranteed when fn panics; the panic is re-raised after
// cleanup so the recovery middleware can report it.
func (provider *Provider) WithSession(ctx context.Context, fn func(session Session) error) error {
	tx, err := provider.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}

	// Rollback is a no-op after a successful commit.
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			provider.logger.Error("transaction rollback failed", slog.Any("error", rollbackErr))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit transaction: %w", err)
	}

	return nil
}
