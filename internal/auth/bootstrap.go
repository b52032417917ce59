// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/config"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/platform/sec"
)

/*
EnsureAdmin creates the initial superuser account if it does not exist.

Description: Runs once at startup, after migrations. The lookup and the
insert share one transaction, so two racing instances cannot both create
the account — the loser hits the unique username constraint and reports it.

Parameters:
  - context: context.Context
  - provider: *postgres.Provider
  - store: *patron.Store
  - cfg: *config.Config (ADMIN_* settings)
  - logger: *slog.Logger
*/
func EnsureAdmin(ctx context.Context, provider *postgres.Provider, store *patron.Store, cfg *config.Config, logger *slog.Logger) error {
	return provider.WithSession(ctx, func(session postgres.Session) error {
		existing, err := store.FindByUsername(ctx, session, cfg.AdminUsername)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		hashedPassword, err := sec.HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		admin := &patron.Patron{
			Username:    cfg.AdminUsername,
			Email:       cfg.AdminEmail,
			Name:        patron.NormalizeName(cfg.AdminName),
			IsActive:    true,
			IsSuperuser: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		created, err := store.Records().Create(ctx, session, admin, map[string]any{
			"hashedpassword": hashedPassword,
		})
		if err != nil {
			return err
		}

		logger.Info("admin_patron_created",
			slog.String("patron_id", created.ID),
			slog.String("username", created.Username),
		)

		return nil
	})
}
