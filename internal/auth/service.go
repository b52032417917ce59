// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/platform/sec"
)

// # Service Layer

// Service orchestrates the login flow: throttle check, credential
// verification, and token issuance.
type Service struct {
	patronService *patron.Service
	tokens        *sec.TokenService
	throttle      *Throttle
	logger        *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(patronService *patron.Service, tokens *sec.TokenService, throttle *Throttle, logger *slog.Logger) *Service {
	return &Service{
		patronService: patronService,
		tokens:        tokens,
		throttle:      throttle,
		logger:        logger,
	}
}

/*
Login verifies a username/password pair and issues an access token.

Description: Failed attempts are counted per username; once the window
budget is exhausted the username is refused before any credential check.
The error for wrong credentials never reveals whether the username exists.

Parameters:
  - context: context.Context
  - session: postgres.Session
  - username, password: string

Returns:
  - string: The signed access token
  - error: apperr.Unauthorized, apperr.RateLimited, or storage failures
*/
func (service *Service) Login(ctx context.Context, session postgres.Session, username, password string) (string, error) {
	if err := service.throttle.Check(ctx, username); err != nil {
		return "", err
	}

	authenticated, err := service.patronService.Authenticate(ctx, session, username, password)
	if err != nil {
		return "", err
	}
	if authenticated == nil {
		service.throttle.RecordFailure(ctx, username)
		service.logger.Warn("login_failed", slog.String("username", username))
		return "", apperr.Unauthorized("Incorrect username or password")
	}

	service.throttle.Reset(ctx, username)

	// Token lifetime comes from the service configuration; zero selects
	// the default TTL.
	accessToken, err := service.tokens.Issue(authenticated.Username, 0)
	if err != nil {
		return "", apperr.Internal(err)
	}

	service.logger.Info("login_succeeded", slog.String("patron_id", authenticated.ID))

	return accessToken, nil
}
