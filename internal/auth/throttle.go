// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/constants"
)

// Throttle counts failed login attempts per username in Redis and refuses
// further attempts once the window budget is exhausted.
//
// # Why per-username?
//
// Keying by username (rather than IP) protects a targeted account from a
// distributed guessing attack. The global per-IP rate limiter in the
// middleware chain still caps overall request volume.
type Throttle struct {
	client *redis.Client
	logger *slog.Logger
}

// NewThrottle constructs a login [Throttle].
func NewThrottle(client *redis.Client, logger *slog.Logger) *Throttle {
	return &Throttle{client: client, logger: logger}
}

// key builds the Redis key for a username's failure counter.
func (throttle *Throttle) key(username string) string {
	return constants.RedisPrefixLoginFail + username
}

/*
Check fails when the username has exhausted its failure budget.

Returns:
  - error: apperr.RateLimited when throttled; nil otherwise

A Redis outage fails open: login availability is preferred over throttle
precision, since bcrypt verification already bounds the guessing rate.
*/
func (throttle *Throttle) Check(ctx context.Context, username string) error {
	failures, err := throttle.client.Get(ctx, throttle.key(username)).Int()
	if err != nil && err != redis.Nil {
		throttle.logger.Warn("login_throttle_unavailable", slog.String("error", err.Error()))
		return nil
	}

	if failures >= constants.LoginThrottleMaxFailures {
		retryAfter, ttlErr := throttle.client.TTL(ctx, throttle.key(username)).Result()
		if ttlErr != nil || retryAfter < 0 {
			retryAfter = constants.LoginThrottleWindow
		}
		return apperr.RateLimited(int(retryAfter.Seconds()))
	}

	return nil
}

/*
RecordFailure increments the username's failure counter.

The window starts at the first failure: the counter expires
[constants.LoginThrottleWindow] after it was created, not after the most
recent failure.
*/
func (throttle *Throttle) RecordFailure(ctx context.Context, username string) {
	redisKey := throttle.key(username)

	failures, err := throttle.client.Incr(ctx, redisKey).Result()
	if err != nil {
		throttle.logger.Warn("login_throttle_unavailable", slog.String("error", err.Error()))
		return
	}

	if failures == 1 {
		if err := throttle.client.Expire(ctx, redisKey, constants.LoginThrottleWindow).Err(); err != nil {
			throttle.logger.Warn("login_throttle_unavailable", slog.String("error", err.Error()))
		}
	}

	if failures == constants.LoginThrottleMaxFailures {
		throttle.logger.Warn("login_throttle_engaged",
			slog.String("username", username),
			slog.Int64("failures", failures),
		)
	}
}

// Reset clears the failure counter after a successful login.
func (throttle *Throttle) Reset(ctx context.Context, username string) {
	if err := throttle.client.Del(ctx, throttle.key(username)).Err(); err != nil {
		throttle.logger.Warn("login_throttle_unavailable",
			slog.String("error", fmt.Sprintf("reset failed: %v", err)))
	}
}
