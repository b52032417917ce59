// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails signature or structural checks.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrExpiredToken is returned when a structurally valid token is past its expiry.
	ErrExpiredToken = errors.New("sec: expired token")
)

// TokenService handles generation and verification of JWT access tokens
// using HS256 with a shared symmetric secret.
//
// # Why symmetric signing?
//
// The API server is both the sole issuer and the sole verifier of its
// access tokens, so a shared secret is sufficient and keeps deployment to
// a single SECRET_KEY environment variable.
type TokenService struct {
	secret     []byte
	issuer     string
	defaultTTL time.Duration
}

// NewTokenService creates a new TokenService from the shared secret.
func NewTokenService(secret, issuer string, defaultTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		defaultTTL: defaultTTL,
	}, nil
}

// Issue creates a signed access token whose subject identifies a patron.
// A zero timeToLive falls back to the service default. Negative values are
// honored as given and yield an already-expired token.
func (service *TokenService) Issue(subject string, timeToLive time.Duration) (string, error) {
	if timeToLive == 0 {
		timeToLive = service.defaultTTL
	}

	currentTime := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Decode checks the signature and validity of a token string and returns its subject.
//
// Returns [ErrExpiredToken] for tokens past their expiry and [ErrInvalidToken]
// for everything else that fails verification. Callers must not leak which of
// the two occurred to API clients.
func (service *TokenService) Decode(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
