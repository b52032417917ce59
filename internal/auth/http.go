// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mediateca/internal/platform/apperr"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	"github.com/taibuivan/mediateca/internal/platform/respond"
)

// Handler implements the HTTP layer for authentication.
type Handler struct {
	provider *postgres.Provider
	service  *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(provider *postgres.Provider, service *Service) *Handler {
	return &Handler{provider: provider, service: service}
}

// Routes returns a [chi.Router] configured with the login endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/token", handler.token)

	return router
}

// tokenResponse is the OAuth2-shaped payload returned on successful login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

/*
POST /api/v1/login/token.

Description: Exchanges a username/password pair for a bearer access token.
Credentials arrive as an OAuth2 password-grant form
(application/x-www-form-urlencoded with username and password fields).

Response:
  - 200: tokenResponse: {"access_token": ..., "token_type": "bearer"}
  - 400: Validation: Missing form fields
  - 401: Unauthorized: Incorrect username or password
  - 429: RateLimited: Too many failed attempts for this username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid form payload"))
		return
	}

	username := request.PostFormValue("username")
	password := request.PostFormValue("password")
	if username == "" || password == "" {
		respond.Error(writer, request, apperr.ValidationError("Username and password are required"))
		return
	}

	var accessToken string

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		var err error
		accessToken, err = handler.service.Login(request.Context(), session, username, password)
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}
