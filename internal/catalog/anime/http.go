// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	requestutil "github.com/taibuivan/mediateca/internal/platform/request"
	"github.com/taibuivan/mediateca/internal/platform/respond"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// Handler implements the HTTP layer for the anime catalog.
type Handler struct {
	provider     *postgres.Provider
	animeService *Service
	gate         patron.Resolver
}

// NewHandler constructs a new anime [Handler].
func NewHandler(provider *postgres.Provider, service *Service, gate patron.Resolver) *Handler {
	return &Handler{provider: provider, animeService: service, gate: gate}
}

// Routes returns a [chi.Router] configured with the anime endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{anime_id}", handler.read)
	router.Put("/", handler.update)
	router.Delete("/", handler.delete)

	return router
}

// createRequest defines the expected JSON payload for proposing an anime.
type createRequest struct {
	TitleEn     string  `json:"title_en"`
	TitleJp     *string `json:"title_jp"`
	SeasonAnime *int    `json:"season_anime"`
	Year        *int    `json:"year"`
	SeasonYear  *string `json:"season_year"`
	Notes       *string `json:"notes"`
	Link        *string `json:"link"`
}

/*
POST /api/v1/anime.

Description: Proposes a new anime record. The authenticated patron becomes
its proposer.

Response:
  - 201: Anime: The created record
  - 400: Validation: Invalid input data
  - 401: Unauthorized: Missing or invalid credentials
  - 403: Forbidden: Inactive account
  - 409: Conflict: Title already in the catalog
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var created *Anime

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := patron.ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		created, err = handler.animeService.Create(request.Context(), session, current, CreateInput{
			TitleEn:     input.TitleEn,
			TitleJp:     input.TitleJp,
			SeasonAnime: input.SeasonAnime,
			Year:        input.Year,
			SeasonYear:  input.SeasonYear,
			Notes:       input.Notes,
			Link:        input.Link,
		})
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/anime/{anime_id}.

Response:
  - 200: Anime
  - 401: Unauthorized
  - 404: NotFound
*/
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	var found *Anime

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		found, err = handler.animeService.Get(request.Context(), session, requestutil.ID(request, "anime_id"))
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
GET /api/v1/anime.

Request:
  - offset: int (query, default 0)
  - limit: int (query, default 100, max 100)

Response:
  - 200: []Anime with pagination metadata
  - 401: Unauthorized
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	var records []Anime
	var total int64

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		records, total, err = handler.animeService.List(request.Context(), session, params)
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params, total))
}

// updateRequest defines the expected JSON payload for editing an anime.
type updateRequest struct {
	TitleEn     *string `json:"title_en"`
	TitleJp     *string `json:"title_jp"`
	SeasonAnime *int    `json:"season_anime"`
	Year        *int    `json:"year"`
	SeasonYear  *string `json:"season_year"`
	Notes       *string `json:"notes"`
	Link        *string `json:"link"`
}

/*
PUT /api/v1/anime?anime_id=<id>.

Description: Applies partial updates to an anime record. Its proposer
or a superuser may edit it.

Response:
  - 200: Anime: The updated record
  - 400: Validation: Invalid input data
  - 401: Unauthorized
  - 403: Forbidden: Neither the proposer nor a superuser
  - 404: NotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	animeID, err := requestutil.RequiredQuery(request, "anime_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var updated *Anime

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := patron.ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		updated, err = handler.animeService.Update(request.Context(), session, current, animeID, UpdateInput{
			TitleEn:     input.TitleEn,
			TitleJp:     input.TitleJp,
			SeasonAnime: input.SeasonAnime,
			Year:        input.Year,
			SeasonYear:  input.SeasonYear,
			Notes:       input.Notes,
			Link:        input.Link,
		})
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/anime?anime_id=<id>.

Description: Removes an anime record. Superusers only.

Response:
  - 204: No Content
  - 401: Unauthorized
  - 403: Forbidden: Caller is not a superuser
  - 404: NotFound
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	animeID, err := requestutil.RequiredQuery(request, "anime_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveSuperuser(request.Context(), session, handler.gate); err != nil {
			return err
		}

		return handler.animeService.Delete(request.Context(), session, animeID)
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
