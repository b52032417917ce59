// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mediateca/internal/catalog"
	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	requestutil "github.com/taibuivan/mediateca/internal/platform/request"
	"github.com/taibuivan/mediateca/internal/platform/respond"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// Handler implements the HTTP layer for the movie catalog.
type Handler struct {
	provider     *postgres.Provider
	movieService *Service
	gate         patron.Resolver
}

// NewHandler constructs a new movie [Handler].
func NewHandler(provider *postgres.Provider, service *Service, gate patron.Resolver) *Handler {
	return &Handler{provider: provider, movieService: service, gate: gate}
}

// Routes returns a [chi.Router] configured with the movie endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{movie_id}", handler.read)
	router.Put("/", handler.update)
	router.Delete("/", handler.delete)

	return router
}

// createRequest defines the expected JSON payload for proposing a movie.
// The release date travels as a "YYYY-MM-DD" string.
type createRequest struct {
	TitleOrig   string  `json:"title_orig"`
	TitleEn     string  `json:"title_en"`
	TitleIt     *string `json:"title_it"`
	ReleaseDate *string `json:"release_date"`
	RunningTime *int    `json:"running_time"`
	Notes       *string `json:"notes"`
	Link        *string `json:"link"`
}

/*
POST /api/v1/movies.

Description: Proposes a new movie record. The authenticated patron becomes
its proposer.

Response:
  - 201: Movie: The created record
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

	releaseDate, err := catalog.ParseDate("release_date", input.ReleaseDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var created *Movie

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := patron.ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		created, err = handler.movieService.Create(request.Context(), session, current, CreateInput{
			TitleOrig:   input.TitleOrig,
			TitleEn:     input.TitleEn,
			TitleIt:     input.TitleIt,
			ReleaseDate: releaseDate,
			RunningTime: input.RunningTime,
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
GET /api/v1/movies/{movie_id}.

Response:
  - 200: Movie
  - 401: Unauthorized
  - 404: NotFound
*/
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	var found *Movie

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		found, err = handler.movieService.Get(request.Context(), session, requestutil.ID(request, "movie_id"))
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
GET /api/v1/movies.

Request:
  - offset: int (query, default 0)
  - limit: int (query, default 100, max 100)

Response:
  - 200: []Movie with pagination metadata
  - 401: Unauthorized
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	var records []Movie
	var total int64

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		records, total, err = handler.movieService.List(request.Context(), session, params)
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params, total))
}

// updateRequest defines the expected JSON payload for editing a movie.
type updateRequest struct {
	TitleOrig   *string `json:"title_orig"`
	TitleEn     *string `json:"title_en"`
	TitleIt     *string `json:"title_it"`
	ReleaseDate *string `json:"release_date"`
	RunningTime *int    `json:"running_time"`
	Notes       *string `json:"notes"`
	Link        *string `json:"link"`
}

/*
PUT /api/v1/movies?movie_id=<id>.

Description: Applies partial updates to a movie record. Its proposer
or a superuser may edit it.

Response:
  - 200: Movie: The updated record
  - 400: Validation: Invalid input data
  - 401: Unauthorized
  - 403: Forbidden: Neither the proposer nor a superuser
  - 404: NotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.RequiredQuery(request, "movie_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	releaseDate, err := catalog.ParseDate("release_date", input.ReleaseDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var updated *Movie

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := patron.ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		updated, err = handler.movieService.Update(request.Context(), session, current, movieID, UpdateInput{
			TitleOrig:   input.TitleOrig,
			TitleEn:     input.TitleEn,
			TitleIt:     input.TitleIt,
			ReleaseDate: releaseDate,
			RunningTime: input.RunningTime,
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
DELETE /api/v1/movies?movie_id=<id>.

Description: Removes a movie record. Superusers only.

Response:
  - 204: No Content
  - 401: Unauthorized
  - 403: Forbidden: Caller is not a superuser
  - 404: NotFound
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.RequiredQuery(request, "movie_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveSuperuser(request.Context(), session, handler.gate); err != nil {
			return err
		}

		return handler.movieService.Delete(request.Context(), session, movieID)
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
