// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mediateca/internal/catalog"
	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	requestutil "github.com/taibuivan/mediateca/internal/platform/request"
	"github.com/taibuivan/mediateca/internal/platform/respond"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// Handler implements the HTTP layer for the manga catalog.
type Handler struct {
	provider     *postgres.Provider
	mangaService *Service
	gate         patron.Resolver
}

// NewHandler constructs a new manga [Handler].
func NewHandler(provider *postgres.Provider, service *Service, gate patron.Resolver) *Handler {
	return &Handler{provider: provider, mangaService: service, gate: gate}
}

// Routes returns a [chi.Router] configured with the manga endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{manga_id}", handler.read)
	router.Put("/", handler.update)
	router.Delete("/", handler.delete)

	return router
}

// createRequest defines the expected JSON payload for proposing a manga.
// Dates travel as "YYYY-MM-DD" strings.
type createRequest struct {
	TitleEn   string  `json:"title_en"`
	TitleJp   *string `json:"title_jp"`
	Volumes   *int    `json:"volumes"`
	Chapters  *int    `json:"chapters"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     *string `json:"notes"`
	Link      *string `json:"link"`
}

// parseDates converts both wire dates, failing on the first bad one.
func parseDates(start, end *string) (*time.Time, *time.Time, error) {
	startDate, err := catalog.ParseDate("start_date", start)
	if err != nil {
		return nil, nil, err
	}

	endDate, err := catalog.ParseDate("end_date", end)
	if err != nil {
		return nil, nil, err
	}

	return startDate, endDate, nil
}

/*
POST /api/v1/manga.

Description: Proposes a new manga record. The authenticated patron becomes
its proposer.

Response:
  - 201: Manga: The created record
  - 400: Validation: Invalid input data or dates
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

	startDate, endDate, err := parseDates(input.StartDate, input.EndDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var created *Manga

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := patron.ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		created, err = handler.mangaService.Create(request.Context(), session, current, CreateInput{
			TitleEn:   input.TitleEn,
			TitleJp:   input.TitleJp,
			Volumes:   input.Volumes,
			Chapters:  input.Chapters,
			StartDate: startDate,
			EndDate:   endDate,
			Notes:     input.Notes,
			Link:      input.Link,
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
GET /api/v1/manga/{manga_id}.

Response:
  - 200: Manga
  - 401: Unauthorized
  - 404: NotFound
*/
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	var found *Manga

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		found, err = handler.mangaService.Get(request.Context(), session, requestutil.ID(request, "manga_id"))
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
GET /api/v1/manga.

Request:
  - offset: int (query, default 0)
  - limit: int (query, default 100, max 100)

Response:
  - 200: []Manga with pagination metadata
  - 401: Unauthorized
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	var records []Manga
	var total int64

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		records, total, err = handler.mangaService.List(request.Context(), session, params)
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params, total))
}

// updateRequest defines the expected JSON payload for editing a manga.
type updateRequest struct {
	TitleEn   *string `json:"title_en"`
	TitleJp   *string `json:"title_jp"`
	Volumes   *int    `json:"volumes"`
	Chapters  *int    `json:"chapters"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     *string `json:"notes"`
	Link      *string `json:"link"`
}

/*
PUT /api/v1/manga?manga_id=<id>.

Description: Applies partial updates to a manga record. Its proposer
or a superuser may edit it.

Response:
  - 200: Manga: The updated record
  - 400: Validation: Invalid input data or dates
  - 401: Unauthorized
  - 403: Forbidden: Neither the proposer nor a superuser
  - 404: NotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.RequiredQuery(request, "manga_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	startDate, endDate, err := parseDates(input.StartDate, input.EndDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var updated *Manga

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := patron.ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		updated, err = handler.mangaService.Update(request.Context(), session, current, mangaID, UpdateInput{
			TitleEn:   input.TitleEn,
			TitleJp:   input.TitleJp,
			Volumes:   input.Volumes,
			Chapters:  input.Chapters,
			StartDate: startDate,
			EndDate:   endDate,
			Notes:     input.Notes,
			Link:      input.Link,
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
DELETE /api/v1/manga?manga_id=<id>.

Description: Removes a manga record. Superusers only.

Response:
  - 204: No Content
  - 401: Unauthorized
  - 403: Forbidden: Caller is not a superuser
  - 404: NotFound
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.RequiredQuery(request, "manga_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveSuperuser(request.Context(), session, handler.gate); err != nil {
			return err
		}

		return handler.mangaService.Delete(request.Context(), session, mangaID)
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
