// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mediateca/internal/patron"
	"github.com/taibuivan/mediateca/internal/platform/postgres"
	requestutil "github.com/taibuivan/mediateca/internal/platform/request"
	"github.com/taibuivan/mediateca/internal/platform/respond"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// Handler implements the HTTP layer for the book catalog.
type Handler struct {
	provider    *postgres.Provider
	bookService *Service
	gate        patron.Resolver
}

// NewHandler constructs a new book [Handler].
func NewHandler(provider *postgres.Provider, service *Service, gate patron.Resolver) *Handler {
	return &Handler{provider: provider, bookService: service, gate: gate}
}

// Routes returns a [chi.Router] configured with the book endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{book_id}", handler.read)
	router.Put("/", handler.update)
	router.Delete("/", handler.delete)

	return router
}

// createRequest defines the expected JSON payload for proposing a book.
type createRequest struct {
	TitleOrig   string  `json:"title_orig"`
	TitleEn     string  `json:"title_en"`
	TitleIt     *string `json:"title_it"`
	Author      string  `json:"author"`
	ReleaseYear *int    `json:"release_year"`
	Pages       *int    `json:"pages"`
	Notes       *string `json:"notes"`
	Link        *string `json:"link"`
}

/*
POST /api/v1/books.

Description: Proposes a new book record. The authenticated patron becomes
its proposer.

Response:
  - 201: Book: The created record
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

	var created *Book

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := patron.ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		created, err = handler.bookService.Create(request.Context(), session, current, CreateInput{
			TitleOrig:   input.TitleOrig,
			TitleEn:     input.TitleEn,
			TitleIt:     input.TitleIt,
			Author:      input.Author,
			ReleaseYear: input.ReleaseYear,
			Pages:       input.Pages,
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
GET /api/v1/books/{book_id}.

Response:
  - 200: Book
  - 401: Unauthorized
  - 404: NotFound
*/
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	var found *Book

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		found, err = handler.bookService.Get(request.Context(), session, requestutil.ID(request, "book_id"))
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
GET /api/v1/books.

Request:
  - offset: int (query, default 0)
  - limit: int (query, default 100, max 100)

Response:
  - 200: []Book with pagination metadata
  - 401: Unauthorized
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	var records []Book
	var total int64

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		records, total, err = handler.bookService.List(request.Context(), session, params)
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params, total))
}

// updateRequest defines the expected JSON payload for editing a book.
type updateRequest struct {
	TitleOrig   *string `json:"title_orig"`
	TitleEn     *string `json:"title_en"`
	TitleIt     *string `json:"title_it"`
	Author      *string `json:"author"`
	ReleaseYear *int    `json:"release_year"`
	Pages       *int    `json:"pages"`
	Notes       *string `json:"notes"`
	Link        *string `json:"link"`
}

/*
PUT /api/v1/books?book_id=<id>.

Description: Applies partial updates to a book record. Its proposer
or a superuser may edit it.

Response:
  - 200: Book: The updated record
  - 400: Validation: Invalid input data
  - 401: Unauthorized
  - 403: Forbidden: Neither the proposer nor a superuser
  - 404: NotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.RequiredQuery(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var updated *Book

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := patron.ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		updated, err = handler.bookService.Update(request.Context(), session, current, bookID, UpdateInput{
			TitleOrig:   input.TitleOrig,
			TitleEn:     input.TitleEn,
			TitleIt:     input.TitleIt,
			Author:      input.Author,
			ReleaseYear: input.ReleaseYear,
			Pages:       input.Pages,
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
DELETE /api/v1/books?book_id=<id>.

Description: Removes a book record. Superusers only.

Response:
  - 204: No Content
  - 401: Unauthorized
  - 403: Forbidden: Caller is not a superuser
  - 404: NotFound
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.RequiredQuery(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := patron.ResolveSuperuser(request.Context(), session, handler.gate); err != nil {
			return err
		}

		return handler.bookService.Delete(request.Context(), session, bookID)
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
