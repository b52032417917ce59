// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package patron

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mediateca/internal/platform/postgres"
	requestutil "github.com/taibuivan/mediateca/internal/platform/request"
	"github.com/taibuivan/mediateca/internal/platform/respond"
	"github.com/taibuivan/mediateca/pkg/pagination"
)

// Handler implements the HTTP layer for patron management.
type Handler struct {
	provider      *postgres.Provider
	patronService *Service
	gate          Resolver
}

// NewHandler constructs a new patron [Handler].
func NewHandler(provider *postgres.Provider, service *Service, gate Resolver) *Handler {
	return &Handler{provider: provider, patronService: service, gate: gate}
}

// Routes returns a [chi.Router] configured with the patron domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{patron_id}", handler.read)
	router.Put("/", handler.update)
	router.Put("/su_update", handler.updateAsSuperuser)
	router.Delete("/", handler.delete)

	return router
}

// # Registration Endpoint

// createRequest defines the expected JSON payload for registration.
type createRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

/*
POST /api/v1/patrons.

Description: Registers a new patron. Open to anonymous callers only; an
already-authenticated patron is redirected away instead of creating a
second account.

Response:
  - 201: Patron: The created account
  - 307: Redirect to / for authenticated callers
  - 400: Validation: Invalid input data
  - 409: Conflict: Username already taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var created *Patron
	var redirect bool

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := handler.gate.Optional(request.Context(), session)
		if err != nil {
			return err
		}
		if current != nil {
			redirect = true
			return nil
		}

		created, err = handler.patronService.Register(request.Context(), session, RegisterInput{
			Username: input.Username,
			Email:    input.Email,
			Name:     input.Name,
			Password: input.Password,
		})
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if redirect {
		http.Redirect(writer, request, "/", http.StatusTemporaryRedirect)
		return
	}

	respond.Created(writer, created)
}

// # Lookup Endpoints

/*
GET /api/v1/patrons/{patron_id}.

Description: Retrieves a patron by ID. Requires an active patron.

Response:
  - 200: Patron
  - 401: Unauthorized: Missing or invalid credentials
  - 403: Forbidden: Inactive account
  - 404: NotFound: No such patron
*/
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	var found *Patron

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		found, err = handler.patronService.Get(request.Context(), session, requestutil.ID(request, "patron_id"))
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
GET /api/v1/patrons.

Description: Lists patrons with offset/limit pagination. Requires an active
patron.

Request:
  - offset: int (query, default 0)
  - limit: int (query, default 100, max 100)

Response:
  - 200: []Patron with pagination metadata
  - 401: Unauthorized: Missing or invalid credentials
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	var patrons []Patron
	var total int64

	err := handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := ResolveActive(request.Context(), session, handler.gate); err != nil {
			return err
		}

		var err error
		patrons, total, err = handler.patronService.List(request.Context(), session, params)
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, patrons, pagination.NewMeta(params, total))
}

// # Update Endpoints

// updateRequest defines the expected JSON payload for profile updates.
type updateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// superuserUpdateRequest additionally carries the administrative flags.
type superuserUpdateRequest struct {
	updateRequest
	IsActive    *bool `json:"is_active"`
	IsSuperuser *bool `json:"is_superuser"`
}

/*
PUT /api/v1/patrons?patron_id=<id>.

Description: Applies partial updates to the caller's own profile. Patrons
cannot edit each other; superusers use the dedicated su_update endpoint.

Response:
  - 200: Patron: The updated profile
  - 400: Validation: Invalid input data
  - 401: Unauthorized: Missing or invalid credentials
  - 403: Forbidden: Attempting to edit another patron
  - 404: NotFound: No such patron
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	patronID, err := requestutil.RequiredQuery(request, "patron_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var updated *Patron

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		current, err := ResolveActive(request.Context(), session, handler.gate)
		if err != nil {
			return err
		}

		// Existence first, so editing a vanished account reads as 404
		// rather than a privilege problem.
		if _, err := handler.patronService.Get(request.Context(), session, patronID); err != nil {
			return err
		}

		if err := RequireSelf(current, patronID); err != nil {
			return err
		}

		updated, err = handler.patronService.Update(request.Context(), session, patronID, UpdateInput{
			Username: input.Username,
			Email:    input.Email,
			Name:     input.Name,
			Password: input.Password,
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
PUT /api/v1/patrons/su_update?patron_id=<id>.

Description: Applies partial updates to any patron, including the is_active
and is_superuser flags. Superusers only.

Response:
  - 200: Patron: The updated profile
  - 400: Validation: Invalid input data
  - 401: Unauthorized: Missing or invalid credentials
  - 403: Forbidden: Caller is not a superuser
  - 404: NotFound: No such patron
*/
func (handler *Handler) updateAsSuperuser(writer http.ResponseWriter, request *http.Request) {
	patronID, err := requestutil.RequiredQuery(request, "patron_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input superuserUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var updated *Patron

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := ResolveSuperuser(request.Context(), session, handler.gate); err != nil {
			return err
		}

		if _, err := handler.patronService.Get(request.Context(), session, patronID); err != nil {
			return err
		}

		updated, err = handler.patronService.UpdateAsSuperuser(request.Context(), session, patronID, SuperuserUpdateInput{
			UpdateInput: UpdateInput{
				Username: input.Username,
				Email:    input.Email,
				Name:     input.Name,
				Password: input.Password,
			},
			IsActive:    input.IsActive,
			IsSuperuser: input.IsSuperuser,
		})
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// # Removal Endpoint

/*
DELETE /api/v1/patrons?patron_id=<id>.

Description: Removes a patron account. Superusers only.

Response:
  - 204: No Content
  - 401: Unauthorized: Missing or invalid credentials
  - 403: Forbidden: Caller is not a superuser
  - 404: NotFound: No such patron
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	patronID, err := requestutil.RequiredQuery(request, "patron_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.provider.WithSession(request.Context(), func(session postgres.Session) error {
		if _, err := ResolveSuperuser(request.Context(), session, handler.gate); err != nil {
			return err
		}

		return handler.patronService.Delete(request.Context(), session, patronID)
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
