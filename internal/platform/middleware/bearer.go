// Copyright (c) 2026 Mediateca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/mediateca/internal/platform/constants"
	"github.com/taibuivan/mediateca/internal/platform/ctxutil"
)

// BearerToken extracts the raw bearer credential from the Authorization header
// and stashes it in the request context.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, the request proceeds with a zero-value [ctxutil.Bearer]
//     (anonymous).
//  3. If present, record the raw token. Malformed headers are recorded as
//     presented-but-empty so the authentication gate rejects them uniformly.
//
// # Why no verification here?
//
// Token verification requires a patron lookup, which must happen inside the
// same database session as the operation it guards. The handler resolves
// identity through the authentication gate once its session is open; this
// middleware only transports the credential.
func BearerToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// 1. Anonymous access
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Format validation
			bearer := ctxutil.Bearer{Presented: true}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				bearer.Token = strings.TrimSpace(parts[1])
			}

			// 3. Context injection
			ctx := ctxutil.WithBearer(request.Context(), bearer)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
