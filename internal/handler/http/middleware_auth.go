// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the authenticated user's ID in the request context (see
// [utils.WithUserID]) before delegating to the next handler.
//
// A missing header, a header that is not "Bearer <token>" and an invalid or
// expired token are all answered with a 401 envelope.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("error occurred during parsing token")
			writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
			return
		}

		ctx = utils.WithUserID(ctx, token.UserID)
		ctx = logger.ContextWithFields(ctx, "user_id", token.UserID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSameUser lets a request through only when the {userId} path
// parameter names the authenticated caller. It must run after auth.
func (h *Handler) requireSameUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil || userID != callerID {
			logger.FromRequest(r).Debug().
				Str("path_user_id", chi.URLParam(r, "userId")).
				Msg("access to another user's data refused")
			writeError(w, r, http.StatusForbidden, msgNotAuthorized, msgOtherUsersData)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// callerID returns the identity placed in the context by auth.
func callerID(r *http.Request) (uuid.UUID, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, ErrNoIdentity
	}
	return userID, nil
}
