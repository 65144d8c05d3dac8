// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := utils.DecodeJSON(r.Body, &req, false); err != nil {
		log.Debug().Err(err).Str("func", "*Handler.signup").Msg("Invalid JSON was passed")
		writeError(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Str("user_id", result.User.ID.String()).Msg("user signed up")
	writeAuthResult(w, r, http.StatusCreated, result)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(r.Body, &req, false); err != nil {
		log.Debug().Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		writeError(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Debug().Str("user_id", result.User.ID.String()).Msg("user successfully logged in")
	writeAuthResult(w, r, http.StatusOK, result)
}

// writeAuthResult sends the token both in the Authorization header and in
// data.token.
func writeAuthResult(w http.ResponseWriter, r *http.Request, code int, result models.AuthResult) {
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", result.Token))
	writeSuccess(w, r, code, result)
}
