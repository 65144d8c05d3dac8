// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/adapter"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	service.ErrEmailTaken:         {http.StatusConflict, "This email is already registered"},
	service.ErrUsernameTaken:      {http.StatusConflict, "This username is taken"},
	service.ErrInvalidCredentials: {http.StatusUnauthorized, "Incorrect email or password"},

	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, msgAuthorizationRequired},
	service.ErrTokenCreationFailed:     {http.StatusInternalServerError, msgInternalError},

	service.ErrPostNotFound: {http.StatusNotFound, msgPostNotFound},
	service.ErrUserNotFound: {http.StatusNotFound, msgUserNotFound},
	service.ErrForbidden:    {http.StatusForbidden, msgNotAuthorized},

	service.ErrInvalidImage:     {http.StatusUnprocessableEntity, msgInputErrors},
	service.ErrImageHostFailure: {http.StatusBadGateway, "Image could not be stored"},

	validators.ErrUnknownField:    {http.StatusUnprocessableEntity, msgInputErrors},
	validators.ErrUnsupportedType: {http.StatusInternalServerError, msgInternalError},
	utils.ErrEmptyBody:            {http.StatusBadRequest, msgInvalidBody},
	errInvalidBody:                {http.StatusBadRequest, msgInvalidBody},
	errUnknownPatchField:          {http.StatusUnprocessableEntity, msgInputErrors},
	store.ErrBuildingSQLQuery:     {http.StatusInternalServerError, msgInternalError},
	store.ErrExecutingQuery:       {http.StatusInternalServerError, msgInternalError},
	store.ErrBeginningTransaction: {http.StatusInternalServerError, msgInternalError},
	store.ErrCommitingTransaction: {http.StatusInternalServerError, msgInternalError},
	store.ErrExecutingStatement:   {http.StatusInternalServerError, msgInternalError},
	store.ErrScanningRow:          {http.StatusInternalServerError, msgInternalError},
	store.ErrScanningRows:         {http.StatusInternalServerError, msgInternalError},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{http.StatusInternalServerError, msgInternalError}
}

// writeServiceError renders err as an error envelope. Validation failures
// produce one error entry per failed rule; server-side failures are logged
// and reported with a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		writeError(w, r, http.StatusUnprocessableEntity, msgInputErrors, fieldErrs.Messages()...)
		return
	}

	var emptyErr *service.EmptyFieldsError
	if errors.As(err, &emptyErr) {
		env := models.NewErrorEnvelope(http.StatusBadRequest, msgAllFieldsRequired)
		env.Data = map[string][]string{"emptyFields": emptyErr.Fields}
		writeEnvelope(w, r, env)
		return
	}

	resp := responseFromError(err)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", resp.status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", resp.status).Msg("request rejected")
	}

	details := []string{resp.message}
	if errors.Is(err, service.ErrForbidden) {
		details = []string{"Only the author or an admin can change this post."}
	}
	switch {
	case errors.Is(err, adapter.ErrImageTooLarge):
		details = []string{"Image exceeds the size limit"}
	case errors.Is(err, service.ErrInvalidImage):
		details = []string{"Image must be a PNG, JPEG, GIF, WebP, BMP or TIFF file"}
	}
	writeError(w, r, resp.status, resp.message, details...)
}
