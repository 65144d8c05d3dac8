// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

// Envelope messages shared by several handlers.
const (
	msgAuthorizationRequired = "Authorization Required"
	msgNotAuthorized         = "Not authorized"
	msgOtherUsersData        = "Users can not access the data of another user."
	msgInputErrors           = "User input errors found in request body"
	msgAllFieldsRequired     = "All fields are required"
	msgPostNotFound          = "Post not found"
	msgUserNotFound          = "User not found"
	msgResourceNotFound      = "Resource not found"
	msgMethodNotAllowed      = "Method not allowed"
	msgInvalidBody           = "Invalid request body"
	msgInternalError         = "Internal server error"
)

func writeEnvelope(w http.ResponseWriter, r *http.Request, env models.Envelope) {
	if _, err := utils.WriteJSON(w, env, env.Code); err != nil {
		logger.FromRequest(r).Err(err).Int("code", env.Code).Msg("error writing response")
	}
}

func writeSuccess(w http.ResponseWriter, r *http.Request, code int, data any, messages ...string) {
	writeEnvelope(w, r, models.NewSuccessEnvelope(code, data, messages...))
}

func writeError(w http.ResponseWriter, r *http.Request, code int, message string, details ...string) {
	writeEnvelope(w, r, models.NewErrorEnvelope(code, message, details...))
}

// writePage renders a listing window with its metadata and navigation links.
func writePage(w http.ResponseWriter, r *http.Request, page models.PostPage) {
	posts := page.Posts
	if posts == nil {
		posts = []models.Post{}
	}

	env := models.NewSuccessEnvelope(http.StatusOK, posts)
	env.Metadata = &models.PageMetadata{
		TotalCount: page.TotalCount,
		Page:       page.Params.Page,
		PageSize:   page.Params.PageSize,
	}
	env.Links = pageLinks(r.URL, page.Params, page.TotalCount)

	writeEnvelope(w, r, env)
}
