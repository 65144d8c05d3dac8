// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

const originHeader = "Origin"

// trusted reports whether the request comes from the trusted origin.
func (h *Handler) trusted(r *http.Request) bool {
	return h.services.Visibility.IsTrusted(r.Header.Get(originHeader))
}

// pathID parses a UUID path parameter. ok is false for malformed ids.
func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseListParams(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.services.PostService.ListPosts(r.Context(), params, h.trusted(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writePage(w, r, page)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postId")
	if !ok {
		writeError(w, r, http.StatusNotFound, msgPostNotFound)
		return
	}

	post, err := h.services.PostService.GetPost(r.Context(), postID, h.trusted(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, post)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	authorID, err := callerID(r)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
		return
	}

	var req models.CreatePostRequest
	if isMultipart(r) {
		req, err = h.decodeMultipartCreate(w, r)
	} else {
		err = utils.DecodeJSON(r.Body, &req, false)
	}
	if err != nil {
		log.Debug().Err(err).Str("func", "*Handler.createPost").Msg("invalid post body")
		writeServiceError(w, r, err)
		return
	}
	req.AuthorID = authorID

	post, err := h.services.PostService.CreatePost(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Str("post_id", post.ID.String()).Msg("post created")
	writeSuccess(w, r, http.StatusCreated, post)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
		return
	}

	postID, ok := pathID(r, "postId")
	if !ok {
		writeError(w, r, http.StatusNotFound, msgPostNotFound)
		return
	}

	req := models.UpdatePostRequest{PostID: postID, UserID: userID}
	if isMultipart(r) {
		req.Patch, req.Upload, err = h.decodeMultipartPatch(w, r)
	} else {
		req.Patch, err = decodeJSONPatch(r)
	}
	if err != nil {
		log.Debug().Err(err).Str("func", "*Handler.updatePost").Msg("invalid patch body")
		writeServiceError(w, r, err)
		return
	}

	post, err := h.services.PostService.UpdatePost(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Str("post_id", post.ID.String()).Msg("post updated")
	writeSuccess(w, r, http.StatusOK, post)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
		return
	}

	postID, ok := pathID(r, "postId")
	if !ok {
		writeError(w, r, http.StatusNotFound, msgPostNotFound)
		return
	}

	result, err := h.services.PostService.DeletePost(r.Context(), models.DeletePostRequest{PostID: postID, UserID: userID})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var messages []string
	if result.ImageCleanupScheduled {
		messages = append(messages, "Post deleted, image removal scheduled")
	}

	logger.FromRequest(r).Info().Str("post_id", postID.String()).Msg("post deleted")
	writeSuccess(w, r, http.StatusOK, result.Post, messages...)
}
