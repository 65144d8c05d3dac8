// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
)

// The handlers below run behind requireSameUser, so the caller and the
// {userId} path parameter are the same user.

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
		return
	}

	h.writeProfile(w, r, userID)
}

func (h *Handler) listUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
		return
	}

	params, err := h.parseListParams(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.services.UserService.ListUserPosts(r.Context(), userID, params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writePage(w, r, page)
}

func (h *Handler) addBookmark(w http.ResponseWriter, r *http.Request) {
	userID, postID, ok := bookmarkIDs(w, r)
	if !ok {
		return
	}

	if err := h.services.UserService.AddBookmark(r.Context(), userID, postID, h.trusted(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("post_id", postID.String()).Msg("bookmark added")
	h.writeProfile(w, r, userID)
}

func (h *Handler) removeBookmark(w http.ResponseWriter, r *http.Request) {
	userID, postID, ok := bookmarkIDs(w, r)
	if !ok {
		return
	}

	if err := h.services.UserService.RemoveBookmark(r.Context(), userID, postID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("post_id", postID.String()).Msg("bookmark removed")
	h.writeProfile(w, r, userID)
}

// bookmarkIDs writes the error response itself when ok is false.
func bookmarkIDs(w http.ResponseWriter, r *http.Request) (userID, postID uuid.UUID, ok bool) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, msgAuthorizationRequired)
		return uuid.Nil, uuid.Nil, false
	}

	postID, ok = pathID(r, "postId")
	if !ok {
		writeError(w, r, http.StatusNotFound, msgPostNotFound)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, postID, true
}

// writeProfile answers with the caller's profile, bookmarks included.
func (h *Handler) writeProfile(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	user, err := h.services.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, user)
}
