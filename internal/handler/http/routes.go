// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version/", h.getServerVersion)

	// routes without authorization
	router.Route("/api/user", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
	})

	router.Route("/api/posts", func(r chi.Router) {
		r.Get("/", h.listPosts)
		r.Get("/{postId}", h.getPost)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/", h.createPost)
			r.Patch("/{postId}", h.updatePost)
			r.Delete("/{postId}", h.deletePost)
		})
	})

	// user-scoped routes are guarded by requireSameUser
	router.Route("/api/users/{userId}", func(r chi.Router) {
		r.Use(h.auth, h.requireSameUser)
		r.Get("/", h.getProfile)
		r.Get("/posts", h.listUserPosts)
		r.Put("/bookmarks/{postId}", h.addBookmark)
		r.Delete("/bookmarks/{postId}", h.removeBookmark)
	})

	if h.uploadsDir != "" {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", serveImages(h.uploadsDir)))
	}

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
