// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// CheckHTTPMethod returns the handler registered as the router's
// MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// It answers with a 405 envelope and an Allow header listing the methods
// the matched route does handle. Nested routers are mounted behind
// catch-all stubs that match every method, so the lookup runs against a
// flat copy of the route table built on first use.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	var (
		once   sync.Once
		routes *chi.Mux
	)

	return func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { routes = flattenRoutes(router) })

		allowed := allowedMethods(routes, r.URL.Path)
		if len(allowed) == 0 {
			writeError(w, r, http.StatusNotFound, msgResourceNotFound)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		writeError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

// flattenRoutes registers every endpoint of router, nested ones included,
// on a single-level mux. [chi.Walk] skips mount stubs and reports nested
// routes with their full pattern.
func flattenRoutes(router chi.Routes) *chi.Mux {
	flat := chi.NewRouter()
	_ = chi.Walk(router, func(method, route string, handler http.Handler, _ ...func(http.Handler) http.Handler) error {
		flat.Method(method, route, handler)
		return nil
	})
	return flat
}

// allowedMethods lists the methods routes accepts for path. A nested
// router serves its root for the path without a trailing slash as well.
func allowedMethods(routes *chi.Mux, path string) []string {
	candidates := []string{path}
	if !strings.HasSuffix(path, "/") {
		candidates = append(candidates, path+"/")
	}

	allowed := make([]string, 0, len(routeMethods))
	for _, method := range routeMethods {
		for _, candidate := range candidates {
			if routes.Match(chi.NewRouteContext(), method, candidate) {
				allowed = append(allowed, method)
				break
			}
		}
	}
	return allowed
}

// notFound renders router-level 404 as an envelope.
func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, msgResourceNotFound)
}
