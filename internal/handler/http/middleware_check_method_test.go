// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	ok := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(status) }
	}

	router.Get("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("items"))
	})
	router.Post("/api/items", ok(http.StatusCreated))
	router.Get("/api/items/{id}", ok(http.StatusOK))
	router.Patch("/api/items/{id}", ok(http.StatusOK))
	router.Delete("/api/items/{id}", ok(http.StatusNoContent))

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{
			name:       "registered method passes through",
			method:     http.MethodGet,
			path:       "/api/items",
			wantStatus: http.StatusOK,
		},
		{
			name:       "registered method on parameterised route",
			method:     http.MethodDelete,
			path:       "/api/items/42",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "wrong method on collection",
			method:     http.MethodPut,
			path:       "/api/items",
			wantStatus: http.StatusMethodNotAllowed,
			wantAllow:  "GET, POST",
		},
		{
			name:       "wrong method on parameterised route",
			method:     http.MethodPost,
			path:       "/api/items/42",
			wantStatus: http.StatusMethodNotAllowed,
			wantAllow:  "GET, PATCH, DELETE",
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/nonexistent",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Allow"))
		})
	}
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "items", rr.Body.String())
}

func TestCheckHTTPMethod_Envelope(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/items", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, http.StatusMethodNotAllowed, env.Code)
	assert.Equal(t, []string{msgMethodNotAllowed}, env.Messages)
}

func TestNotFound_Envelope(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, []string{msgResourceNotFound}, env.Messages)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "404", env.Errors[0].Status)
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()
	const n = 50
	done := make(chan int, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			method := http.MethodGet
			if i%2 == 1 {
				method = http.MethodPut
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(method, "/api/items", nil))
			done <- rr.Code
		}(i)
	}

	for i := 0; i < n; i++ {
		code := <-done
		assert.True(t, code == http.StatusOK || code == http.StatusMethodNotAllowed,
			"unexpected status code: %d", code)
	}
}

func TestCheckHTTPMethod_NestedRouters(t *testing.T) {
	noop := func(w http.ResponseWriter, r *http.Request) {}

	router := chi.NewRouter()
	router.Route("/api/articles", func(r chi.Router) {
		r.Get("/", noop)
		r.Post("/", noop)
		r.Get("/{id}", noop)
		r.Delete("/{id}", noop)
	})
	router.Route("/api/owners/{ownerId}", func(r chi.Router) {
		r.Get("/", noop)
		r.Put("/pins/{id}", noop)
	})
	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		name      string
		method    string
		path      string
		wantAllow string
	}{
		{"nested root without slash", http.MethodDelete, "/api/articles", "GET, POST"},
		{"nested root with slash", http.MethodPatch, "/api/articles/", "GET, POST"},
		{"nested parameterised route", http.MethodPost, "/api/articles/7", "GET, DELETE"},
		{"parameterised nested root", http.MethodPost, "/api/owners/1", "GET"},
		{"deep nested route", http.MethodGet, "/api/owners/1/pins/2", "PUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Allow"))
		})
	}
}

func TestAllowedMethods_FlatCopy(t *testing.T) {
	noop := func(w http.ResponseWriter, r *http.Request) {}
	router := chi.NewRouter()
	router.Route("/api/articles", func(r chi.Router) {
		r.Get("/", noop)
	})

	routes := flattenRoutes(router)

	assert.Equal(t, []string{http.MethodGet}, allowedMethods(routes, "/api/articles"))
	assert.Empty(t, allowedMethods(routes, "/api/unknown"))
}
