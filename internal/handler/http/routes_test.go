// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
)

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	postID := uuid.Must(uuid.NewV7()).String()
	userID := uuid.Must(uuid.NewV7()).String()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/posts"},
		{http.MethodPatch, "/api/posts/" + postID},
		{http.MethodDelete, "/api/posts/" + postID},
		{http.MethodGet, "/api/users/" + userID},
		{http.MethodGet, "/api/users/" + userID + "/posts"},
		{http.MethodPut, "/api/users/" + userID + "/bookmarks/" + postID},
		{http.MethodDelete, "/api/users/" + userID + "/bookmarks/" + postID},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			e := newTestEnv(t)

			rec := e.do(t, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, []string{msgAuthorizationRequired}, decodeEnvelope(t, rec).Messages)
		})
	}
}

func TestInit_UnknownRoutes_Return404Envelope(t *testing.T) {
	for _, path := range []string{"/api/nonexistent", "/totally/wrong", "/api/user/profile", "/uploads/a.png"} {
		t.Run(path, func(t *testing.T) {
			e := newTestEnv(t)

			rec := e.do(t, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusNotFound, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, []string{msgResourceNotFound}, env.Messages)
		})
	}
}

func TestInit_WrongMethod_Returns405Envelope(t *testing.T) {
	postID := uuid.Must(uuid.NewV7()).String()

	tests := []struct {
		method    string
		path      string
		wantAllow string
	}{
		{http.MethodGet, "/api/user/signup", "POST"},
		{http.MethodGet, "/api/user/login", "POST"},
		{http.MethodPost, "/api/version/", "GET"},
		{http.MethodPut, "/api/posts/" + postID, "GET, PATCH, DELETE"},
		{http.MethodDelete, "/api/posts", "GET, POST"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			e := newTestEnv(t)

			rec := e.do(t, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Allow"))
			assert.Equal(t, []string{msgMethodNotAllowed}, decodeEnvelope(t, rec).Messages)
		})
	}
}

func TestInit_TraceIDHeader(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set(traceIDHeader, "my-custom-trace-id-12345")
	rec = e.do(t, req)
	assert.Equal(t, "my-custom-trace-id-12345", rec.Header().Get(traceIDHeader))
}

func TestInit_RecoversFromPanics(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig(), logger.Nop())
	router := h.Init()

	// AppInfoService is nil, so the version handler panics.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInit_ServesUploads(t *testing.T) {
	dir := t.TempDir()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), png, 0o600))

	cfg := testConfig()
	cfg.Storage.Images.Dir = dir
	router := NewHandler(&service.Services{}, cfg, logger.Nop()).Init()

	t.Run("stored file", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/cover.png", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, png, rec.Body.Bytes())
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	})

	t.Run("no directory listing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
