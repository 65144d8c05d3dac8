// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/models"
)

// multipartRequest builds a form with the given text fields and an optional
// image part.
func multipartRequest(t *testing.T, method, target string, fields map[string][]string, image []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	if image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="cover.png"`)
		header.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestListPosts(t *testing.T) {
	t.Run("defaults and links", func(t *testing.T) {
		e := newTestEnv(t)
		post := samplePost(uuid.Must(uuid.NewV7()))
		params := models.ListParams{Page: 1, PageSize: 20, Sort: models.SortDesc}
		e.posts.EXPECT().ListPosts(gomock.Any(), params, false).
			Return(models.PostPage{Posts: []models.Post{post}, TotalCount: 45, Params: params}, nil)

		rec := e.do(t, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Metadata)
		assert.Equal(t, models.PageMetadata{TotalCount: 45, Page: 1, PageSize: 20}, *env.Metadata)
		require.NotNil(t, env.Links)
		assert.Equal(t, "/api/posts?page=1&pageSize=20&sort=desc", env.Links.Self)
		assert.Empty(t, env.Links.Prev)
		assert.Equal(t, "/api/posts?page=2&pageSize=20&sort=desc", env.Links.Next)

		var posts []models.Post
		require.NoError(t, json.Unmarshal(env.Data, &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, post.ID, posts[0].ID)
	})

	t.Run("query parameters and trusted origin", func(t *testing.T) {
		e := newTestEnv(t)
		params := models.ListParams{Tag: "go", Page: 3, PageSize: 10, Sort: models.SortAsc}
		e.posts.EXPECT().ListPosts(gomock.Any(), params, true).
			Return(models.PostPage{TotalCount: 30, Params: params}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/posts?tag=go&page=3&pageSize=10&sort=ASC", nil)
		req.Header.Set("Origin", testTrustedOrigin)
		rec := e.do(t, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		env := decodeEnvelope(t, rec)
		assert.JSONEq(t, `[]`, string(env.Data))
		assert.Equal(t, "/api/posts?page=2&pageSize=10&sort=asc&tag=go", env.Links.Prev)
		assert.Empty(t, env.Links.Next)
	})

	t.Run("invalid parameters are reported one by one", func(t *testing.T) {
		e := newTestEnv(t)

		rec := e.do(t, httptest.NewRequest(http.MethodGet, "/api/posts?page=0&pageSize=500&sort=up", nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Len(t, env.Errors, 3)
	})

	t.Run("page whose window overflows is rejected", func(t *testing.T) {
		e := newTestEnv(t)
		page := strconv.Itoa(models.MaxPage(100) + 1)

		rec := e.do(t, httptest.NewRequest(http.MethodGet, "/api/posts?pageSize=100&page="+page, nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		require.Len(t, env.Errors, 1)
		assert.Contains(t, env.Errors[0].Detail, "page must not exceed")
	})

	t.Run("largest page lists without a next link", func(t *testing.T) {
		e := newTestEnv(t)
		params := models.ListParams{Page: models.MaxPage(100), PageSize: 20, Sort: models.SortDesc}
		e.posts.EXPECT().ListPosts(gomock.Any(), params, false).
			Return(models.PostPage{TotalCount: 5, Params: params}, nil)

		rec := e.do(t, httptest.NewRequest(http.MethodGet, "/api/posts?page="+strconv.Itoa(params.Page), nil))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		env := decodeEnvelope(t, rec)
		assert.Empty(t, env.Links.Next)
		assert.NotEmpty(t, env.Links.Prev)
	})
}

func TestGetPost(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		e := newTestEnv(t)
		post := samplePost(uuid.Must(uuid.NewV7()))
		e.posts.EXPECT().GetPost(gomock.Any(), post.ID, false).Return(post, nil)

		rec := e.do(t, httptest.NewRequest(http.MethodGet, "/api/posts/"+post.ID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Contains(t, string(env.Data), `"body_html":"<p>Some <em>markdown</em></p>"`)
	})

	t.Run("malformed id skips the lookup", func(t *testing.T) {
		e := newTestEnv(t)

		rec := e.do(t, httptest.NewRequest(http.MethodGet, "/api/posts/not-a-uuid", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, []string{msgPostNotFound}, decodeEnvelope(t, rec).Messages)
	})

	t.Run("hidden draft", func(t *testing.T) {
		e := newTestEnv(t)
		id := uuid.Must(uuid.NewV7())
		e.posts.EXPECT().GetPost(gomock.Any(), id, false).Return(models.Post{}, service.ErrPostNotFound)

		rec := e.do(t, httptest.NewRequest(http.MethodGet, "/api/posts/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreatePost(t *testing.T) {
	authorID := uuid.Must(uuid.NewV7())

	t.Run("requires a token", func(t *testing.T) {
		e := newTestEnv(t)

		rec := e.do(t, jsonRequest(t, http.MethodPost, "/api/posts", map[string]string{"title": "t"}))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, []string{msgAuthorizationRequired}, decodeEnvelope(t, rec).Messages)
	})

	t.Run("JSON body", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(authorID)
		post := samplePost(authorID)
		e.posts.EXPECT().CreatePost(gomock.Any(), models.CreatePostRequest{
			AuthorID: authorID,
			Title:    "Hello",
			Body:     "Some *markdown*",
			Tags:     []string{"go"},
		}).Return(post, nil)

		req := jsonRequest(t, http.MethodPost, "/api/posts", `{"title":"Hello","body":"Some *markdown*","tags":["go"]}`)
		rec := e.do(t, withToken(req))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, models.StatusSuccess, decodeEnvelope(t, rec).Status)
	})

	t.Run("JSON empty fields", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(authorID)
		e.posts.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
			Return(models.Post{}, &service.EmptyFieldsError{Fields: []string{"body", "body"}})

		rec := e.do(t, withToken(jsonRequest(t, http.MethodPost, "/api/posts", `{}`)))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, []string{msgAllFieldsRequired}, env.Messages)
		assert.JSONEq(t, `{"emptyFields":["body","body"]}`, string(env.Data))
	})

	t.Run("multipart with image", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(authorID)
		image := []byte("\x89PNG\r\n\x1a\nfake")

		e.posts.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req models.CreatePostRequest) (models.Post, error) {
				assert.True(t, req.Multipart)
				assert.Equal(t, authorID, req.AuthorID)
				assert.Equal(t, "Hello", req.Title)
				assert.Equal(t, []string{"go", "web", "api"}, req.Tags)
				assert.True(t, req.IsPublished)
				assert.Equal(t, "Unsplash", req.ImageSource)
				require.NotNil(t, req.Upload)
				assert.Equal(t, "cover.png", req.Upload.Filename)
				assert.Equal(t, "image/png", req.Upload.ContentType)
				assert.Equal(t, image, req.Upload.Content)
				return samplePost(authorID), nil
			})

		req := multipartRequest(t, http.MethodPost, "/api/posts", map[string][]string{
			"title":        {"Hello"},
			"body":         {"Some *markdown*"},
			"tags":         {"go, web", "api"},
			"is_published": {"true"},
			"img_src":      {"Unsplash"},
		}, image)
		rec := e.do(t, withToken(req))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("multipart with invalid flag", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(authorID)

		req := multipartRequest(t, http.MethodPost, "/api/posts", map[string][]string{
			"title":        {"Hello"},
			"is_published": {"maybe"},
		}, nil)
		rec := e.do(t, withToken(req))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"is_published must be true or false"}, errorDetails(decodeEnvelope(t, rec)))
	})

	t.Run("image host failure", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(authorID)
		e.posts.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
			Return(models.Post{}, fmt.Errorf("%w: timeout", service.ErrImageHostFailure))

		req := multipartRequest(t, http.MethodPost, "/api/posts", map[string][]string{"title": {"Hello"}}, []byte("img"))
		rec := e.do(t, withToken(req))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestUpdatePost(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	postID := uuid.Must(uuid.NewV7())
	target := "/api/posts/" + postID.String()

	t.Run("JSON patch", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(userID)
		e.posts.EXPECT().UpdatePost(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req models.UpdatePostRequest) (models.Post, error) {
				assert.Equal(t, postID, req.PostID)
				assert.Equal(t, userID, req.UserID)
				require.NotNil(t, req.Patch.Title)
				assert.Equal(t, "New title", *req.Patch.Title)
				require.NotNil(t, req.Patch.IsPublished)
				assert.False(t, *req.Patch.IsPublished)
				assert.Nil(t, req.Patch.Body)
				assert.Nil(t, req.Upload)
				return samplePost(userID), nil
			})

		req := jsonRequest(t, http.MethodPatch, target, `{"title":"New title","is_published":false}`)
		rec := e.do(t, withToken(req))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(userID)

		req := jsonRequest(t, http.MethodPatch, target, `{"title":"x","author":"me","img_url":"http://x"}`)
		rec := e.do(t, withToken(req))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t,
			[]string{"Field 'author' can not be updated", "Field 'img_url' can not be updated"},
			errorDetails(decodeEnvelope(t, rec)))
	})

	t.Run("multipart replacement image", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(userID)
		e.posts.EXPECT().UpdatePost(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req models.UpdatePostRequest) (models.Post, error) {
				assert.Nil(t, req.Patch.Title)
				require.NotNil(t, req.Patch.Tags)
				assert.Equal(t, []string{"a", "b"}, *req.Patch.Tags)
				require.NotNil(t, req.Upload)
				return samplePost(userID), nil
			})

		req := multipartRequest(t, http.MethodPatch, target, map[string][]string{"tags": {"a,b"}}, []byte("img"))
		rec := e.do(t, withToken(req))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("not the author", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(userID)
		e.posts.EXPECT().UpdatePost(gomock.Any(), gomock.Any()).Return(models.Post{}, service.ErrForbidden)

		rec := e.do(t, withToken(jsonRequest(t, http.MethodPatch, target, `{"title":"x"}`)))

		require.Equal(t, http.StatusForbidden, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, []string{msgNotAuthorized}, env.Messages)
		assert.Equal(t, []string{"Only the author or an admin can change this post."}, errorDetails(env))
	})

	t.Run("malformed id", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(userID)

		rec := e.do(t, withToken(jsonRequest(t, http.MethodPatch, "/api/posts/123", `{"title":"x"}`)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeletePost(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	post := samplePost(userID)

	t.Run("deleted", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(userID)
		e.posts.EXPECT().DeletePost(gomock.Any(), models.DeletePostRequest{PostID: post.ID, UserID: userID}).
			Return(models.DeletePostResult{Post: post}, nil)

		rec := e.do(t, withToken(httptest.NewRequest(http.MethodDelete, "/api/posts/"+post.ID.String(), nil)))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Empty(t, env.Messages)
		assert.Contains(t, string(env.Data), post.ID.String())
	})

	t.Run("image cleanup scheduled", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(userID)
		e.posts.EXPECT().DeletePost(gomock.Any(), gomock.Any()).
			Return(models.DeletePostResult{Post: post, ImageCleanupScheduled: true}, nil)

		rec := e.do(t, withToken(httptest.NewRequest(http.MethodDelete, "/api/posts/"+post.ID.String(), nil)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Post deleted, image removal scheduled"}, decodeEnvelope(t, rec).Messages)
	})

	t.Run("unknown post", func(t *testing.T) {
		e := newTestEnv(t)
		e.expectAuth(userID)
		e.posts.EXPECT().DeletePost(gomock.Any(), gomock.Any()).Return(models.DeletePostResult{}, service.ErrPostNotFound)

		rec := e.do(t, withToken(httptest.NewRequest(http.MethodDelete, "/api/posts/"+post.ID.String(), nil)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
