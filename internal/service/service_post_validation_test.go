// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/mock"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

// stubPostService records what reached the inner service. The generated
// service mocks import this package, so they cannot be used here.
type stubPostService struct {
	created []models.CreatePostRequest
	updated []models.UpdatePostRequest
}

func (s *stubPostService) ListPosts(_ context.Context, params models.ListParams, _ bool) (models.PostPage, error) {
	return models.PostPage{Params: params}, nil
}

func (s *stubPostService) GetPost(_ context.Context, postID uuid.UUID, _ bool) (models.Post, error) {
	return models.Post{ID: postID}, nil
}

func (s *stubPostService) CreatePost(_ context.Context, req models.CreatePostRequest) (models.Post, error) {
	s.created = append(s.created, req)
	return models.Post{Title: req.Title, Body: req.Body}, nil
}

func (s *stubPostService) UpdatePost(_ context.Context, req models.UpdatePostRequest) (models.Post, error) {
	s.updated = append(s.updated, req)
	return models.Post{ID: req.PostID}, nil
}

func (s *stubPostService) DeletePost(_ context.Context, req models.DeletePostRequest) (models.DeletePostResult, error) {
	return models.DeletePostResult{Post: models.Post{ID: req.PostID}}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestValidationService(t *testing.T, strict bool) (PostService, *stubPostService, *mock.MockValidator) {
	t.Helper()
	validator := mock.NewMockValidator(gomock.NewController(t))
	inner := &stubPostService{}

	svc := NewPostValidationService(validator, config.Posts{StrictEmptyFields: strict}).Wrap(inner)
	return svc, inner, validator
}

// ─────────────────────────────────────────────
// CreatePost, JSON variant
// ─────────────────────────────────────────────

func TestPostValidation_CreatePost_EmptyFields(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		title  string
		body   string
		want   []string
	}{
		{name: "missing title reported as body", title: "", body: "text", want: []string{"body"}},
		{name: "missing body", title: "T", body: "", want: []string{"body"}},
		{name: "both missing", title: "", body: "  ", want: []string{"body", "body"}},
		{name: "strict missing title", strict: true, title: " ", body: "text", want: []string{"title"}},
		{name: "strict both missing", strict: true, want: []string{"title", "body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, inner, _ := newTestValidationService(t, tt.strict)

			_, err := svc.CreatePost(context.Background(), models.CreatePostRequest{Title: tt.title, Body: tt.body})

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEmptyFields)

			var emptyErr *EmptyFieldsError
			require.True(t, errors.As(err, &emptyErr))
			assert.Equal(t, tt.want, emptyErr.Fields)
			assert.Empty(t, inner.created)
		})
	}
}

func TestPostValidation_CreatePost_JSONPassesNormalized(t *testing.T) {
	svc, inner, _ := newTestValidationService(t, false)

	post, err := svc.CreatePost(context.Background(), models.CreatePostRequest{
		Title: "  Hello ",
		Body:  "World\n",
		Tags:  []string{" a", "a", ""},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	require.Len(t, inner.created, 1)
	assert.Equal(t, []string{"a"}, inner.created[0].Tags)
}

// ─────────────────────────────────────────────
// CreatePost, multipart variant
// ─────────────────────────────────────────────

func TestPostValidation_CreatePost_MultipartRunsRules(t *testing.T) {
	svc, inner, validator := newTestValidationService(t, false)
	ctx := context.Background()
	req := models.CreatePostRequest{Title: "T", Body: "B", ImageSourceLink: "not a url", Multipart: true}

	fieldErrs := validators.FieldErrors{{Field: validators.FieldImageSourceLink, Message: validators.MsgInvalidSourceLink}}
	validator.EXPECT().Validate(ctx, req.Normalized()).Return(fieldErrs)

	_, err := svc.CreatePost(ctx, req)

	assert.ErrorIs(t, err, validators.ErrValidation)
	assert.NotErrorIs(t, err, ErrEmptyFields)
	assert.Empty(t, inner.created)
}

func TestPostValidation_CreatePost_MultipartValid(t *testing.T) {
	svc, inner, validator := newTestValidationService(t, false)
	ctx := context.Background()

	validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)

	_, err := svc.CreatePost(ctx, models.CreatePostRequest{Title: "T", Body: "B", Multipart: true})

	require.NoError(t, err)
	assert.Len(t, inner.created, 1)
}

// ─────────────────────────────────────────────
// UpdatePost and pass-through methods
// ─────────────────────────────────────────────

func TestPostValidation_UpdatePost(t *testing.T) {
	svc, inner, validator := newTestValidationService(t, false)
	ctx := context.Background()
	empty := ""

	fieldErrs := validators.FieldErrors{{Field: validators.FieldTitle, Message: validators.MsgAllFieldsRequired}}
	validator.EXPECT().Validate(ctx, models.PostPatch{Title: &empty}).Return(fieldErrs)

	title := "   "
	_, err := svc.UpdatePost(ctx, models.UpdatePostRequest{Patch: models.PostPatch{Title: &title}})

	assert.ErrorIs(t, err, validators.ErrValidation)
	assert.Empty(t, inner.updated)
}

func TestPostValidation_PassThrough(t *testing.T) {
	svc, _, _ := newTestValidationService(t, false)
	ctx := context.Background()
	id := uuid.New()

	post, err := svc.GetPost(ctx, id, false)
	require.NoError(t, err)
	assert.Equal(t, id, post.ID)

	page, err := svc.ListPosts(ctx, models.DefaultListParams(), true)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultListParams(), page.Params)

	result, err := svc.DeletePost(ctx, models.DeletePostRequest{PostID: id})
	require.NoError(t, err)
	assert.Equal(t, id, result.Post.ID)
}
