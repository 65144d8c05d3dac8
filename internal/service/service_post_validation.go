// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

// postValidationService checks create and update input before handing it
// to the wrapped PostService. Reads pass through.
type postValidationService struct {
	inner     PostService
	validator validators.Validator

	// strictEmptyFields reports a missing title as "title" instead of the
	// historical "body".
	strictEmptyFields bool
}

func NewPostValidationService(validator validators.Validator, cfg config.Posts) PostServiceWrapper {
	return &postValidationService{
		validator:         validator,
		strictEmptyFields: cfg.StrictEmptyFields,
	}
}

func (v *postValidationService) Wrap(inner PostService) PostService {
	v.inner = inner
	return v
}

func (v *postValidationService) ListPosts(ctx context.Context, params models.ListParams, trusted bool) (models.PostPage, error) {
	return v.inner.ListPosts(ctx, params, trusted)
}

func (v *postValidationService) GetPost(ctx context.Context, postID uuid.UUID, trusted bool) (models.Post, error) {
	return v.inner.GetPost(ctx, postID, trusted)
}

// CreatePost runs the empty field check on JSON requests and the full rule
// set on multipart ones.
func (v *postValidationService) CreatePost(ctx context.Context, req models.CreatePostRequest) (models.Post, error) {
	req = req.Normalized()

	if !req.Multipart {
		if fields := v.emptyFields(req); len(fields) > 0 {
			return models.Post{}, &EmptyFieldsError{Fields: fields}
		}
		return v.inner.CreatePost(ctx, req)
	}

	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Post{}, fmt.Errorf("post validation failed: %w", err)
	}
	return v.inner.CreatePost(ctx, req)
}

func (v *postValidationService) emptyFields(req models.CreatePostRequest) []string {
	fields := make([]string, 0, 2)
	if req.Title == "" {
		if v.strictEmptyFields {
			fields = append(fields, validators.FieldTitle)
		} else {
			fields = append(fields, validators.FieldBody)
		}
	}
	if req.Body == "" {
		fields = append(fields, validators.FieldBody)
	}
	return fields
}

func (v *postValidationService) UpdatePost(ctx context.Context, req models.UpdatePostRequest) (models.Post, error) {
	req.Patch = req.Patch.Normalized()
	if err := v.validator.Validate(ctx, req.Patch); err != nil {
		return models.Post{}, fmt.Errorf("post patch validation failed: %w", err)
	}
	return v.inner.UpdatePost(ctx, req)
}

func (v *postValidationService) DeletePost(ctx context.Context, req models.DeletePostRequest) (models.DeletePostResult, error) {
	return v.inner.DeletePost(ctx, req)
}
