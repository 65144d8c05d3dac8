// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/adapter"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

type postService struct {
	postRepository         store.PostRepository
	userRepository         store.UserRepository
	imageCleanupRepository store.ImageCleanupRepository

	images   adapter.ImageHost
	renderer *MarkdownRenderer
	ids      *utils.UUIDGenerator
	now      func() time.Time

	logger *logger.Logger
}

// NewPostService builds the core post service. Input is expected to be
// validated already, see NewPostValidationService.
func NewPostService(storages *store.Storages, images adapter.ImageHost, renderer *MarkdownRenderer, logger *logger.Logger) PostService {
	return &postService{
		postRepository:         storages.PostRepository,
		userRepository:         storages.UserRepository,
		imageCleanupRepository: storages.ImageCleanupRepository,
		images:                 images,
		renderer:               renderer,
		ids:                    utils.NewUUIDGenerator(),
		now:                    func() time.Time { return time.Now().UTC() },
		logger:                 logger,
	}
}

func (p *postService) ListPosts(ctx context.Context, params models.ListParams, trusted bool) (models.PostPage, error) {
	posts, total, err := p.postRepository.ListPosts(ctx, visibleFilter(params, trusted))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "postService.ListPosts").Msg("listing posts failed")
		return models.PostPage{}, fmt.Errorf("listing posts failed: %w", err)
	}

	p.renderer.renderPosts(ctx, posts)
	return models.PostPage{Posts: posts, TotalCount: total, Params: params}, nil
}

func (p *postService) GetPost(ctx context.Context, postID uuid.UUID, trusted bool) (models.Post, error) {
	post, err := p.findPost(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}
	if !isVisible(post, trusted) {
		return models.Post{}, ErrPostNotFound
	}

	p.renderer.renderPost(ctx, &post)
	return post, nil
}

// CreatePost stores the optional image first and then writes the post in
// one transaction. A stored image is discarded again if the write fails.
func (p *postService) CreatePost(ctx context.Context, req models.CreatePostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)
	req = req.Normalized()

	var stored models.StoredImage
	if req.Upload != nil {
		var err error
		if stored, err = p.upload(ctx, *req.Upload); err != nil {
			return models.Post{}, err
		}
	}

	now := p.now()
	post := models.Post{
		ID:       p.ids.Generate(),
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: req.AuthorID,
		Image: models.Image{
			URL:        stored.URL,
			PublicID:   stored.PublicID,
			Source:     req.ImageSource,
			SourceLink: req.ImageSourceLink,
		},
		Comments:    []uuid.UUID{},
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.postRepository.CreatePost(ctx, post); err != nil {
		log.Err(err).Str("func", "postService.CreatePost").Msg("post creation failed")
		if stored.PublicID != "" {
			p.discardImage(ctx, stored.PublicID, "post creation failed")
		}
		if errors.Is(err, store.ErrAuthorNotFound) {
			return models.Post{}, ErrUserNotFound
		}
		return models.Post{}, fmt.Errorf("post creation failed: %w", err)
	}

	p.renderer.renderPost(ctx, &post)
	return post, nil
}

// UpdatePost uploads a replacement image, updates the row and only then
// removes the previous image.
func (p *postService) UpdatePost(ctx context.Context, req models.UpdatePostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)

	current, err := p.findPost(ctx, req.PostID)
	if err != nil {
		return models.Post{}, err
	}
	if err = p.authorize(ctx, current, req.UserID); err != nil {
		return models.Post{}, err
	}

	patch := req.Patch.Normalized()
	patch.StoredImage = nil
	if req.Upload != nil {
		stored, err := p.upload(ctx, *req.Upload)
		if err != nil {
			return models.Post{}, err
		}
		patch.StoredImage = &stored
	}

	if patch.IsEmpty() {
		p.renderer.renderPost(ctx, &current)
		return current, nil
	}

	updated, err := p.postRepository.UpdatePost(ctx, req.PostID, patch)
	if err != nil {
		log.Err(err).Str("func", "postService.UpdatePost").Str("post_id", req.PostID.String()).Msg("post update failed")
		if patch.StoredImage != nil {
			p.discardImage(ctx, patch.StoredImage.PublicID, "post update failed")
		}
		if errors.Is(err, store.ErrPostNotFound) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, fmt.Errorf("post update failed: %w", err)
	}

	if patch.StoredImage != nil && current.HasStoredFile() && current.PublicID != patch.StoredImage.PublicID {
		p.discardImage(ctx, current.PublicID, "image replaced")
	}

	p.renderer.renderPost(ctx, &updated)
	return updated, nil
}

// DeletePost removes the post and then its stored image. An image that
// cannot be removed is queued for the cleanup worker.
func (p *postService) DeletePost(ctx context.Context, req models.DeletePostRequest) (models.DeletePostResult, error) {
	current, err := p.findPost(ctx, req.PostID)
	if err != nil {
		return models.DeletePostResult{}, err
	}
	if err = p.authorize(ctx, current, req.UserID); err != nil {
		return models.DeletePostResult{}, err
	}

	if err = p.postRepository.DeletePost(ctx, req.PostID); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return models.DeletePostResult{}, ErrPostNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "postService.DeletePost").Str("post_id", req.PostID.String()).Msg("post deletion failed")
		return models.DeletePostResult{}, fmt.Errorf("post deletion failed: %w", err)
	}

	result := models.DeletePostResult{Post: current}
	if current.HasStoredFile() {
		result.ImageCleanupScheduled = p.discardImage(ctx, current.PublicID, "post deleted")
	}

	p.renderer.renderPost(ctx, &result.Post)
	return result, nil
}

func (p *postService) findPost(ctx context.Context, postID uuid.UUID) (models.Post, error) {
	post, err := p.postRepository.FindPostByID(ctx, postID)
	if errors.Is(err, store.ErrPostNotFound) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("post_id", postID.String()).Msg("post search failed")
		return models.Post{}, fmt.Errorf("post search failed: %w", err)
	}
	return post, nil
}

// authorize lets the author through and looks the caller up otherwise.
func (p *postService) authorize(ctx context.Context, post models.Post, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrForbidden
	}
	if post.AuthorID == userID {
		return nil
	}

	user, err := p.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("caller search failed: %w", err)
	}
	if !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

func (p *postService) upload(ctx context.Context, upload models.ImageUpload) (models.StoredImage, error) {
	stored, err := p.images.Upload(ctx, upload)
	if err == nil {
		return stored, nil
	}

	logger.FromContext(ctx).Err(err).Str("filename", upload.Filename).Msg("image upload failed")
	if errors.Is(err, adapter.ErrInvalidImage) ||
		errors.Is(err, adapter.ErrImageTooLarge) ||
		errors.Is(err, adapter.ErrImageRejected) {
		return models.StoredImage{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	return models.StoredImage{}, fmt.Errorf("%w: %w", ErrImageHostFailure, err)
}

// discardImage deletes a stored image and queues it for the cleanup worker
// when the host refuses. It reports whether the image was queued.
func (p *postService) discardImage(ctx context.Context, publicID, reason string) bool {
	log := logger.FromContext(ctx)

	// the request may already be cancelled when compensating
	ctx = context.WithoutCancel(ctx)

	err := p.images.Delete(ctx, publicID)
	if err == nil {
		return false
	}

	log.Warn().Err(err).Str("public_id", publicID).Str("reason", reason).Msg("image deletion failed, queueing cleanup")
	if err = p.imageCleanupRepository.Enqueue(ctx, publicID, err.Error()); err != nil {
		log.Err(err).Str("public_id", publicID).Msg("image cleanup could not be queued")
		return false
	}
	return true
}
