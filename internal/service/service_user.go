// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/models"
)

type userService struct {
	userRepository store.UserRepository
	postRepository store.PostRepository

	renderer *MarkdownRenderer
	logger   *logger.Logger
}

func NewUserService(storages *store.Storages, renderer *MarkdownRenderer, logger *logger.Logger) UserService {
	return &userService{
		userRepository: storages.UserRepository,
		postRepository: storages.PostRepository,
		renderer:       renderer,
		logger:         logger,
	}
}

func (u *userService) GetProfile(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userService.GetProfile").Msg("user search failed")
		return models.User{}, fmt.Errorf("user search failed: %w", err)
	}
	return user, nil
}

func (u *userService) ListUserPosts(ctx context.Context, userID uuid.UUID, params models.ListParams) (models.PostPage, error) {
	posts, total, err := u.postRepository.ListPosts(ctx, models.PostFilter{ListParams: params, AuthorID: userID})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userService.ListUserPosts").Msg("listing user posts failed")
		return models.PostPage{}, fmt.Errorf("listing user posts failed: %w", err)
	}

	u.renderer.renderPosts(ctx, posts)
	return models.PostPage{Posts: posts, TotalCount: total, Params: params}, nil
}

func (u *userService) AddBookmark(ctx context.Context, userID, postID uuid.UUID, trusted bool) error {
	post, err := u.postRepository.FindPostByID(ctx, postID)
	if errors.Is(err, store.ErrPostNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("post search failed: %w", err)
	}
	if !isVisible(post, trusted) {
		return ErrPostNotFound
	}

	err = u.userRepository.AddBookmark(ctx, userID, postID)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrPostNotFound):
		return ErrPostNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "userService.AddBookmark").Msg("bookmark creation failed")
		return fmt.Errorf("bookmark creation failed: %w", err)
	}
	return nil
}

func (u *userService) RemoveBookmark(ctx context.Context, userID, postID uuid.UUID) error {
	if err := u.userRepository.RemoveBookmark(ctx, userID, postID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userService.RemoveBookmark").Msg("bookmark removal failed")
		return fmt.Errorf("bookmark removal failed: %w", err)
	}
	return nil
}
