// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business rules of the blog API: account
// registration and login, post visibility, post lifecycle including image
// storage, bookmarks and the reconciliation of stored images.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/servicemock/service_mock.go -package=servicemock

type AuthService interface {
	// Signup validates and registers a new user and issues a token for it.
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error)

	// Login checks the credentials and issues a token. Unknown email and
	// wrong password are both reported as ErrInvalidCredentials.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)

	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type PostService interface {
	// ListPosts returns one window of the posts visible to the caller.
	ListPosts(ctx context.Context, params models.ListParams, trusted bool) (models.PostPage, error)

	// GetPost returns a post visible to the caller or ErrPostNotFound.
	GetPost(ctx context.Context, postID uuid.UUID, trusted bool) (models.Post, error)

	CreatePost(ctx context.Context, req models.CreatePostRequest) (models.Post, error)

	// UpdatePost and DeletePost are allowed to the author and to admins.
	UpdatePost(ctx context.Context, req models.UpdatePostRequest) (models.Post, error)
	DeletePost(ctx context.Context, req models.DeletePostRequest) (models.DeletePostResult, error)
}

type UserService interface {
	// GetProfile returns the user with the owned-posts, comments and
	// bookmarks lists.
	GetProfile(ctx context.Context, userID uuid.UUID) (models.User, error)

	// ListUserPosts returns the user's own posts, drafts included.
	ListUserPosts(ctx context.Context, userID uuid.UUID, params models.ListParams) (models.PostPage, error)

	// AddBookmark requires the post to be visible to the caller.
	AddBookmark(ctx context.Context, userID, postID uuid.UUID, trusted bool) error
	RemoveBookmark(ctx context.Context, userID, postID uuid.UUID) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ImageCleanupService retries the deletion of stored images that could not
// be removed on the request path.
type ImageCleanupService interface {
	// ProcessPending handles one batch of queued deletions and returns the
	// number of images removed.
	ProcessPending(ctx context.Context) (int, error)
}

// PostServiceWrapper defines middleware composition for PostService.
// Implementations wrap an existing PostService to add behavior such as
// validation.
type PostServiceWrapper interface {
	Wrap(PostService) PostService // returns a decorated PostService applying additional behavior
}
