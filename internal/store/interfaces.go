// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-blog-api/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store.
type UserRepository interface {
	// CreateUser inserts a user. Unique index hits are reported as
	// ErrEmailAlreadyExists or ErrUsernameAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID returns the user together with the owned-posts, comments
	// and bookmarks lists.
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)

	// AddBookmark and RemoveBookmark are idempotent.
	AddBookmark(ctx context.Context, userID, postID uuid.UUID) error
	RemoveBookmark(ctx context.Context, userID, postID uuid.UUID) error
}

// PostRepository is the content store.
type PostRepository interface {
	// CreatePost writes the post row, its tags and the author's owned-posts
	// link in one transaction.
	CreatePost(ctx context.Context, post models.Post) error

	FindPostByID(ctx context.Context, postID uuid.UUID) (models.Post, error)

	// ListPosts returns one window of posts matching filter and the total
	// number of matching posts.
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error)

	// UpdatePost applies patch in one transaction and returns the stored
	// result.
	UpdatePost(ctx context.Context, postID uuid.UUID, patch models.PostPatch) (models.Post, error)

	// DeletePost removes the post row, its tags, bookmarks, comments and
	// the author's owned-posts link in one transaction.
	DeletePost(ctx context.Context, postID uuid.UUID) error
}

// ImageCleanupRepository is the queue of stored images whose deletion from
// the image host has to be retried.
type ImageCleanupRepository interface {
	// Enqueue adds publicID to the queue. Enqueuing an id twice keeps one
	// task.
	Enqueue(ctx context.Context, publicID string, reason string) error

	// ListPending returns up to limit tasks with fewer than maxAttempts
	// failed attempts, oldest first.
	ListPending(ctx context.Context, limit int, maxAttempts int) ([]models.ImageCleanupTask, error)

	// MarkFailed increments the attempt counter of a task.
	MarkFailed(ctx context.Context, taskID int64, reason string, at time.Time) error

	// Complete removes a task after the image was deleted.
	Complete(ctx context.Context, taskID int64) error
}
