// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users", "user_posts", "comments" and "user_bookmarks" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext].
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user as given. The caller assigns the id, the password
// hash and both timestamps.
//
// Error handling:
//   - unique index on email → [ErrEmailAlreadyExists].
//   - unique index on username → [ErrUsernameAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, r.db.rebind(insertUser),
		user.ID, user.FirstName, user.LastName, user.Username, user.Email,
		user.PasswordHash, user.IsAdmin, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		if kind, name := r.db.violation(err); kind == UniqueViolation {
			switch {
			case strings.Contains(name, "email"):
				return models.User{}, ErrEmailAlreadyExists
			case strings.Contains(name, "username"):
				return models.User{}, ErrUsernameAlreadyExists
			}
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	user.Posts = []uuid.UUID{}
	user.Comments = []uuid.UUID{}
	user.Bookmarks = []uuid.UUID{}

	return user, nil
}

// FindUserByEmail returns the user registered under email, without the
// related id lists.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

// FindUserByUsername returns the user registered under username, without the
// related id lists.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByUsername", findUserByUsername, username)
}

// FindUserByID returns the user with its owned posts, comments and
// bookmarks.
func (r *userRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const funcName = "*userRepository.FindUserByID"

	user, err := r.findOne(ctx, funcName, findUserByID, userID)
	if err != nil {
		return models.User{}, err
	}

	if user.Posts, err = r.selectIDs(ctx, funcName, selectUserPostIDs, userID); err != nil {
		return models.User{}, err
	}
	if user.Comments, err = r.selectIDs(ctx, funcName, selectUserCommentIDs, userID); err != nil {
		return models.User{}, err
	}
	if user.Bookmarks, err = r.selectIDs(ctx, funcName, selectUserBookmarkIDs, userID); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// AddBookmark stores the bookmark. Adding an existing bookmark is a no-op.
// A missing user or post is reported as [ErrUserNotFound] or
// [ErrPostNotFound].
func (r *userRepository) AddBookmark(ctx context.Context, userID, postID uuid.UUID) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, r.db.rebind(insertBookmark), userID, postID, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.AddBookmark").Msg("error inserting bookmark")

		if kind, name := r.db.violation(err); kind == ForeignKeyViolation {
			if strings.Contains(name, "user_id") {
				return ErrUserNotFound
			}
			return ErrPostNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// RemoveBookmark deletes the bookmark. Removing a missing bookmark is a
// no-op.
func (r *userRepository) RemoveBookmark(ctx context.Context, userID, postID uuid.UUID) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, r.db.rebind(deleteBookmark), userID, postID); err != nil {
		log.Err(err).Str("func", "*userRepository.RemoveBookmark").Msg("error deleting bookmark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.db.QueryRowContext(ctx, r.db.rebind(query), arg).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.Email,
		&user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// selectIDs runs a single-column id query. The result is never nil.
func (r *userRepository) selectIDs(ctx context.Context, funcName, query string, userID uuid.UUID) ([]uuid.UUID, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), userID)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting related ids")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning related id")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating related ids")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}
