// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/models"
)

// postRepository is the SQL implementation of [PostRepository]. A post is
// spread over "posts", "post_tags" and "user_posts"; comments and bookmarks
// reference it.
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository] backed by the provided
// database connection and logger.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Body, &post.AuthorID,
		&post.Image.URL, &post.Image.PublicID, &post.Image.Source, &post.Image.SourceLink,
		&post.IsPublished, &post.CreatedAt, &post.UpdatedAt,
	)
	return post, err
}

func (r *postRepository) CreatePost(ctx context.Context, post models.Post) error {
	const funcName = "*postRepository.CreatePost"
	log := logger.FromContext(ctx)

	return r.db.inTx(ctx, funcName, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.db.rebind(insertPost),
			post.ID, post.Title, post.Body, post.AuthorID,
			post.Image.URL, post.Image.PublicID, post.Image.Source, post.Image.SourceLink,
			post.IsPublished, post.CreatedAt, post.UpdatedAt,
		)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error inserting post")
			if kind, _ := r.db.violation(err); kind == ForeignKeyViolation {
				return ErrAuthorNotFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if err := r.insertTags(ctx, tx, post.ID, post.Tags); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, r.db.rebind(insertUserPost), post.AuthorID, post.ID, post.CreatedAt); err != nil {
			log.Err(err).Str("func", funcName).Msg("error linking post to author")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
}

func (r *postRepository) FindPostByID(ctx context.Context, postID uuid.UUID) (models.Post, error) {
	return r.findPost(ctx, r.db.DB, postID)
}

func (r *postRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error) {
	const funcName = "*postRepository.ListPosts"
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountPostsQuery(r.db.builder(), filter)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building count query")
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", funcName).Msg("error counting posts")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	listQuery, listArgs, err := buildListPostsQuery(r.db.builder(), filter)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building list query")
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting posts")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, filter.PageSize)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning post")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating posts")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err := r.loadRelations(ctx, r.db.DB, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// UpdatePost writes the patched columns and, when patch carries tags,
// replaces the tag set. The post is read back after commit.
func (r *postRepository) UpdatePost(ctx context.Context, postID uuid.UUID, patch models.PostPatch) (models.Post, error) {
	const funcName = "*postRepository.UpdatePost"
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePostQuery(r.db.builder(), postID, patch, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building update query")
		return models.Post{}, err
	}

	err = r.db.inTx(ctx, funcName, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error updating post")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrPostNotFound
		}

		if patch.Tags == nil {
			return nil
		}

		if _, err := tx.ExecContext(ctx, r.db.rebind(deletePostTags), postID); err != nil {
			log.Err(err).Str("func", funcName).Msg("error clearing post tags")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return r.insertTags(ctx, tx, postID, *patch.Tags)
	})
	if err != nil {
		return models.Post{}, err
	}

	return r.findPost(ctx, r.db.DB, postID)
}

// DeletePost removes everything that references the post before the post
// row itself, so it does not rely on cascading foreign keys.
func (r *postRepository) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const funcName = "*postRepository.DeletePost"
	log := logger.FromContext(ctx)

	return r.db.inTx(ctx, funcName, func(tx *sql.Tx) error {
		for _, query := range []string{deletePostTags, deletePostOwnership, deletePostBookmarks, deletePostComments} {
			if _, err := tx.ExecContext(ctx, r.db.rebind(query), postID); err != nil {
				log.Err(err).Str("func", funcName).Msg("error deleting post references")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		res, err := tx.ExecContext(ctx, r.db.rebind(deletePost), postID)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error deleting post")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrPostNotFound
		}

		return nil
	})
}

func (r *postRepository) findPost(ctx context.Context, q queryer, postID uuid.UUID) (models.Post, error) {
	const funcName = "*postRepository.findPost"
	log := logger.FromContext(ctx)

	post, err := scanPost(q.QueryRowContext(ctx, r.db.rebind(selectPostByID), postID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	posts := []models.Post{post}
	if err := r.loadRelations(ctx, q, posts); err != nil {
		return models.Post{}, err
	}

	return posts[0], nil
}

// insertTags stores tags in their given order. Repeated tags are stored
// once, at their first position.
func (r *postRepository) insertTags(ctx context.Context, tx *sql.Tx, postID uuid.UUID, tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	position := 0

	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}

		if _, err := tx.ExecContext(ctx, r.db.rebind(insertPostTag), postID, tag, position); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*postRepository.insertTags").Msg("error inserting post tag")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		position++
	}

	return nil
}

// loadRelations fills Tags and Comments of every post with two batched
// queries. Both slices are left non-nil.
func (r *postRepository) loadRelations(ctx context.Context, q queryer, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].Tags = []string{}
		posts[i].Comments = []uuid.UUID{}
	}

	tagsQuery, tagsArgs, err := buildSelectTagsQuery(r.db.builder(), ids)
	if err != nil {
		return err
	}
	err = r.eachRow(ctx, q, tagsQuery, tagsArgs, func(rows *sql.Rows) error {
		var (
			postID uuid.UUID
			tag    string
		)
		if err := rows.Scan(&postID, &tag); err != nil {
			return err
		}
		if i, ok := index[postID]; ok {
			posts[i].Tags = append(posts[i].Tags, tag)
		}
		return nil
	})
	if err != nil {
		return err
	}

	commentsQuery, commentsArgs, err := buildSelectCommentIDsQuery(r.db.builder(), ids)
	if err != nil {
		return err
	}
	return r.eachRow(ctx, q, commentsQuery, commentsArgs, func(rows *sql.Rows) error {
		var postID, commentID uuid.UUID
		if err := rows.Scan(&postID, &commentID); err != nil {
			return err
		}
		if i, ok := index[postID]; ok {
			posts[i].Comments = append(posts[i].Comments, commentID)
		}
		return nil
	})
}

func (r *postRepository) eachRow(ctx context.Context, q queryer, query string, args []any, scan func(rows *sql.Rows) error) error {
	const funcName = "*postRepository.eachRow"
	log := logger.FromContext(ctx)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting post relations")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning post relations")
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating post relations")
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}
