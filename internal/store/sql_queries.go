// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/models"
)

// Static queries are written with '?' placeholders and passed through
// DB.rebind before execution.
const (
	insertUser = `INSERT INTO users (id, first_name, last_name, username, email, password_hash, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectUser = `SELECT id, first_name, last_name, username, email, password_hash, is_admin, created_at, updated_at
		FROM users`

	findUserByEmail    = selectUser + ` WHERE email = ?`
	findUserByUsername = selectUser + ` WHERE username = ?`
	findUserByID       = selectUser + ` WHERE id = ?`

	selectUserPostIDs     = `SELECT post_id FROM user_posts WHERE user_id = ? ORDER BY created_at, post_id`
	selectUserCommentIDs  = `SELECT id FROM comments WHERE user_id = ? ORDER BY created_at, id`
	selectUserBookmarkIDs = `SELECT post_id FROM user_bookmarks WHERE user_id = ? ORDER BY created_at, post_id`

	insertBookmark = `INSERT INTO user_bookmarks (user_id, post_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id, post_id) DO NOTHING`
	deleteBookmark = `DELETE FROM user_bookmarks WHERE user_id = ? AND post_id = ?`

	insertPost = `INSERT INTO posts (id, title, body, author_id, img_url, img_public_id, img_src, img_src_link, is_published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertPostTag  = `INSERT INTO post_tags (post_id, tag, position) VALUES (?, ?, ?)`
	insertUserPost = `INSERT INTO user_posts (user_id, post_id, created_at) VALUES (?, ?, ?)`

	selectPostByID = `SELECT id, title, body, author_id, img_url, img_public_id, img_src, img_src_link, is_published, created_at, updated_at
		FROM posts WHERE id = ?`

	deletePostTags      = `DELETE FROM post_tags WHERE post_id = ?`
	deletePostOwnership = `DELETE FROM user_posts WHERE post_id = ?`
	deletePostBookmarks = `DELETE FROM user_bookmarks WHERE post_id = ?`
	deletePostComments  = `DELETE FROM comments WHERE post_id = ?`
	deletePost          = `DELETE FROM posts WHERE id = ?`

	insertImageCleanup = `INSERT INTO image_cleanup (public_id, attempts, last_error, created_at, updated_at)
		VALUES (?, 0, ?, ?, ?)
		ON CONFLICT (public_id) DO UPDATE SET last_error = excluded.last_error, updated_at = excluded.updated_at`
	selectPendingImageCleanup = `SELECT id, public_id, attempts, last_error, created_at, updated_at
		FROM image_cleanup
		WHERE attempts < ?
		ORDER BY updated_at, id
		LIMIT ?`
	markImageCleanupFailed = `UPDATE image_cleanup SET attempts = attempts + 1, last_error = ?, updated_at = ? WHERE id = ?`
	deleteImageCleanup     = `DELETE FROM image_cleanup WHERE id = ?`
)

var postColumns = []string{
	"id", "title", "body", "author_id",
	"img_url", "img_public_id", "img_src", "img_src_link",
	"is_published", "created_at", "updated_at",
}

// postFilterConditions translates the visibility, author and tag filters
// into WHERE conditions. An empty result means no filtering.
func postFilterConditions(filter models.PostFilter) []sq.Sqlizer {
	conds := make([]sq.Sqlizer, 0, 3)

	if filter.PublishedOnly {
		conds = append(conds, sq.Eq{"is_published": true})
	}
	if filter.AuthorID != uuid.Nil {
		conds = append(conds, sq.Eq{"author_id": filter.AuthorID})
	}
	if filter.Tag != "" {
		conds = append(conds, sq.Expr(
			"EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = posts.id AND pt.tag = ?)",
			filter.Tag,
		))
	}

	return conds
}

// buildListPostsQuery selects one window of posts ordered by creation time
// with the id as tie breaker, so pages never overlap.
func buildListPostsQuery(b sq.StatementBuilderType, filter models.PostFilter) (string, []any, error) {
	direction := "DESC"
	if filter.Sort == models.SortAsc {
		direction = "ASC"
	}

	query := b.Select(postColumns...).From("posts")
	for _, cond := range postFilterConditions(filter) {
		query = query.Where(cond)
	}

	query = query.
		OrderBy("created_at "+direction, "id "+direction).
		Limit(uint64(filter.PageSize)).
		Offset(filter.Offset())

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return sqlStr, args, nil
}

// buildCountPostsQuery counts every post matching the filter, ignoring the
// window.
func buildCountPostsQuery(b sq.StatementBuilderType, filter models.PostFilter) (string, []any, error) {
	query := b.Select("COUNT(*)").From("posts")
	for _, cond := range postFilterConditions(filter) {
		query = query.Where(cond)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return sqlStr, args, nil
}

// buildSelectTagsQuery loads the tags of several posts in display order.
func buildSelectTagsQuery(b sq.StatementBuilderType, postIDs []uuid.UUID) (string, []any, error) {
	sqlStr, args, err := b.Select("post_id", "tag").
		From("post_tags").
		Where(sq.Eq{"post_id": postIDs}).
		OrderBy("post_id", "position").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return sqlStr, args, nil
}

// buildSelectCommentIDsQuery loads the comment ids of several posts.
func buildSelectCommentIDsQuery(b sq.StatementBuilderType, postIDs []uuid.UUID) (string, []any, error) {
	sqlStr, args, err := b.Select("post_id", "id").
		From("comments").
		Where(sq.Eq{"post_id": postIDs}).
		OrderBy("post_id", "created_at", "id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return sqlStr, args, nil
}

// buildUpdatePostQuery sets only the columns present in patch. Tags live in
// their own table and are not part of this statement. updated_at is always
// refreshed.
func buildUpdatePostQuery(b sq.StatementBuilderType, postID uuid.UUID, patch models.PostPatch, now time.Time) (string, []any, error) {
	query := b.Update("posts")

	if patch.Title != nil {
		query = query.Set("title", *patch.Title)
	}
	if patch.Body != nil {
		query = query.Set("body", *patch.Body)
	}
	if patch.IsPublished != nil {
		query = query.Set("is_published", *patch.IsPublished)
	}
	if patch.ImageSource != nil {
		query = query.Set("img_src", *patch.ImageSource)
	}
	if patch.ImageSourceLink != nil {
		query = query.Set("img_src_link", *patch.ImageSourceLink)
	}
	if patch.StoredImage != nil {
		query = query.
			Set("img_url", patch.StoredImage.URL).
			Set("img_public_id", patch.StoredImage.PublicID)
	}

	sqlStr, args, err := query.
		Set("updated_at", now).
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return sqlStr, args, nil
}
