// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/models"
)

// imageCleanupRepository stores pending image deletions in "image_cleanup".
type imageCleanupRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewImageCleanupRepository constructs an [ImageCleanupRepository] backed by
// the provided database connection and logger.
func NewImageCleanupRepository(db *DB, logger *logger.Logger) ImageCleanupRepository {
	logger.Debug().Msg("creating image cleanup repository")
	return &imageCleanupRepository{
		db:     db,
		logger: logger,
	}
}

func (r *imageCleanupRepository) Enqueue(ctx context.Context, publicID string, reason string) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, r.db.rebind(insertImageCleanup), publicID, reason, now, now); err != nil {
		log.Err(err).
			Str("func", "*imageCleanupRepository.Enqueue").
			Str("public_id", publicID).
			Msg("error enqueuing image cleanup")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *imageCleanupRepository) ListPending(ctx context.Context, limit int, maxAttempts int) ([]models.ImageCleanupTask, error) {
	const funcName = "*imageCleanupRepository.ListPending"
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, r.db.rebind(selectPendingImageCleanup), maxAttempts, limit)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting image cleanup tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.ImageCleanupTask, 0, limit)
	for rows.Next() {
		var task models.ImageCleanupTask
		if err := rows.Scan(&task.ID, &task.PublicID, &task.Attempts, &task.LastError, &task.CreatedAt, &task.UpdatedAt); err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning image cleanup task")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating image cleanup tasks")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

func (r *imageCleanupRepository) MarkFailed(ctx context.Context, taskID int64, reason string, at time.Time) error {
	return r.execTask(ctx, "*imageCleanupRepository.MarkFailed", markImageCleanupFailed, reason, at.UTC(), taskID)
}

func (r *imageCleanupRepository) Complete(ctx context.Context, taskID int64) error {
	return r.execTask(ctx, "*imageCleanupRepository.Complete", deleteImageCleanup, taskID)
}

// execTask runs a statement addressing one task and reports
// [ErrImageCleanupTaskNotFound] when no row matched.
func (r *imageCleanupRepository) execTask(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error updating image cleanup task")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrImageCleanupTaskNotFound
	}

	return nil
}
