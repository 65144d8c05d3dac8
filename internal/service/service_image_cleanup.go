// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/adapter"
	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
)

type imageCleanupService struct {
	tasks  store.ImageCleanupRepository
	images adapter.ImageHost

	batch       int
	maxAttempts int
	now         func() time.Time

	logger *logger.Logger
}

func NewImageCleanupService(tasks store.ImageCleanupRepository, images adapter.ImageHost, cfg config.Workers, logger *logger.Logger) ImageCleanupService {
	return &imageCleanupService{
		tasks:       tasks,
		images:      images,
		batch:       cfg.ImageCleanupBatch,
		maxAttempts: cfg.ImageCleanupMaxAttempts,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// ProcessPending deletes the oldest queued images. A failed deletion bumps
// the attempt counter of its task; tasks that reached the attempt limit are
// no longer picked up.
func (s *imageCleanupService) ProcessPending(ctx context.Context) (int, error) {
	tasks, err := s.tasks.ListPending(ctx, s.batch, s.maxAttempts)
	if err != nil {
		return 0, fmt.Errorf("listing image cleanup tasks failed: %w", err)
	}

	var (
		removed int
		errs    []error
	)
	for _, task := range tasks {
		if err = ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err = s.images.Delete(ctx, task.PublicID); err != nil {
			s.logger.Warn().Err(err).
				Int64("task_id", task.ID).
				Str("public_id", task.PublicID).
				Int("attempts", task.Attempts+1).
				Msg("queued image deletion failed")
			if err = s.tasks.MarkFailed(ctx, task.ID, err.Error(), s.now()); err != nil {
				errs = append(errs, fmt.Errorf("marking task %d failed: %w", task.ID, err))
			}
			continue
		}

		if err = s.tasks.Complete(ctx, task.ID); err != nil && !errors.Is(err, store.ErrImageCleanupTaskNotFound) {
			errs = append(errs, fmt.Errorf("completing task %d failed: %w", task.ID, err))
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}
