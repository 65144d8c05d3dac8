// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
)

const defaultCleanupInterval = time.Minute

// ImageCleanupJob retries queued image deletions on a ticker.
type ImageCleanupJob struct {
	cleanup  service.ImageCleanupService
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewImageCleanupJob creates a job that is idle until Start is called. A
// non-positive interval falls back to one minute.
func NewImageCleanupJob(cleanup service.ImageCleanupService, cfg config.Workers, log *logger.Logger) *ImageCleanupJob {
	interval := cfg.ImageCleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	return &ImageCleanupJob{
		cleanup:  cleanup,
		interval: interval,
		logger:   &logger.Logger{Logger: log.With().Str("worker", "image-cleanup").Logger()},
	}
}

// Start stops a previous run, performs one pass right away and then one per
// interval until ctx is cancelled or Stop is called.
func (j *ImageCleanupJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		j.logger.Info().Dur("interval", j.interval).Msg("image cleanup job started")
		j.runOnce(jobCtx)

		for {
			select {
			case <-jobCtx.Done():
				j.logger.Info().Msg("image cleanup job stopped")
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

// Stop cancels the running pass and blocks until the goroutine exited. It is
// a no-op when the job is not running.
func (j *ImageCleanupJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *ImageCleanupJob) runOnce(ctx context.Context) {
	removed, err := j.cleanup.ProcessPending(ctx)
	if err != nil && ctx.Err() == nil {
		j.logger.Warn().Err(err).Int("removed", removed).Msg("image cleanup pass finished with errors")
		return
	}
	if removed > 0 {
		j.logger.Info().Int("removed", removed).Msg("queued images removed")
	}
}
