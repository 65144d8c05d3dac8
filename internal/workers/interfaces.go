// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the blog API.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers together.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block; the job runs in its own goroutine until ctx is
// cancelled or Stop is called. Stop blocks until the goroutine exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
