// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer serves requests until ctx is cancelled or a server fails,
	// then shuts everything down. A failure is returned.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server within the ctx deadline.
	Shutdown(ctx context.Context) error
}
