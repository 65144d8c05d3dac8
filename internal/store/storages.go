// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-blog-api/internal/logger"
)

// Pinger reports whether the database answers. *DB satisfies it through
// the embedded *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Storages groups the repositories handed to the service layer.
type Storages struct {
	UserRepository         UserRepository
	PostRepository         PostRepository
	ImageCleanupRepository ImageCleanupRepository

	// Health probes the underlying connection pool.
	Health Pinger
}

// NewStorages builds every repository on top of db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		PostRepository:         NewPostRepository(db, logger),
		ImageCleanupRepository: NewImageCleanupRepository(db, logger),
		Health:                 db,
	}
}
