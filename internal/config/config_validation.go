// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Default values applied to fields left empty by every source.
const (
	defaultPasswordHashCost   = 12
	defaultTokenIssuer        = "go-blog-api"
	defaultTokenDuration      = 24 * time.Hour
	defaultPageSize           = 20
	defaultMaxPageSize        = 100
	defaultMaxImageSize       = 10 << 20
	defaultImagesDir          = "uploads"
	defaultImagesURLPrefix    = "/uploads/"
	defaultHTTPAddress        = "localhost:8080"
	defaultRequestTimeout     = 30 * time.Second
	defaultAdapterTimeout     = 15 * time.Second
	defaultCleanupInterval    = time.Minute
	defaultCleanupBatch       = 50
	defaultCleanupMaxAttempts = 5
	defaultLogLevel           = "info"
)

func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.App.PasswordHashCost, defaultPasswordHashCost)
	setDefault(&cfg.App.TokenIssuer, defaultTokenIssuer)
	setDefault(&cfg.App.TokenDuration, defaultTokenDuration)

	setDefault(&cfg.Posts.DefaultPageSize, defaultPageSize)
	setDefault(&cfg.Posts.MaxPageSize, defaultMaxPageSize)
	setDefault(&cfg.Posts.MaxImageSize, defaultMaxImageSize)

	setDefault(&cfg.Storage.DB.Driver, DriverPostgres)
	setDefault(&cfg.Storage.Images.Dir, defaultImagesDir)
	setDefault(&cfg.Storage.Images.URLPrefix, defaultImagesURLPrefix)

	setDefault(&cfg.Server.HTTPAddress, defaultHTTPAddress)
	setDefault(&cfg.Server.RequestTimeout, defaultRequestTimeout)
	setDefault(&cfg.Adapter.RequestTimeout, defaultAdapterTimeout)

	setDefault(&cfg.Workers.ImageCleanupInterval, defaultCleanupInterval)
	setDefault(&cfg.Workers.ImageCleanupBatch, defaultCleanupBatch)
	setDefault(&cfg.Workers.ImageCleanupMaxAttempts, defaultCleanupMaxAttempts)

	setDefault(&cfg.Log.Level, defaultLogLevel)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password hash cost %d out of range", ErrInvalidAppConfigs, cfg.App.PasswordHashCost)
	}
	if cfg.App.TokenDuration < 0 {
		return fmt.Errorf("%w: negative token duration", ErrInvalidAppConfigs)
	}

	if cfg.Posts.DefaultPageSize < 1 || cfg.Posts.MaxPageSize < cfg.Posts.DefaultPageSize {
		return fmt.Errorf("%w: page sizes %d/%d", ErrInvalidPostsConfigs, cfg.Posts.DefaultPageSize, cfg.Posts.MaxPageSize)
	}
	if cfg.Posts.MaxImageSize < 1 {
		return fmt.Errorf("%w: non-positive image size limit", ErrInvalidPostsConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Adapter.ImageHostURL == "" && cfg.Storage.Images.Dir == "" {
		return fmt.Errorf("%w: no image host configured", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.ImageCleanupInterval <= 0 ||
		cfg.Workers.ImageCleanupBatch < 1 ||
		cfg.Workers.ImageCleanupMaxAttempts < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
