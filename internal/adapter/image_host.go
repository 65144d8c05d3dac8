// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
)

// NewImageHost returns the remote host when an image host URL is
// configured and the file host otherwise.
func NewImageHost(cfg *config.StructuredConfig, logger *logger.Logger) (ImageHost, error) {
	if cfg.Adapter.ImageHostURL != "" {
		logger.Info().Str("url", cfg.Adapter.ImageHostURL).Msg("using remote image host")
		return NewHTTPImageHost(cfg.Adapter, cfg.Posts.MaxImageSize, logger)
	}

	logger.Info().Str("dir", cfg.Storage.Images.Dir).Msg("using file image host")
	return NewFileImageHost(cfg.Storage.Images, cfg.Posts.MaxImageSize, logger)
}
