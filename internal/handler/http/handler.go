// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
)

type Handler struct {
	services *service.Services

	// listing bounds applied to page and pageSize
	defaultPageSize int
	maxPageSize     int

	// maxImageSize limits multipart bodies.
	maxImageSize int64

	requestTimeout time.Duration

	// uploadsDir is served under /uploads/ when the file image host is
	// active. Empty disables the route.
	uploadsDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	h := &Handler{
		services:        services,
		defaultPageSize: cfg.Posts.DefaultPageSize,
		maxPageSize:     cfg.Posts.MaxPageSize,
		maxImageSize:    cfg.Posts.MaxImageSize,
		requestTimeout:  cfg.Server.RequestTimeout,
		logger:          logger,
	}
	if cfg.Adapter.ImageHostURL == "" {
		h.uploadsDir = cfg.Storage.Images.Dir
	}

	return h
}
