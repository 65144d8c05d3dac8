// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-blog-api/internal/adapter"
	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/validators"
)

type Services struct {
	AuthService         AuthService
	PostService         PostService
	UserService         UserService
	AppInfoService      AppInfoService
	ImageCleanupService ImageCleanupService

	Visibility *VisibilityPolicy

	// Health probes storage readiness for the gRPC health service.
	Health store.Pinger
}

func NewServices(storages *store.Storages, images adapter.ImageHost, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	validator := validators.NewRequestValidator()
	renderer := NewMarkdownRenderer()

	postService := NewPostValidationService(validator, cfg.Posts).
		Wrap(NewPostService(storages, images, renderer, logger))

	return &Services{
		AuthService:         NewAuthService(storages.UserRepository, validator, cfg.App, logger),
		PostService:         postService,
		UserService:         NewUserService(storages, renderer, logger),
		AppInfoService:      appInfoService,
		ImageCleanupService: NewImageCleanupService(storages.ImageCleanupRepository, images, cfg.Workers, logger),
		Visibility:          NewVisibilityPolicy(cfg.App),
		Health:              storages.Health,
	}, nil
}
