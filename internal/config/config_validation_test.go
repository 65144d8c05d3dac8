// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "sqlite driver", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = DriverSQLite }},
		{name: "empty sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "cost too low", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 3 }, wantErr: ErrInvalidAppConfigs},
		{name: "cost too high", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 32 }, wantErr: ErrInvalidAppConfigs},
		{name: "negative token duration", mutate: func(cfg *StructuredConfig) { cfg.App.TokenDuration = -1 }, wantErr: ErrInvalidAppConfigs},
		{name: "default above max", mutate: func(cfg *StructuredConfig) { cfg.Posts.DefaultPageSize = 200 }, wantErr: ErrInvalidPostsConfigs},
		{name: "zero image size", mutate: func(cfg *StructuredConfig) { cfg.Posts.MaxImageSize = 0 }, wantErr: ErrInvalidPostsConfigs},
		{name: "unknown driver", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty dsn", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no image host", mutate: func(cfg *StructuredConfig) { cfg.Storage.Images.Dir = "" }, wantErr: ErrInvalidStorageConfigs},
		{
			name: "remote image host without dir",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Images.Dir = ""
				cfg.Adapter.ImageHostURL = "https://images.example.com"
			},
		},
		{name: "empty http address", mutate: func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "zero cleanup batch", mutate: func(cfg *StructuredConfig) { cfg.Workers.ImageCleanupBatch = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "zero cleanup interval", mutate: func(cfg *StructuredConfig) { cfg.Workers.ImageCleanupInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := minimalConfig()
	cfg.Posts.DefaultPageSize = 5
	cfg.Storage.DB.Driver = DriverSQLite

	cfg.applyDefaults()

	assert.Equal(t, 5, cfg.Posts.DefaultPageSize)
	assert.Equal(t, 100, cfg.Posts.MaxPageSize)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
}
