// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config
// file. Durations accept both Go duration strings and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		PasswordHashCost int      `json:"password_hash_cost"`
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		Version          string   `json:"version"`
		TrustedOrigin    string   `json:"trusted_origin"`
	} `json:"app,omitempty"`

	Posts struct {
		DefaultPageSize   int   `json:"default_page_size"`
		MaxPageSize       int   `json:"max_page_size"`
		StrictEmptyFields bool  `json:"strict_empty_fields"`
		MaxImageSize      int64 `json:"max_image_size"`
	} `json:"posts,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Images struct {
			Dir       string `json:"dir"`
			URLPrefix string `json:"url_prefix"`
		} `json:"images,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		ImageHostURL    string   `json:"image_host_url"`
		ImageHostAPIKey string   `json:"image_host_api_key"`
		RequestTimeout  Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ImageCleanupInterval    Duration `json:"image_cleanup_interval"`
		ImageCleanupBatch       int      `json:"image_cleanup_batch"`
		ImageCleanupMaxAttempts int      `json:"image_cleanup_max_attempts"`
	} `json:"workers,omitempty"`

	Log struct {
		Level   string `json:"level"`
		Console bool   `json:"console"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashCost: jsonCfg.App.PasswordHashCost,
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			TokenDuration:    time.Duration(jsonCfg.App.TokenDuration),
			Version:          jsonCfg.App.Version,
			TrustedOrigin:    jsonCfg.App.TrustedOrigin,
		},
		Posts: Posts{
			DefaultPageSize:   jsonCfg.Posts.DefaultPageSize,
			MaxPageSize:       jsonCfg.Posts.MaxPageSize,
			StrictEmptyFields: jsonCfg.Posts.StrictEmptyFields,
			MaxImageSize:      jsonCfg.Posts.MaxImageSize,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Images: Images{
				Dir:       jsonCfg.Storage.Images.Dir,
				URLPrefix: jsonCfg.Storage.Images.URLPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			ImageHostURL:    jsonCfg.Adapter.ImageHostURL,
			ImageHostAPIKey: jsonCfg.Adapter.ImageHostAPIKey,
			RequestTimeout:  time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			ImageCleanupInterval:    time.Duration(jsonCfg.Workers.ImageCleanupInterval),
			ImageCleanupBatch:       jsonCfg.Workers.ImageCleanupBatch,
			ImageCleanupMaxAttempts: jsonCfg.Workers.ImageCleanupMaxAttempts,
		},
		Log: Log{
			Level:   jsonCfg.Log.Level,
			Console: jsonCfg.Log.Console,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
