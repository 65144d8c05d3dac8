// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

type fileImageHost struct {
	dir       string
	urlPrefix string
	maxSize   int64
	ids       utils.UUIDGenerator
	logger    *logger.Logger
}

// NewFileImageHost constructs an [ImageHost] that writes images into
// cfg.Dir. A stored image is named by a fresh UUID plus the extension of its
// format, and that name is both its public id and, behind cfg.URLPrefix, its
// URL. The directory is created when missing.
func NewFileImageHost(cfg config.Images, maxSize int64, logger *logger.Logger) (ImageHost, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("image directory is not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	prefix := cfg.URLPrefix
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &fileImageHost{
		dir:       cfg.Dir,
		urlPrefix: prefix,
		maxSize:   maxSize,
		logger:    logger,
	}, nil
}

// Upload implements [ImageHost].
func (h *fileImageHost) Upload(ctx context.Context, upload models.ImageUpload) (models.StoredImage, error) {
	info, err := DecodeImage(upload, h.maxSize)
	if err != nil {
		return models.StoredImage{}, err
	}

	name := h.ids.Generate().String() + info.Extension()
	path := filepath.Join(h.dir, name)

	if err := os.WriteFile(path, upload.Content, 0o644); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileImageHost.Upload").Str("path", path).Msg("error writing image")
		return models.StoredImage{}, fmt.Errorf("%w: %w", ErrImageHostUnavailable, err)
	}

	return models.StoredImage{
		URL:      h.urlPrefix + name,
		PublicID: name,
		Width:    info.Width,
		Height:   info.Height,
	}, nil
}

// Delete implements [ImageHost]. A missing file counts as success.
func (h *fileImageHost) Delete(ctx context.Context, publicID string) error {
	if !validFileName(publicID) {
		return ErrInvalidPublicID
	}

	err := os.Remove(filepath.Join(h.dir, publicID))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	logger.FromContext(ctx).Err(err).Str("func", "*fileImageHost.Delete").Str("public_id", publicID).Msg("error removing image")
	return fmt.Errorf("%w: %w", ErrImageHostUnavailable, err)
}

// validFileName accepts plain names only, so a public id can never point
// outside the image directory.
func validFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
