// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

type httpImageHost struct {
	client  *utils.HTTPClient
	maxSize int64
	logger  *logger.Logger
}

// NewHTTPImageHost constructs an [ImageHost] talking to a remote image API.
// The API is expected to accept multipart uploads on POST /images (file
// field "file") answering {url, public_id, width, height}, and deletions on
// DELETE /images/{public_id}.
//
// Requests are not retried: a failed deletion is handed to the cleanup
// queue by the caller instead.
func NewHTTPImageHost(cfg config.Adapter, maxSize int64, logger *logger.Logger) (ImageHost, error) {
	baseURL, err := normalizeBaseURL(cfg.ImageHostURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image host url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout, cfg.ImageHostAPIKey)
	client.SetRetryCount(0)

	return &httpImageHost{client: client, maxSize: maxSize, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Upload implements [ImageHost].
func (h *httpImageHost) Upload(ctx context.Context, upload models.ImageUpload) (models.StoredImage, error) {
	log := logger.FromContext(ctx)

	info, err := DecodeImage(upload, h.maxSize)
	if err != nil {
		return models.StoredImage{}, err
	}

	filename := upload.Filename
	if filename == "" {
		filename = "image" + info.Extension()
	}

	var stored models.StoredImage
	resp, err := h.client.R().
		SetContext(ctx).
		SetMultipartField("file", filename, info.ContentType(), bytes.NewReader(upload.Content)).
		SetResult(&stored).
		Post("/images")
	if err != nil {
		log.Err(err).Str("func", "*httpImageHost.Upload").Msg("image upload request failed")
		return models.StoredImage{}, fmt.Errorf("%w: upload request: %w", ErrImageHostUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*httpImageHost.Upload").Int("status", resp.StatusCode()).Msg("image host refused upload")
		return models.StoredImage{}, err
	}
	if stored.PublicID == "" || stored.URL == "" {
		return models.StoredImage{}, fmt.Errorf("%w: upload response without url or public id", ErrImageHostUnavailable)
	}

	if stored.Width == 0 && stored.Height == 0 {
		stored.Width, stored.Height = info.Width, info.Height
	}

	return stored, nil
}

// Delete implements [ImageHost]. A 404 answer counts as success.
func (h *httpImageHost) Delete(ctx context.Context, publicID string) error {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(publicID) == "" {
		return ErrInvalidPublicID
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("publicID", publicID).
		Delete("/images/{publicID}")
	if err != nil {
		log.Err(err).Str("func", "*httpImageHost.Delete").Str("public_id", publicID).Msg("image delete request failed")
		return fmt.Errorf("%w: delete request: %w", ErrImageHostUnavailable, err)
	}

	err = mapHTTPError(resp)
	if errors.Is(err, ErrImageNotFound) {
		return nil
	}
	if err != nil {
		log.Err(err).Str("func", "*httpImageHost.Delete").Str("public_id", publicID).Msg("image host refused delete")
	}
	return err
}
