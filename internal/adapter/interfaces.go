// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the image host used for post images.
//
// The primary abstraction is [ImageHost], which decouples the service layer
// from where images are kept. Two implementations ship: a remote host spoken
// to over HTTP ([NewHTTPImageHost]) and a local directory served by the API
// itself ([NewFileImageHost]). [NewImageHost] picks one from configuration.
//
// Both implementations validate uploads with [DecodeImage] before storing
// them. Error values defined in errors.go are mapped from HTTP status codes
// by mapHTTPError so that callers can use [errors.Is] regardless of the
// host in use.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-blog-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/image_host_mock.go -package=mock

// ImageHost stores and removes post images.
type ImageHost interface {
	// Upload validates and stores an image. The returned PublicID is the
	// handle later passed to Delete.
	Upload(ctx context.Context, upload models.ImageUpload) (models.StoredImage, error)

	// Delete removes a stored image. Deleting an image the host no longer
	// has is not an error.
	Delete(ctx context.Context, publicID string) error
}
