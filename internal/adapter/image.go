// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/MKhiriev/go-blog-api/models"
)

// maxImagePixels bounds the decoded size of an accepted image.
const maxImagePixels = 50_000_000

// ImageInfo describes a validated upload.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// Extension returns the file extension used to store images of this format.
func (i ImageInfo) Extension() string {
	switch i.Format {
	case "jpeg":
		return ".jpg"
	case "":
		return ""
	default:
		return "." + i.Format
	}
}

// ContentType returns the MIME type of the format.
func (i ImageInfo) ContentType() string {
	return "image/" + i.Format
}

// DecodeImage checks that upload is a png, jpeg, gif, webp, bmp or tiff
// image no larger than maxSize bytes. Only the header is decoded.
func DecodeImage(upload models.ImageUpload, maxSize int64) (ImageInfo, error) {
	if len(upload.Content) == 0 {
		return ImageInfo{}, fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if maxSize > 0 && int64(len(upload.Content)) > maxSize {
		return ImageInfo{}, fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, len(upload.Content), maxSize)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(upload.Content))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageInfo{}, fmt.Errorf("%w: empty dimensions", ErrInvalidImage)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return ImageInfo{}, fmt.Errorf("%w: %dx%d pixels", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
