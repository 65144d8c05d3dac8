// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrInvalidImage is returned when an upload is not a decodable image.
	ErrInvalidImage = errors.New("file is not a supported image")

	// ErrImageTooLarge is returned when an upload exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds the size limit")

	// ErrInvalidPublicID is returned when a public id cannot name a stored
	// image.
	ErrInvalidPublicID = errors.New("invalid image public id")

	// ErrImageRejected is returned when the remote host refuses an upload.
	ErrImageRejected = errors.New("image rejected by image host")

	// ErrImageHostUnauthorized is returned when the remote host refuses the
	// API key.
	ErrImageHostUnauthorized = errors.New("image host unauthorized")

	// ErrImageNotFound is returned when the remote host does not know a
	// public id.
	ErrImageNotFound = errors.New("image not found")

	// ErrImageHostUnavailable covers transport failures and 5xx answers of
	// the remote host as well as I/O failures of the file host.
	ErrImageHostUnavailable = errors.New("image host unavailable")
)
