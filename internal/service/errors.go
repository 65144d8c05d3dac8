// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is taken")
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("caller is neither the author nor an admin")

	ErrEmptyFields = errors.New("all fields are required")

	// ErrInvalidImage is returned when an uploaded file is refused because
	// of its content.
	ErrInvalidImage = errors.New("invalid image")

	// ErrImageHostFailure is returned when the image host could not be
	// reached or failed.
	ErrImageHostFailure = errors.New("image host failure")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// EmptyFieldsError lists the required fields a simple create request left
// empty. It matches ErrEmptyFields.
type EmptyFieldsError struct {
	Fields []string
}

func (e *EmptyFieldsError) Error() string {
	return ErrEmptyFields.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *EmptyFieldsError) Is(target error) bool {
	return target == ErrEmptyFields
}
