// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account that can author posts and bookmark them.
// It contains identity attributes, the hashed credential and the ownership
// lists maintained by the store.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user (UUIDv7).
	ID uuid.UUID `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Username is unique across all users.
	Username string `json:"username"`

	// Email is unique across all users and stored lower-cased.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never serialised.
	PasswordHash string `json:"-"`

	IsAdmin bool `json:"is_admin"`

	// Posts lists the identifiers of posts authored by the user.
	Posts []uuid.UUID `json:"posts"`

	// Comments lists the identifiers of comments written by the user.
	Comments []uuid.UUID `json:"comments"`

	// Bookmarks lists the identifiers of posts bookmarked by the user.
	Bookmarks []uuid.UUID `json:"bookmarks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignupRequest is the body of the signup endpoint.
type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned to the client after a successful signup or login.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Normalized returns a copy with surrounding spaces removed and the email
// lower-cased. The password is kept verbatim.
func (r SignupRequest) Normalized() SignupRequest {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = NormalizeEmail(r.Email)
	return r
}

// Normalized returns a copy with the email normalised like at signup.
func (r LoginRequest) Normalized() LoginRequest {
	r.Email = NormalizeEmail(r.Email)
	return r
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
