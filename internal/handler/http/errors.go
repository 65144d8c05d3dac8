// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoIdentity is returned by handlers behind the auth middleware when
	// the request context carries no user id.
	ErrNoIdentity = errors.New("no authenticated user in context")
)

// Request decoding errors.
var (
	errInvalidBody       = errors.New("invalid request body")
	errUnknownPatchField = errors.New("unknown field in patch body")
)
