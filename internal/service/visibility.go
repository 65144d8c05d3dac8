// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/models"
)

// VisibilityPolicy decides whether a caller may see unpublished posts.
// Drafts are shown only to requests whose Origin header equals the
// configured trusted origin.
type VisibilityPolicy struct {
	trustedOrigin string
}

func NewVisibilityPolicy(cfg config.App) *VisibilityPolicy {
	return &VisibilityPolicy{trustedOrigin: strings.TrimRight(strings.TrimSpace(cfg.TrustedOrigin), "/")}
}

// IsTrusted reports whether origin is the trusted origin. An unset trusted
// origin trusts nobody.
func (p *VisibilityPolicy) IsTrusted(origin string) bool {
	if p.trustedOrigin == "" {
		return false
	}
	return strings.TrimRight(strings.TrimSpace(origin), "/") == p.trustedOrigin
}

// visibleFilter narrows a listing to what the caller may see.
func visibleFilter(params models.ListParams, trusted bool) models.PostFilter {
	return models.PostFilter{
		ListParams:    params,
		PublishedOnly: !trusted,
	}
}

func isVisible(post models.Post, trusted bool) bool {
	return trusted || post.IsPublished
}
