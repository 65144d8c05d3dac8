// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/models"
)

func TestVisibilityPolicy_IsTrusted(t *testing.T) {
	tests := []struct {
		name    string
		trusted string
		origin  string
		want    bool
	}{
		{name: "exact match", trusted: "https://admin.example.com", origin: "https://admin.example.com", want: true},
		{name: "trailing slash", trusted: "https://admin.example.com/", origin: "https://admin.example.com", want: true},
		{name: "other origin", trusted: "https://admin.example.com", origin: "https://evil.example.com", want: false},
		{name: "missing header", trusted: "https://admin.example.com", origin: "", want: false},
		{name: "unset trusted origin", trusted: "", origin: "", want: false},
		{name: "unset trusted origin with header", trusted: "", origin: "https://admin.example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewVisibilityPolicy(config.App{TrustedOrigin: tt.trusted})
			assert.Equal(t, tt.want, policy.IsTrusted(tt.origin))
		})
	}
}

func TestVisibleFilter(t *testing.T) {
	params := models.ListParams{Page: 3, PageSize: 5, Sort: models.SortDesc, Tag: "go"}

	assert.True(t, visibleFilter(params, false).PublishedOnly)
	assert.False(t, visibleFilter(params, true).PublishedOnly)
	assert.Equal(t, params, visibleFilter(params, true).ListParams)
}

func TestMarkdownRenderer_Render(t *testing.T) {
	r := NewMarkdownRenderer()

	html, err := r.Render("# Title\n\n**bold** <script>alert(1)</script> https://example.com")

	assert.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, `href="https://example.com"`)
	assert.NotContains(t, html, "<script>")
}
