// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/models"
)

// MarkdownRenderer turns post bodies into sanitised HTML.
type MarkdownRenderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts Markdown source to HTML and strips everything the UGC
// policy does not allow.
func (r *MarkdownRenderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("error rendering markdown: %w", err)
	}
	return string(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// renderPost fills BodyHTML. A rendering failure is logged and leaves it
// empty.
func (r *MarkdownRenderer) renderPost(ctx context.Context, post *models.Post) {
	rendered, err := r.Render(post.Body)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("post_id", post.ID.String()).Msg("markdown rendering failed")
	}
	post.BodyHTML = rendered
}

func (r *MarkdownRenderer) renderPosts(ctx context.Context, posts []models.Post) {
	for i := range posts {
		r.renderPost(ctx, &posts[i])
	}
}
