// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post is a blog entry written by a single author.
type Post struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`

	// Body is the Markdown source of the post.
	Body string `json:"body"`

	// BodyHTML is Body rendered to sanitised HTML. It is computed on the way
	// out and never persisted.
	BodyHTML string `json:"body_html,omitempty"`

	// AuthorID references the user that owns the post.
	AuthorID uuid.UUID `json:"author"`

	// Image holds the attached picture. Its fields are flattened into the
	// post JSON object.
	Image

	// Comments lists identifiers of comments attached to the post.
	Comments []uuid.UUID `json:"comments"`

	Tags []string `json:"tags"`

	// IsPublished controls visibility for callers outside the trusted origin.
	IsPublished bool `json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Image describes a picture stored on the image host.
type Image struct {
	// URL is the public address of the stored image.
	URL string `json:"img_url,omitempty"`

	// PublicID is the identifier assigned by the image host. It is used to
	// delete the stored file.
	PublicID string `json:"img_public_id,omitempty"`

	// Source is an optional caption crediting the image.
	Source string `json:"img_src,omitempty"`

	// SourceLink is an optional link to the image origin.
	SourceLink string `json:"img_src_link,omitempty"`
}

// HasStoredFile reports whether the image references a file on the image host.
func (i Image) HasStoredFile() bool {
	return i.PublicID != ""
}

// ImageUpload is a file received from the client that has to be stored on
// the image host.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// StoredImage is what the image host returns after a successful upload.
type StoredImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// CreatePostRequest carries everything needed to create a post.
type CreatePostRequest struct {
	AuthorID        uuid.UUID    `json:"-"`
	Title           string       `json:"title"`
	Body            string       `json:"body"`
	Tags            []string     `json:"tags"`
	IsPublished     bool         `json:"is_published"`
	ImageSource     string       `json:"img_src"`
	ImageSourceLink string       `json:"img_src_link"`
	Upload          *ImageUpload `json:"-"`

	// Multipart marks the form variant, which is checked rule by rule. The
	// JSON variant only reports empty fields.
	Multipart bool `json:"-"`
}

// PostPatch is the whitelist of fields a client is allowed to change.
// Nil fields are left untouched.
type PostPatch struct {
	Title           *string   `json:"title,omitempty"`
	Body            *string   `json:"body,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	IsPublished     *bool     `json:"is_published,omitempty"`
	ImageSource     *string   `json:"img_src,omitempty"`
	ImageSourceLink *string   `json:"img_src_link,omitempty"`

	// StoredImage is set by the service after a replacement image was
	// uploaded; clients cannot set it.
	StoredImage *StoredImage `json:"-"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Body == nil &&
		p.Tags == nil &&
		p.IsPublished == nil &&
		p.ImageSource == nil &&
		p.ImageSourceLink == nil &&
		p.StoredImage == nil
}

// UpdatePostRequest describes a partial update issued by UserID.
type UpdatePostRequest struct {
	PostID uuid.UUID
	UserID uuid.UUID
	Patch  PostPatch
	Upload *ImageUpload
}

// DeletePostRequest describes a deletion issued by UserID.
type DeletePostRequest struct {
	PostID uuid.UUID
	UserID uuid.UUID
}

// DeletePostResult is returned after a post was removed.
type DeletePostResult struct {
	Post Post

	// ImageCleanupScheduled is true when the stored image could not be
	// removed right away and was queued for the cleanup worker.
	ImageCleanupScheduled bool
}

// Normalized trims title, body and image fields and cleans the tag list.
func (r CreatePostRequest) Normalized() CreatePostRequest {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
	r.ImageSource = strings.TrimSpace(r.ImageSource)
	r.ImageSourceLink = strings.TrimSpace(r.ImageSourceLink)
	r.Tags = NormalizeTags(r.Tags)
	return r
}

// Normalized trims the present string fields and cleans the tag list.
func (p PostPatch) Normalized() PostPatch {
	p.Title = trimmedPtr(p.Title)
	p.Body = trimmedPtr(p.Body)
	p.ImageSource = trimmedPtr(p.ImageSource)
	p.ImageSourceLink = trimmedPtr(p.ImageSourceLink)
	if p.Tags != nil {
		tags := NormalizeTags(*p.Tags)
		p.Tags = &tags
	}
	return p
}

// NormalizeTags trims every tag and drops empty and repeated ones, keeping
// the first occurrence order. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	return out
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
