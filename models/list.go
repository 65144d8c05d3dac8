// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"math"

	"github.com/google/uuid"
)

// SortOrder is the creation-time ordering of a post listing.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// Defaults applied when the client omits pagination parameters.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams are the client-controlled knobs of a paginated listing.
// Page is 1-based.
type ListParams struct {
	Tag      string
	Page     int
	PageSize int
	Sort     SortOrder
}

// DefaultListParams returns the parameters used when the query string is empty.
func DefaultListParams() ListParams {
	return ListParams{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     SortDesc,
	}
}

// MaxPage is the largest page whose window end still fits in an int64
// row count for the given page size.
func MaxPage(pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	maxPage := math.MaxInt64 / int64(pageSize)
	if maxPage > math.MaxInt {
		return math.MaxInt
	}
	return int(maxPage)
}

// Offset returns the number of rows to skip. Pages past MaxPage saturate.
func (p ListParams) Offset() uint64 {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page > MaxPage(p.PageSize) {
		return math.MaxInt64
	}
	return uint64(p.Page-1) * uint64(p.PageSize)
}

// HasPrev reports whether a previous page exists.
func (p ListParams) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether more rows exist after the current window.
// The page count is derived from totalCount, so huge pages cannot overflow.
func (p ListParams) HasNext(totalCount int64) bool {
	if p.Page < 1 || p.PageSize < 1 || totalCount <= 0 {
		return false
	}
	pages := (totalCount-1)/int64(p.PageSize) + 1
	return int64(p.Page) < pages
}

// PostFilter narrows a listing down to a window of visible posts.
type PostFilter struct {
	ListParams

	// AuthorID restricts the listing to one author when not uuid.Nil.
	AuthorID uuid.UUID

	// PublishedOnly hides drafts.
	PublishedOnly bool
}

// PostPage is one window of a listing together with the total number of
// matching posts.
type PostPage struct {
	Posts      []Post
	TotalCount int64
	Params     ListParams
}
