// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

// Query parameters of paginated listings.
const (
	queryTag      = "tag"
	queryPage     = "page"
	queryPageSize = "pageSize"
	querySort     = "sort"
)

// parseListParams reads tag, page, pageSize and sort. Every malformed
// parameter is reported as its own FieldError.
func (h *Handler) parseListParams(query url.Values) (models.ListParams, error) {
	params := models.ListParams{
		Tag:      strings.TrimSpace(query.Get(queryTag)),
		Page:     models.DefaultPage,
		PageSize: h.defaultPageSize,
		Sort:     models.SortDesc,
	}
	if params.PageSize <= 0 {
		params.PageSize = models.DefaultPageSize
	}
	maxPageSize := h.maxPageSize
	if maxPageSize <= 0 {
		maxPageSize = models.MaxPageSize
	}

	var errs validators.FieldErrors

	if raw := query.Get(queryPage); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil || page < 1:
			errs = append(errs, validators.FieldError{Field: queryPage, Message: "page must be a positive integer"})
		case page > models.MaxPage(maxPageSize):
			errs = append(errs, validators.FieldError{
				Field:   queryPage,
				Message: fmt.Sprintf("page must not exceed %d", models.MaxPage(maxPageSize)),
			})
		default:
			params.Page = page
		}
	}

	if raw := query.Get(queryPageSize); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxPageSize {
			errs = append(errs, validators.FieldError{
				Field:   queryPageSize,
				Message: fmt.Sprintf("pageSize must be an integer between 1 and %d", maxPageSize),
			})
		} else {
			params.PageSize = size
		}
	}

	if raw := query.Get(querySort); raw != "" {
		switch models.SortOrder(strings.ToLower(raw)) {
		case models.SortAsc:
			params.Sort = models.SortAsc
		case models.SortDesc:
			params.Sort = models.SortDesc
		default:
			errs = append(errs, validators.FieldError{Field: querySort, Message: "sort must be either asc or desc"})
		}
	}

	if len(errs) > 0 {
		return models.ListParams{}, errs
	}
	return params, nil
}

// pageLinks builds self, prev and next links relative to the request path.
// prev exists iff page > 1 and next iff page*pageSize < totalCount.
func pageLinks(requestURL *url.URL, params models.ListParams, totalCount int64) *models.PageLinks {
	links := &models.PageLinks{Self: pageURL(requestURL, params, params.Page)}

	if params.HasPrev() {
		links.Prev = pageURL(requestURL, params, params.Page-1)
	}
	if params.HasNext(totalCount) {
		links.Next = pageURL(requestURL, params, params.Page+1)
	}

	return links
}

func pageURL(requestURL *url.URL, params models.ListParams, page int) string {
	query := url.Values{}
	if params.Tag != "" {
		query.Set(queryTag, params.Tag)
	}
	query.Set(queryPage, strconv.Itoa(page))
	query.Set(queryPageSize, strconv.Itoa(params.PageSize))
	query.Set(querySort, string(params.Sort))

	u := url.URL{Path: requestURL.Path, RawQuery: query.Encode()}
	return u.String()
}
