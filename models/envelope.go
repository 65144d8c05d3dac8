// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strconv"

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform wrapper of every JSON response.
type Envelope struct {
	Status   string          `json:"status"`
	Code     int             `json:"code"`
	Messages []string        `json:"messages"`
	Errors   []EnvelopeError `json:"errors"`
	Data     any             `json:"data"`

	// Metadata and Links are present on paginated listings only.
	Metadata *PageMetadata `json:"metadata,omitempty"`
	Links    *PageLinks    `json:"links,omitempty"`
}

// EnvelopeError is a single error entry. Status is the HTTP status code
// rendered as a string.
type EnvelopeError struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// PageMetadata describes the listing window.
type PageMetadata struct {
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

// PageLinks holds navigation links of a listing. Prev and Next are omitted
// when no such page exists.
type PageLinks struct {
	Self string `json:"self"`
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

// NewSuccessEnvelope wraps data into a success envelope.
func NewSuccessEnvelope(code int, data any, messages ...string) Envelope {
	if messages == nil {
		messages = []string{}
	}
	return Envelope{
		Status:   StatusSuccess,
		Code:     code,
		Messages: messages,
		Errors:   nil,
		Data:     data,
	}
}

// NewErrorEnvelope builds an error envelope with one message and one error
// entry per detail. Without details the message itself becomes the detail.
func NewErrorEnvelope(code int, message string, details ...string) Envelope {
	if len(details) == 0 {
		details = []string{message}
	}

	errs := make([]EnvelopeError, 0, len(details))
	for _, d := range details {
		errs = append(errs, EnvelopeError{Status: strconv.Itoa(code), Detail: d})
	}

	return Envelope{
		Status:   StatusError,
		Code:     code,
		Messages: []string{message},
		Errors:   errs,
		Data:     nil,
	}
}
