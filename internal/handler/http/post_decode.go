// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

// Multipart form fields of the create and update endpoints.
const (
	formTitle       = "title"
	formBody        = "body"
	formTags        = "tags"
	formIsPublished = "is_published"
	formImgSrc      = "img_src"
	formImgSrcLink  = "img_src_link"
	formImage       = "image"
)

// patchableFields is the whitelist of keys accepted in a patch body.
var patchableFields = []string{formTitle, formBody, formTags, formIsPublished, formImgSrc, formImgSrcLink}

// multipartOverhead is added to the image limit to leave room for the
// text fields and part headers.
const multipartOverhead = 1 << 20

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipart reads the whole form. A body larger than the image limit
// is rejected before any field is looked at.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	if h.maxImageSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxImageSize+multipartOverhead)
	}

	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return validators.FieldErrors{{Field: formImage, Message: "Image exceeds the size limit"}}
		}
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	return nil
}

func (h *Handler) decodeMultipartCreate(w http.ResponseWriter, r *http.Request) (models.CreatePostRequest, error) {
	if err := h.parseMultipart(w, r); err != nil {
		return models.CreatePostRequest{}, err
	}
	form := r.MultipartForm

	req := models.CreatePostRequest{
		Title:           firstValue(form.Value, formTitle),
		Body:            firstValue(form.Value, formBody),
		Tags:            splitTags(form.Value[formTags]),
		ImageSource:     firstValue(form.Value, formImgSrc),
		ImageSourceLink: firstValue(form.Value, formImgSrcLink),
		Multipart:       true,
	}

	if raw, ok := form.Value[formIsPublished]; ok && len(raw) > 0 {
		published, err := parseFormBool(raw[0])
		if err != nil {
			return models.CreatePostRequest{}, err
		}
		req.IsPublished = published
	}

	upload, err := h.readUpload(r)
	if err != nil {
		return models.CreatePostRequest{}, err
	}
	req.Upload = upload

	return req, nil
}

// decodeMultipartPatch builds a patch from the fields present in the form.
// Absent fields stay nil.
func (h *Handler) decodeMultipartPatch(w http.ResponseWriter, r *http.Request) (models.PostPatch, *models.ImageUpload, error) {
	if err := h.parseMultipart(w, r); err != nil {
		return models.PostPatch{}, nil, err
	}
	values := r.MultipartForm.Value

	var errs validators.FieldErrors
	for key := range values {
		if !slices.Contains(patchableFields, key) {
			errs = append(errs, unknownFieldError(key))
		}
	}
	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b validators.FieldError) int { return strings.Compare(a.Field, b.Field) })
		return models.PostPatch{}, nil, fmt.Errorf("%w: %w", errUnknownPatchField, errs)
	}

	var patch models.PostPatch
	patch.Title = optionalValue(values, formTitle)
	patch.Body = optionalValue(values, formBody)
	patch.ImageSource = optionalValue(values, formImgSrc)
	patch.ImageSourceLink = optionalValue(values, formImgSrcLink)
	if raw, ok := values[formTags]; ok {
		tags := splitTags(raw)
		patch.Tags = &tags
	}
	if raw := optionalValue(values, formIsPublished); raw != nil {
		published, err := parseFormBool(*raw)
		if err != nil {
			return models.PostPatch{}, nil, err
		}
		patch.IsPublished = &published
	}

	upload, err := h.readUpload(r)
	if err != nil {
		return models.PostPatch{}, nil, err
	}

	return patch, upload, nil
}

// decodeJSONPatch rejects keys outside the whitelist, each with its own
// error, before decoding the patch itself.
func decodeJSONPatch(r *http.Request) (models.PostPatch, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return models.PostPatch{}, fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	var keys map[string]json.RawMessage
	if err = utils.DecodeJSON(bytes.NewReader(raw), &keys, false); err != nil {
		if errors.Is(err, utils.ErrEmptyBody) {
			return models.PostPatch{}, err
		}
		return models.PostPatch{}, fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	var errs validators.FieldErrors
	for key := range keys {
		if !slices.Contains(patchableFields, key) {
			errs = append(errs, unknownFieldError(key))
		}
	}
	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b validators.FieldError) int { return strings.Compare(a.Field, b.Field) })
		return models.PostPatch{}, fmt.Errorf("%w: %w", errUnknownPatchField, errs)
	}

	var patch models.PostPatch
	if err = utils.DecodeJSON(bytes.NewReader(raw), &patch, true); err != nil {
		return models.PostPatch{}, fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	return patch, nil
}

// readUpload returns the "image" file part, or nil when the form has none.
func (h *Handler) readUpload(r *http.Request) (*models.ImageUpload, error) {
	file, header, err := r.FormFile(formImage)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	defer file.Close()

	if h.maxImageSize > 0 && header.Size > h.maxImageSize {
		return nil, validators.FieldErrors{{Field: formImage, Message: "Image exceeds the size limit"}}
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	return &models.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

func unknownFieldError(key string) validators.FieldError {
	return validators.FieldError{Field: key, Message: fmt.Sprintf("Field '%s' can not be updated", key)}
}

func parseFormBool(raw string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, validators.FieldErrors{{Field: formIsPublished, Message: "is_published must be true or false"}}
	}
	return v, nil
}

func firstValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func optionalValue(values map[string][]string, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}

// splitTags accepts both repeated fields and comma separated lists.
func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		tags = append(tags, strings.Split(v, ",")...)
	}
	return models.NormalizeTags(tags)
}
