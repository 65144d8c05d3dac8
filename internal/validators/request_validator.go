// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-blog-api/models"
)

// RequestValidator implements [Validator] for the bodies accepted by the
// API: signup, login, post creation and post patches. Both value and pointer
// forms are accepted. Input is normalised (see the models' Normalized
// methods) before the rules run.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs a [RequestValidator] and returns it as the
// Validator interface.
func NewRequestValidator() Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation(tagStrongPassword, func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})
	_ = validate.RegisterValidation(tagPasswordBytes, func(fl validator.FieldLevel) bool {
		return fitsPasswordHash(fl.Field().String())
	})

	return &RequestValidator{validate: validate}
}

// Validate returns nil, [FieldErrors] with one entry per failing rule,
// [ErrUnsupportedType] or [ErrUnknownField]. Optional fields restrict the
// run to the named fields.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.run(signupRules, signupValues(value), fields)
	case *models.SignupRequest:
		return v.run(signupRules, signupValues(*value), fields)

	case models.LoginRequest:
		return v.run(loginRules, loginValues(value), fields)
	case *models.LoginRequest:
		return v.run(loginRules, loginValues(*value), fields)

	case models.CreatePostRequest:
		return v.run(postRules, postValues(value), fields)
	case *models.CreatePostRequest:
		return v.run(postRules, postValues(*value), fields)

	case models.PostPatch:
		return v.run(postPatchRules, patchValues(value), fields)
	case *models.PostPatch:
		return v.run(postPatchRules, patchValues(*value), fields)

	default:
		return ErrUnsupportedType
	}
}

// run evaluates every rule of every selected field present in values.
func (v *RequestValidator) run(table []fieldRules, values map[string]any, only []string) error {
	selected, err := selectRules(table, only)
	if err != nil {
		return err
	}

	var errs FieldErrors
	for _, fr := range selected {
		value, ok := values[fr.field]
		if !ok {
			continue
		}
		for _, r := range fr.rules {
			if err := v.validate.Var(value, r.tag); err != nil {
				errs = append(errs, FieldError{Field: fr.field, Message: r.message})
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func selectRules(table []fieldRules, only []string) ([]fieldRules, error) {
	if len(only) == 0 {
		return table, nil
	}

	selected := make([]fieldRules, 0, len(only))
	for _, name := range only {
		found := false
		for _, fr := range table {
			if fr.field == name {
				selected = append(selected, fr)
				found = true
				break
			}
		}
		if !found {
			return nil, ErrUnknownField
		}
	}

	return selected, nil
}

func signupValues(req models.SignupRequest) map[string]any {
	req = req.Normalized()
	return map[string]any{
		FieldFirstName: req.FirstName,
		FieldLastName:  req.LastName,
		FieldUsername:  req.Username,
		FieldEmail:     req.Email,
		FieldPassword:  req.Password,
	}
}

func loginValues(req models.LoginRequest) map[string]any {
	req = req.Normalized()
	return map[string]any{
		FieldEmail:    req.Email,
		FieldPassword: strings.TrimSpace(req.Password),
	}
}

func postValues(req models.CreatePostRequest) map[string]any {
	req = req.Normalized()
	return map[string]any{
		FieldTitle:           req.Title,
		FieldBody:            req.Body,
		FieldTags:            req.Tags,
		FieldImageSourceLink: req.ImageSourceLink,
	}
}

// patchValues only carries the fields present in the patch.
func patchValues(patch models.PostPatch) map[string]any {
	patch = patch.Normalized()
	values := make(map[string]any, 4)

	if patch.Title != nil {
		values[FieldTitle] = *patch.Title
	}
	if patch.Body != nil {
		values[FieldBody] = *patch.Body
	}
	if patch.Tags != nil {
		values[FieldTags] = *patch.Tags
	}
	if patch.ImageSourceLink != nil {
		values[FieldImageSourceLink] = *patch.ImageSourceLink
	}

	return values
}
