// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "unicode"

// Field names as they appear in request bodies.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldTitle           = "title"
	FieldBody            = "body"
	FieldTags            = "tags"
	FieldImageSourceLink = "img_src_link"
)

// Messages reported to clients.
const (
	MsgAllFieldsRequired = "All fields are required"
	MsgUsernameTooShort  = "Username must be at least 4 characters"
	MsgUsernameTooLong   = "Username must be fewer than 25 characters"
	MsgUsernameAlphanum  = "Username can only contain letters and numbers"
	MsgInvalidEmail      = "Email must be a valid email"
	MsgWeakPassword      = "Password must be at least 8 characters and include at at least one uppercase, lowercase, number and symbols"
	MsgPasswordTooLong   = "Password must be at most 72 bytes long"
	MsgInvalidTag        = "Tags must be at most 32 characters"
	MsgInvalidSourceLink = "Image source link must be a valid URL"
)

const (
	tagStrongPassword     = "strongpassword"
	tagPasswordBytes      = "passwordbytes"
	minStrongPasswordSize = 8

	// bcrypt rejects longer passwords.
	maxPasswordBytes = 72
)

// rule is one validator tag with the message reported when it fails.
type rule struct {
	tag     string
	message string
}

type fieldRules struct {
	field string
	rules []rule
}

var signupRules = []fieldRules{
	{FieldFirstName, []rule{{"required", MsgAllFieldsRequired}}},
	{FieldLastName, []rule{{"required", MsgAllFieldsRequired}}},
	{FieldUsername, []rule{
		{"min=4", MsgUsernameTooShort},
		{"max=24", MsgUsernameTooLong},
		{"alphanum", MsgUsernameAlphanum},
	}},
	{FieldEmail, []rule{{"required,email", MsgInvalidEmail}}},
	{FieldPassword, []rule{
		{tagStrongPassword, MsgWeakPassword},
		{tagPasswordBytes, MsgPasswordTooLong},
	}},
}

var loginRules = []fieldRules{
	{FieldEmail, []rule{{"required", MsgAllFieldsRequired}}},
	{FieldPassword, []rule{{"required", MsgAllFieldsRequired}}},
}

var postRules = []fieldRules{
	{FieldTitle, []rule{{"required", MsgAllFieldsRequired}}},
	{FieldBody, []rule{{"required", MsgAllFieldsRequired}}},
	{FieldTags, []rule{{"dive,max=32", MsgInvalidTag}}},
	{FieldImageSourceLink, []rule{{"omitempty,url", MsgInvalidSourceLink}}},
}

// postPatchRules apply to present fields only.
var postPatchRules = postRules

// fitsPasswordHash reports whether password is short enough to be hashed.
// The limit counts bytes, not runes.
func fitsPasswordHash(password string) bool {
	return len(password) <= maxPasswordBytes
}

// isStrongPassword requires at least eight characters including an upper
// case letter, a lower case letter, a digit and a symbol.
func isStrongPassword(password string) bool {
	var (
		length                        int
		upper, lower, digit, symbolic bool
	)

	for _, r := range password {
		length++
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r), unicode.IsSpace(r):
			symbolic = true
		}
	}

	return length >= minStrongPasswordSize && upper && lower && digit && symbolic
}
