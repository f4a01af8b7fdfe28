// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug generates and validates the URL-friendly segments that are
// joined into category paths.
package slug

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxLength is the longest slug accepted by Validate.
const MaxLength = 255

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace matches runs of whitespace, collapsed into a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// valid is the shape every stored slug must have. It never admits the
	// path delimiter.
	valid = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Validation errors returned by Validate.
var (
	ErrEmpty   = errors.New("slug is required")
	ErrTooLong = errors.New("slug is too long (max 255 characters)")
	ErrInvalid = errors.New("slug may only contain lowercase letters, digits and single hyphens")
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Validate checks that s can be used as a path segment.
func Validate(s string) error {
	if s == "" {
		return ErrEmpty
	}
	if utf8.RuneCountInString(s) > MaxLength {
		return ErrTooLong
	}
	if !valid.MatchString(s) {
		return ErrInvalid
	}
	return nil
}
