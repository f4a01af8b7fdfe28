// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"dagcategory/internal/slug"
)

// Validation limits for category fields.
const (
	maxNameLen        = 255
	maxDescriptionLen = 10_000
	maxReorderItems   = 1_000
)

// validateCategory checks category inputs and returns the first error found.
// Slug syntax is checked by the hierarchy when the category is saved.
func validateCategory(name, categorySlug, description string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 255 characters)."
	}
	if utf8.RuneCountInString(categorySlug) > slug.MaxLength {
		return "Slug is too long (max 255 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 10,000 characters)."
	}
	return ""
}

// validateReorder checks the size of a bulk reorder request.
func validateReorder(n int) string {
	if n == 0 {
		return "At least one item is required."
	}
	if n > maxReorderItems {
		return "Too many items (max 1,000)."
	}
	return ""
}
