// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"strings"

	"dagcategory/internal/models"
)

// Delimiter separates slugs in a materialized path. Slugs never contain it.
const Delimiter = models.PathDelimiter

// Encode joins slugs, root first, into a path.
func Encode(slugs []string) string {
	return strings.Join(slugs, Delimiter)
}

// Split breaks a path into its slugs, root first.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Delimiter)
}

// Join appends a slug to a parent path. An empty parent path yields a root path.
func Join(parentPath, slug string) string {
	if parentPath == "" {
		return slug
	}
	return parentPath + Delimiter + slug
}

// ParentPath strips the last segment of path. The boolean is false for
// root paths, which have no parent.
func ParentPath(path string) (string, bool) {
	idx := strings.LastIndex(path, Delimiter)
	if idx < 0 {
		return "", false
	}
	return path[:idx], true
}

// Prefixes returns every ancestor path of path followed by path itself,
// ordered from the root down.
func Prefixes(path string) []string {
	slugs := Split(path)
	prefixes := make([]string, 0, len(slugs))
	for i := range slugs {
		prefixes = append(prefixes, Encode(slugs[:i+1]))
	}
	return prefixes
}

// DescendantPrefix is the prefix shared by every strict descendant of path.
func DescendantPrefix(path string) string {
	return path + Delimiter
}

// Depth counts the delimiters in path.
func Depth(path string) int {
	return strings.Count(path, Delimiter)
}
