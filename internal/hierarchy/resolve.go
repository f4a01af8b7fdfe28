// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"
	"fmt"
	"strings"

	"dagcategory/internal/models"
)

// Unlimited lets SelectFromPath trim any number of trailing segments.
const Unlimited = -1

// SelectFromPath finds the category matching the longest prefix of a
// slash-delimited URL path. At most limit trailing segments may be trimmed
// off (0 means the whole path must match, a negative limit means no bound).
// Trimmed segments are returned as leftovers in their original order.
//
// When nothing matches, the category is nil and the leftovers hold every
// segment that was trimmed while searching. Every candidate prefix is
// fetched with a single exact-match query.
func (t *Tree) SelectFromPath(ctx context.Context, urlPath string, limit int) (*models.Category, []string, error) {
	segments := splitURLPath(urlPath)
	if len(segments) == 0 {
		return nil, []string{}, nil
	}

	maxTrim := len(segments) - 1
	if limit >= 0 && limit < maxTrim {
		maxTrim = limit
	}

	candidates := make([]string, 0, maxTrim+1)
	for trim := 0; trim <= maxTrim; trim++ {
		candidates = append(candidates, Encode(segments[:len(segments)-trim]))
	}

	found, err := t.store.FindByPaths(ctx, candidates)
	if err != nil {
		return nil, nil, fmt.Errorf("select from path: %w", err)
	}
	byPath := make(map[string]models.Category, len(found))
	for _, c := range found {
		byPath[c.Path] = c
	}

	for trim, candidate := range candidates {
		if c, ok := byPath[candidate]; ok {
			resolveResults.WithLabelValues("hit").Inc()
			leftover := append([]string{}, segments[len(segments)-trim:]...)
			return &c, leftover, nil
		}
	}

	resolveResults.WithLabelValues("miss").Inc()
	tries := min(maxTrim+1, len(segments))
	return nil, append([]string{}, segments[len(segments)-tries:]...), nil
}

// Resolve is SelectFromPath for callers that treat a miss as an error. It
// returns ErrCategoryNotFound when no prefix within the budget matches.
func (t *Tree) Resolve(ctx context.Context, urlPath string, limit int) (*models.Category, []string, error) {
	c, leftover, err := t.SelectFromPath(ctx, urlPath, limit)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, leftover, fmt.Errorf("%w: %q", ErrCategoryNotFound, urlPath)
	}
	return c, leftover, nil
}

// splitURLPath splits on "/" and drops empty segments, so leading,
// trailing and doubled slashes are ignored.
func splitURLPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
