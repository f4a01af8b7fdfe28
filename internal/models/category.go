// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PathDelimiter separates slugs inside a materialized category path.
const PathDelimiter = "/"

// Category is a node in the category forest. Path is the materialized
// chain of slugs from the root down to and including this node; it is
// maintained by the hierarchy package and never set directly by callers.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Path        string     `json:"path"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Depth is the 0-based distance to the root, derived from the stored path.
func (c *Category) Depth() int {
	return strings.Count(c.Path, PathDelimiter)
}

// TreeNode is a query-time view of a category with its children attached.
// It is produced by tree assembly and is never persisted.
type TreeNode struct {
	Category
	Depth    int         `json:"depth"`
	Children []*TreeNode `json:"children"`
}
