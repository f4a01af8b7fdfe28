// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrCircularParentage matches any *CircularParentageError via errors.Is.
	ErrCircularParentage = errors.New("circular parentage is not allowed")

	// ErrCategoryNotFound is returned when a lookup by id or path finds nothing.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrParentNotFound is returned when a node references a parent id that
	// does not exist.
	ErrParentNotFound = errors.New("parent category not found")

	// ErrHasChildren is returned when deleting a node that still has children.
	// Descendants must be moved or deleted first.
	ErrHasChildren = errors.New("category has children")

	// ErrInvalidSlug wraps slug validation failures.
	ErrInvalidSlug = errors.New("invalid slug")

	// ErrDuplicatePath is returned when a write would give two categories
	// the same path, or two siblings the same slug.
	ErrDuplicatePath = errors.New("a category with this path already exists")
)

// CircularParentageError reports that AncestorID appeared twice while
// walking the parent chain of NodeID.
type CircularParentageError struct {
	NodeID     uuid.UUID
	AncestorID uuid.UUID
}

func (e *CircularParentageError) Error() string {
	if e.NodeID == e.AncestorID {
		return fmt.Sprintf("circular parentage: category %s would be its own ancestor", e.NodeID)
	}
	return fmt.Sprintf("circular parentage: category %s appears twice in the ancestor chain of %s", e.AncestorID, e.NodeID)
}

// Is lets errors.Is(err, ErrCircularParentage) match.
func (e *CircularParentageError) Is(target error) bool {
	return target == ErrCircularParentage
}
