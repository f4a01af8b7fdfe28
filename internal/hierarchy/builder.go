// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"dagcategory/internal/models"
)

// computePath walks the parent chain of node and returns its path. The walk
// starts from node.ParentID as given (which may differ from the stored row)
// and continues through stored ancestors. It stops with a
// *CircularParentageError as soon as an id repeats, node.ID included.
func computePath(ctx context.Context, repo Repository, node *models.Category) (string, error) {
	seen := map[uuid.UUID]struct{}{node.ID: {}}
	slugs := []string{node.Slug}

	parentID := node.ParentID
	for parentID != nil {
		if _, dup := seen[*parentID]; dup {
			cycleRejections.Inc()
			return "", &CircularParentageError{NodeID: node.ID, AncestorID: *parentID}
		}
		seen[*parentID] = struct{}{}

		parent, err := repo.FindByID(ctx, *parentID)
		if err != nil {
			return "", fmt.Errorf("find ancestor %s: %w", *parentID, err)
		}
		if parent == nil {
			return "", fmt.Errorf("%w: %s", ErrParentNotFound, *parentID)
		}
		slugs = append(slugs, parent.Slug)
		parentID = parent.ParentID
	}

	slices.Reverse(slugs)
	return Encode(slugs), nil
}
