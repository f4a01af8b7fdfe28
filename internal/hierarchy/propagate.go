// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dagcategory/internal/models"
)

// propagate rewrites the paths of every descendant of node, assuming node's
// own path is now nodePath. Children are found by parent id, never by path
// prefix, so stale paths cannot produce false matches. Each child's path is
// written before its own children are visited. Rows whose stored path is
// already correct are not written. It returns the number of rows written.
func propagate(ctx context.Context, repo Repository, node *models.Category, nodePath string) (int, error) {
	seen := map[uuid.UUID]struct{}{node.ID: {}}
	return propagateFrom(ctx, repo, node.ID, nodePath, seen)
}

func propagateFrom(ctx context.Context, repo Repository, id uuid.UUID, path string, seen map[uuid.UUID]struct{}) (int, error) {
	children, err := repo.ListByParent(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("list children of %s: %w", id, err)
	}

	written := 0
	for _, child := range children {
		if _, dup := seen[child.ID]; dup {
			cycleRejections.Inc()
			return written, &CircularParentageError{NodeID: id, AncestorID: child.ID}
		}
		seen[child.ID] = struct{}{}

		childPath := Join(path, child.Slug)
		if child.Path != childPath {
			if err := repo.UpdatePath(ctx, child.ID, childPath); err != nil {
				return written, fmt.Errorf("update path of %s: %w", child.ID, err)
			}
			written++
		}

		n, err := propagateFrom(ctx, repo, child.ID, childPath, seen)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
