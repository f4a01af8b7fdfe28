// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package hierarchy maintains a forest of categories encoded as
// materialized paths. Every category stores the slugs of its ancestors
// joined with Delimiter, so structural queries become exact or prefix
// lookups against the path column.
//
// Writes go through Tree, which recomputes the path from the parent chain,
// rejects cycles, and cascades path changes to all descendants inside a
// single storage transaction.
package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"dagcategory/internal/models"
	"dagcategory/internal/slug"
)

// Tree is the entry point for reading and mutating the category forest.
type Tree struct {
	store Store
}

// New returns a Tree backed by store.
func New(store Store) *Tree {
	return &Tree{store: store}
}

// ComputePath returns the path node would have if saved now, without
// writing anything.
func (t *Tree) ComputePath(ctx context.Context, node *models.Category) (string, error) {
	return computePath(ctx, t.store, node)
}

// Create validates c, computes its path and inserts it. An empty slug is
// generated from the name. A zero ID is replaced with a new random one.
func (t *Tree) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}
	if err := slug.Validate(c.Slug); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlug, err)
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	err := t.store.InTx(ctx, func(repo Repository) error {
		path, err := computePath(ctx, repo, c)
		if err != nil {
			return err
		}
		c.Path = path
		if err := repo.Insert(ctx, c); err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("category created", "id", c.ID, "path", c.Path)
	return c, nil
}

// Save persists changes to an existing category. The path is recomputed
// from the (possibly new) parent chain, and when it changes every
// descendant is rewritten in the same transaction. A save that changes
// nothing performs no writes.
func (t *Tree) Save(ctx context.Context, c *models.Category) error {
	if err := slug.Validate(c.Slug); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSlug, err)
	}
	return t.store.InTx(ctx, func(repo Repository) error {
		return save(ctx, repo, c)
	})
}

// Move reparents the category with the given id. A nil parentID makes it
// a root.
func (t *Tree) Move(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (*models.Category, error) {
	var moved *models.Category
	err := t.store.InTx(ctx, func(repo Repository) error {
		c, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find category: %w", err)
		}
		if c == nil {
			return ErrCategoryNotFound
		}
		c.ParentID = parentID
		if err := save(ctx, repo, c); err != nil {
			return err
		}
		moved = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// ReorderItem is one entry of a bulk reorder request.
type ReorderItem struct {
	ID        uuid.UUID  `json:"id"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder int        `json:"order"`
}

// Reorder applies parent and sort order changes to several categories in
// one transaction. Items are applied in order; paths cascade after each.
func (t *Tree) Reorder(ctx context.Context, items []ReorderItem) error {
	return t.store.InTx(ctx, func(repo Repository) error {
		for _, item := range items {
			c, err := repo.FindByID(ctx, item.ID)
			if err != nil {
				return fmt.Errorf("find category %s: %w", item.ID, err)
			}
			if c == nil {
				return fmt.Errorf("%w: %s", ErrCategoryNotFound, item.ID)
			}
			c.ParentID = item.ParentID
			c.SortOrder = item.SortOrder
			if err := save(ctx, repo, c); err != nil {
				return fmt.Errorf("reorder category %s: %w", item.ID, err)
			}
		}
		return nil
	})
}

// Delete removes a leaf category. Categories with children are refused
// with ErrHasChildren.
func (t *Tree) Delete(ctx context.Context, id uuid.UUID) error {
	return t.store.InTx(ctx, func(repo Repository) error {
		c, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find category: %w", err)
		}
		if c == nil {
			return ErrCategoryNotFound
		}
		hasChildren, err := repo.HasChildren(ctx, id)
		if err != nil {
			return fmt.Errorf("check children: %w", err)
		}
		if hasChildren {
			return ErrHasChildren
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		slog.Info("category deleted", "id", id, "path", c.Path)
		return nil
	})
}

// Rebuild recomputes every stored path from the roots down and returns the
// number of rows rewritten. Rows that are already correct are left alone.
func (t *Tree) Rebuild(ctx context.Context) (int, error) {
	written := 0
	err := t.store.InTx(ctx, func(repo Repository) error {
		roots, err := repo.ListTopLevel(ctx)
		if err != nil {
			return fmt.Errorf("list roots: %w", err)
		}
		for _, root := range roots {
			if root.Path != root.Slug {
				if err := repo.UpdatePath(ctx, root.ID, root.Slug); err != nil {
					return fmt.Errorf("update path of %s: %w", root.ID, err)
				}
				written++
			}
			n, err := propagate(ctx, repo, &root, root.Slug)
			written += n
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("category paths rebuilt", "rewritten", written)
	return written, nil
}

// save is the body of Save, run against a transaction-bound repository.
func save(ctx context.Context, repo Repository, c *models.Category) error {
	stored, err := repo.FindByID(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("find category: %w", err)
	}
	if stored == nil {
		return ErrCategoryNotFound
	}

	path, err := computePath(ctx, repo, c)
	if err != nil {
		return err
	}
	c.Path = path
	c.CreatedAt = stored.CreatedAt

	if unchanged(stored, c) {
		c.UpdatedAt = stored.UpdatedAt
		return nil
	}

	if err := repo.Update(ctx, c); err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	if stored.Path == path {
		return nil
	}

	n, err := propagate(ctx, repo, c, path)
	if err != nil {
		return err
	}
	cascadeSize.Observe(float64(n))
	slog.Info("category path changed", "id", c.ID, "from", stored.Path, "to", path, "descendants", n)
	return nil
}

// unchanged reports whether saving next over prev would be a no-op.
func unchanged(prev, next *models.Category) bool {
	return prev.Name == next.Name &&
		prev.Slug == next.Slug &&
		prev.Description == next.Description &&
		prev.Path == next.Path &&
		prev.SortOrder == next.SortOrder &&
		sameParent(prev.ParentID, next.ParentID)
}

// sameParent compares two *uuid.UUID for equality (both nil or same value).
func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// IsNotFound reports whether err means a category lookup came up empty.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}
