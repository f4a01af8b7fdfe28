// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"dagcategory/internal/models"
)

// Get returns the category with the given id, or ErrCategoryNotFound.
func (t *Tree) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := t.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// GetByPath returns the category stored at exactly path, or ErrCategoryNotFound.
func (t *Tree) GetByPath(ctx context.Context, path string) (*models.Category, error) {
	c, err := t.store.FindByPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("find category by path: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// All returns every category.
func (t *Tree) All(ctx context.Context) ([]models.Category, error) {
	return t.store.ListAll(ctx)
}

// TopLevel returns the roots of the forest.
func (t *Tree) TopLevel(ctx context.Context) ([]models.Category, error) {
	return t.store.ListTopLevel(ctx)
}

// Children returns the direct children of node.
func (t *Tree) Children(ctx context.Context, node *models.Category) ([]models.Category, error) {
	return t.store.ListByParent(ctx, node.ID)
}

// AllDescendants returns every category strictly below node, ordered by path.
func (t *Tree) AllDescendants(ctx context.Context, node *models.Category) ([]models.Category, error) {
	return t.store.ListByPathPrefix(ctx, DescendantPrefix(node.Path))
}

// Subtree returns node followed by all of its descendants.
func (t *Tree) Subtree(ctx context.Context, node *models.Category) ([]models.Category, error) {
	descendants, err := t.AllDescendants(ctx, node)
	if err != nil {
		return nil, err
	}
	return append([]models.Category{*node}, descendants...), nil
}

// Branch returns node and all of its ancestors, from node up to the root.
// All prefixes of node's path are fetched with one exact-match query.
func (t *Tree) Branch(ctx context.Context, node *models.Category) ([]models.Category, error) {
	branch, err := t.store.FindByPaths(ctx, Prefixes(node.Path))
	if err != nil {
		return nil, fmt.Errorf("find branch: %w", err)
	}
	slices.SortFunc(branch, func(a, b models.Category) int {
		return cmp.Compare(len(b.Path), len(a.Path))
	})
	return branch, nil
}

// AncestorsOldestFirst returns the ancestors of node starting at the root,
// excluding node itself. It is the reverse of Branch without node.
func (t *Tree) AncestorsOldestFirst(ctx context.Context, node *models.Category) ([]models.Category, error) {
	branch, err := t.Branch(ctx, node)
	if err != nil {
		return nil, err
	}
	ancestors := slices.DeleteFunc(branch, func(c models.Category) bool {
		return c.ID == node.ID
	})
	slices.Reverse(ancestors)
	return ancestors, nil
}

// Leaves returns every category without children.
func (t *Tree) Leaves(ctx context.Context) ([]models.Category, error) {
	return t.store.ListLeaves(ctx)
}

// InnerNodes returns every category with at least one child.
func (t *Tree) InnerNodes(ctx context.Context) ([]models.Category, error) {
	return t.store.ListInner(ctx)
}

// IsLeaf reports whether node has no children.
func (t *Tree) IsLeaf(ctx context.Context, node *models.Category) (bool, error) {
	hasChildren, err := t.store.HasChildren(ctx, node.ID)
	if err != nil {
		return false, err
	}
	return !hasChildren, nil
}

// NextSortOrder returns the sort order that places a new category after its
// existing siblings.
func (t *Tree) NextSortOrder(ctx context.Context, parentID *uuid.UUID) (int, error) {
	return t.store.NextSortOrder(ctx, parentID)
}

// Forest loads every category and assembles it with BuildTree.
func (t *Tree) Forest(ctx context.Context) ([]*models.TreeNode, error) {
	all, err := t.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(all), nil
}
