// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"

	"github.com/google/uuid"

	"dagcategory/internal/models"
)

// Repository is the persistence boundary of the hierarchy engine. Finders
// return (nil, nil) when no row matches. List methods return rows ordered
// by sort order and then path unless noted otherwise.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindByPath(ctx context.Context, path string) (*models.Category, error)
	// FindByPaths returns the rows whose path exactly matches one of paths,
	// in no particular order.
	FindByPaths(ctx context.Context, paths []string) ([]models.Category, error)

	ListAll(ctx context.Context) ([]models.Category, error)
	ListTopLevel(ctx context.Context) ([]models.Category, error)
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.Category, error)
	// ListByPathPrefix returns the rows whose path starts with prefix,
	// ordered by path.
	ListByPathPrefix(ctx context.Context, prefix string) ([]models.Category, error)
	ListLeaves(ctx context.Context) ([]models.Category, error)
	ListInner(ctx context.Context) ([]models.Category, error)
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
	NextSortOrder(ctx context.Context, parentID *uuid.UUID) (int, error)

	Insert(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	UpdatePath(ctx context.Context, id uuid.UUID, path string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store is a Repository that can run a unit of work in a transaction.
// The Repository handed to fn is bound to that transaction; returning an
// error from fn rolls it back.
type Store interface {
	Repository
	InTx(ctx context.Context, fn func(Repository) error) error
}
