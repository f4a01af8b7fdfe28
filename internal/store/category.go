// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"dagcategory/internal/hierarchy"
	"dagcategory/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CategoryStore manages categories in the database. The same SQL runs on
// PostgreSQL (pgx) and SQLite (modernc), so queries stick to $N
// placeholders and portable functions.
type CategoryStore struct {
	db *sql.DB
	q  querier
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db, q: db}
}

var _ hierarchy.Store = (*CategoryStore)(nil)

const opDelete = "delete category"

const categoryColumns = `id, name, slug, description, parent_id, path, sort_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description,
		&c.ParentID, &c.Path, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// InTx runs fn against a store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
// Calling InTx on a store that is already inside a transaction reuses it.
func (s *CategoryStore) InTx(ctx context.Context, fn func(hierarchy.Repository) error) error {
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&CategoryStore{db: s.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *CategoryStore) findOne(ctx context.Context, where string, arg any) (*models.Category, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE `+where, arg)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.findOne(ctx, `id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindByPath retrieves a category by its full path. Returns nil if not found.
func (s *CategoryStore) FindByPath(ctx context.Context, path string) (*models.Category, error) {
	c, err := s.findOne(ctx, `path = $1`, path)
	if err != nil {
		return nil, fmt.Errorf("find category by path: %w", err)
	}
	return c, nil
}

// FindByPaths returns the categories whose path is one of paths, ordered by path.
func (s *CategoryStore) FindByPaths(ctx context.Context, paths []string) ([]models.Category, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(paths))
	args := make([]any, len(paths))
	for i, p := range paths {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = p
	}
	return s.list(ctx, `WHERE path IN (`+strings.Join(placeholders, ", ")+`) ORDER BY path`, args...)
}

// list runs a SELECT over categories with the given trailing clause.
func (s *CategoryStore) list(ctx context.Context, clause string, args ...any) ([]models.Category, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories c `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

const displayOrder = ` ORDER BY sort_order, path`

// ListAll returns every category ordered by sort_order, then path.
func (s *CategoryStore) ListAll(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, displayOrder)
}

// ListTopLevel returns the categories without a parent.
func (s *CategoryStore) ListTopLevel(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, `WHERE parent_id IS NULL`+displayOrder)
}

// ListByParent returns the direct children of parentID.
func (s *CategoryStore) ListByParent(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	return s.list(ctx, `WHERE parent_id = $1`+displayOrder, parentID)
}

// ListByPathPrefix returns every category whose path starts with prefix,
// ordered by path.
func (s *CategoryStore) ListByPathPrefix(ctx context.Context, prefix string) ([]models.Category, error) {
	return s.list(ctx, `WHERE path LIKE $1 ESCAPE '\' ORDER BY path`, escapeLike(prefix)+"%")
}

const hasChildClause = `EXISTS (SELECT 1 FROM categories ch WHERE ch.parent_id = c.id)`

// ListLeaves returns the categories with no children.
func (s *CategoryStore) ListLeaves(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, `WHERE NOT `+hasChildClause+displayOrder)
}

// ListInner returns the categories with at least one child.
func (s *CategoryStore) ListInner(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx, `WHERE `+hasChildClause+displayOrder)
}

// HasChildren reports whether any category has id as its parent.
func (s *CategoryStore) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var has bool
	err := s.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE parent_id = $1)`, id).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("check children: %w", err)
	}
	return has, nil
}

// NextSortOrder returns the next sort_order value for a given parent.
func (s *CategoryStore) NextSortOrder(ctx context.Context, parentID *uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64
	var err error
	if parentID == nil {
		err = s.q.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE parent_id IS NULL`).Scan(&maxOrder)
	} else {
		err = s.q.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE parent_id = $1`, *parentID).Scan(&maxOrder)
	}
	if err != nil {
		return 0, fmt.Errorf("next sort order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}

// Insert adds c. Timestamps are set from the Go clock so both drivers
// store the same representation.
func (s *CategoryStore) Insert(ctx context.Context, c *models.Category) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, parent_id, path, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.Slug, c.Description, c.ParentID, c.Path, c.SortOrder, now, now,
	)
	if err != nil {
		return translate("insert category", err)
	}
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

// Update modifies every mutable column of an existing category.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err := s.q.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, description = $3, parent_id = $4,
			path = $5, sort_order = $6, updated_at = $7
		WHERE id = $8
	`, c.Name, c.Slug, c.Description, c.ParentID, c.Path, c.SortOrder, now, c.ID)
	if err != nil {
		return translate("update category", err)
	}
	c.UpdatedAt = now
	return nil
}

// UpdatePath rewrites only the path column. Used while cascading.
func (s *CategoryStore) UpdatePath(ctx context.Context, id uuid.UUID, path string) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE categories SET path = $1, updated_at = $2 WHERE id = $3`,
		path, time.Now().UTC().Truncate(time.Microsecond), id,
	)
	if err != nil {
		return translate("update category path", err)
	}
	return nil
}

// Delete removes a category by ID. The parent_id foreign key is
// ON DELETE RESTRICT, so deleting a category with children fails.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translate(opDelete, err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so s matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
