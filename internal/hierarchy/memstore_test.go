package hierarchy

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"dagcategory/internal/models"
)

// memStore is an in-memory Store. InTx snapshots the rows and restores
// them when fn fails, which is enough to observe rollback behavior.
type memStore struct {
	rows   map[uuid.UUID]models.Category
	writes int
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uuid.UUID]models.Category)}
}

func (m *memStore) InTx(_ context.Context, fn func(Repository) error) error {
	snapshot := maps.Clone(m.rows)
	writes := m.writes
	if err := fn(m); err != nil {
		m.rows = snapshot
		m.writes = writes
		return err
	}
	return nil
}

func (m *memStore) sorted(keep func(models.Category) bool, byPath bool) []models.Category {
	var out []models.Category
	for _, c := range m.rows {
		if keep(c) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b models.Category) int {
		if !byPath {
			if n := cmp.Compare(a.SortOrder, b.SortOrder); n != 0 {
				return n
			}
		}
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

func (m *memStore) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memStore) FindByPath(_ context.Context, path string) (*models.Category, error) {
	for _, c := range m.rows {
		if c.Path == path {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByPaths(_ context.Context, paths []string) ([]models.Category, error) {
	return m.sorted(func(c models.Category) bool { return slices.Contains(paths, c.Path) }, true), nil
}

func (m *memStore) ListAll(context.Context) ([]models.Category, error) {
	return m.sorted(func(models.Category) bool { return true }, false), nil
}

func (m *memStore) ListTopLevel(context.Context) ([]models.Category, error) {
	return m.sorted(func(c models.Category) bool { return c.ParentID == nil }, false), nil
}

func (m *memStore) ListByParent(_ context.Context, parentID uuid.UUID) ([]models.Category, error) {
	return m.sorted(func(c models.Category) bool { return c.ParentID != nil && *c.ParentID == parentID }, false), nil
}

func (m *memStore) ListByPathPrefix(_ context.Context, prefix string) ([]models.Category, error) {
	return m.sorted(func(c models.Category) bool { return strings.HasPrefix(c.Path, prefix) }, true), nil
}

func (m *memStore) hasChildren(id uuid.UUID) bool {
	for _, c := range m.rows {
		if c.ParentID != nil && *c.ParentID == id {
			return true
		}
	}
	return false
}

func (m *memStore) ListLeaves(context.Context) ([]models.Category, error) {
	return m.sorted(func(c models.Category) bool { return !m.hasChildren(c.ID) }, false), nil
}

func (m *memStore) ListInner(context.Context) ([]models.Category, error) {
	return m.sorted(func(c models.Category) bool { return m.hasChildren(c.ID) }, false), nil
}

func (m *memStore) HasChildren(_ context.Context, id uuid.UUID) (bool, error) {
	return m.hasChildren(id), nil
}

func (m *memStore) NextSortOrder(_ context.Context, parentID *uuid.UUID) (int, error) {
	next := 0
	for _, c := range m.rows {
		if sameParent(c.ParentID, parentID) && c.SortOrder >= next {
			next = c.SortOrder + 1
		}
	}
	return next, nil
}

func (m *memStore) Insert(_ context.Context, c *models.Category) error {
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	m.rows[c.ID] = *c
	m.writes++
	return nil
}

func (m *memStore) Update(_ context.Context, c *models.Category) error {
	c.UpdatedAt = time.Now()
	m.rows[c.ID] = *c
	m.writes++
	return nil
}

func (m *memStore) UpdatePath(_ context.Context, id uuid.UUID, path string) error {
	c := m.rows[id]
	c.Path = path
	m.rows[id] = c
	m.writes++
	return nil
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	m.writes++
	return nil
}

// path returns the stored path of id.
func (m *memStore) path(id uuid.UUID) string {
	return m.rows[id].Path
}
