// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the category service.
// Handlers are grouped by concern (category API, public resolver,
// hierarchy widget) and receive their dependencies through the handler
// struct.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"dagcategory/internal/cache"
	"dagcategory/internal/hierarchy"
	"dagcategory/internal/models"
	"dagcategory/internal/slug"
	"dagcategory/internal/store"
)

// Categories groups the JSON category API handlers and their dependencies.
type Categories struct {
	tree     *hierarchy.Tree
	cache    *cache.ResponseCache
	cacheLog *store.CacheLogStore
}

// NewCategories creates the category API handlers. responseCache and
// cacheLog may be nil when Valkey or the invalidation log are not in use.
func NewCategories(tree *hierarchy.Tree, responseCache *cache.ResponseCache, cacheLog *store.CacheLogStore) *Categories {
	return &Categories{tree: tree, cache: responseCache, cacheLog: cacheLog}
}

// categoryRequest is the body of create and update requests. A nil
// SortOrder places a new category after its siblings, or keeps the
// current order on update.
type categoryRequest struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   *int       `json:"sort_order"`
}

// moveRequest is the body of a move request. A null parent_id makes the
// category a root.
type moveRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// --- Read endpoints ---

// Forest returns every category assembled into trees.
func (h *Categories) Forest(w http.ResponseWriter, r *http.Request) {
	roots, err := h.tree.Forest(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if roots == nil {
		roots = []*models.TreeNode{}
	}
	writeJSON(w, http.StatusOK, roots)
}

// TopLevel returns the root categories.
func (h *Categories) TopLevel(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.tree.TopLevel)
}

// Leaves returns the categories without children.
func (h *Categories) Leaves(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.tree.Leaves)
}

// Inner returns the categories with at least one child.
func (h *Categories) Inner(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.tree.InnerNodes)
}

func (h *Categories) list(w http.ResponseWriter, r *http.Request, fetch func(context.Context) ([]models.Category, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items)
}

// Get returns a single category.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	node, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// Children returns the direct children of a category.
func (h *Categories) Children(w http.ResponseWriter, r *http.Request) {
	h.related(w, r, h.tree.Children)
}

// Descendants returns every category below a category, ordered by path.
func (h *Categories) Descendants(w http.ResponseWriter, r *http.Request) {
	h.related(w, r, h.tree.AllDescendants)
}

// Subtree returns a category followed by all of its descendants.
func (h *Categories) Subtree(w http.ResponseWriter, r *http.Request) {
	h.related(w, r, h.tree.Subtree)
}

// Branch returns a category and its ancestors, nearest first.
func (h *Categories) Branch(w http.ResponseWriter, r *http.Request) {
	h.related(w, r, h.tree.Branch)
}

// Ancestors returns the ancestors of a category, root first.
func (h *Categories) Ancestors(w http.ResponseWriter, r *http.Request) {
	h.related(w, r, h.tree.AncestorsOldestFirst)
}

// related loads the {id} category and answers with fetch(category).
func (h *Categories) related(w http.ResponseWriter, r *http.Request, fetch func(context.Context, *models.Category) ([]models.Category, error)) {
	node, ok := h.load(w, r)
	if !ok {
		return
	}
	items, err := fetch(r.Context(), node)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items)
}

// load resolves the {id} parameter, writing the error response on failure.
func (h *Categories) load(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return nil, false
	}
	node, err := h.tree.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return node, true
}

// writeList writes items, encoding an empty result as [] rather than null.
func writeList(w http.ResponseWriter, items []models.Category) {
	if items == nil {
		items = []models.Category{}
	}
	writeJSON(w, http.StatusOK, items)
}

// --- Write endpoints ---

// Create adds a new category. An empty slug is generated from the name.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateCategory(req.Name, req.Slug, req.Description); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	c := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	} else {
		next, err := h.tree.NextSortOrder(ctx, req.ParentID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		c.SortOrder = next
	}

	created, err := h.tree.Create(ctx, c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.invalidate(ctx, created.ID, store.ActionCreate)

	w.Header().Set("Location", "/api/categories/"+created.ID.String())
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces the editable fields of a category. Changing the slug or
// parent rewrites the paths of every descendant.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateCategory(req.Name, req.Slug, req.Description); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	c, err := h.tree.Get(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c.Name = req.Name
	c.Slug = req.Slug
	if c.Slug == "" {
		c.Slug = slug.Generate(req.Name)
	}
	c.Description = req.Description
	c.ParentID = req.ParentID
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}

	if err := h.tree.Save(ctx, c); err != nil {
		writeError(w, r, err)
		return
	}
	h.invalidate(ctx, c.ID, store.ActionUpdate)
	writeJSON(w, http.StatusOK, c)
}

// Move reparents a category.
func (h *Categories) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var req moveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	moved, err := h.tree.Move(r.Context(), id, req.ParentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.invalidate(r.Context(), id, store.ActionMove)
	writeJSON(w, http.StatusOK, moved)
}

// Delete removes a category without children.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.tree.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	h.invalidate(r.Context(), id, store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// Reorder applies parent and sort order changes to several categories at
// once. Either every item is applied or none is.
func (h *Categories) Reorder(w http.ResponseWriter, r *http.Request) {
	var items []hierarchy.ReorderItem
	if err := decodeJSON(w, r, &items); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateReorder(len(items)); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.tree.Reorder(r.Context(), items); err != nil {
		writeError(w, r, err)
		return
	}
	h.invalidate(r.Context(), uuid.Nil, store.ActionReorder)
	w.WriteHeader(http.StatusNoContent)
}

// Rebuild recomputes every stored path and reports how many were rewritten.
func (h *Categories) Rebuild(w http.ResponseWriter, r *http.Request) {
	n, err := h.tree.Rebuild(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if n > 0 {
		h.invalidate(r.Context(), uuid.Nil, store.ActionRebuild)
	}
	writeJSON(w, http.StatusOK, map[string]int{"rewritten": n})
}

// CacheLog returns the most recent cache invalidations, newest first.
func (h *Categories) CacheLog(w http.ResponseWriter, r *http.Request) {
	if h.cacheLog == nil {
		writeMessage(w, http.StatusNotFound, "cache log is not enabled")
		return
	}
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 500 {
			writeMessage(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	entries, err := h.cacheLog.RecentEntries(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []store.CacheLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// invalidate clears cached responses after a mutation and logs the event.
// Any write can move paths, so the whole response cache goes.
func (h *Categories) invalidate(ctx context.Context, id uuid.UUID, action string) {
	h.cache.InvalidateAll(ctx)
	if h.cacheLog != nil {
		h.cacheLog.Log(ctx, "category", id, action)
	}
}
