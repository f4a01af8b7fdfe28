// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dagcategory/internal/cache"
	"dagcategory/internal/hierarchy"
	"dagcategory/internal/markdown"
	"dagcategory/internal/models"
)

// viewAllSegment is the extra segment that asks for an unpaginated listing.
const viewAllSegment = "view-all"

// Resolver serves public category URLs such as /c/books/fiction/42, where
// the trailing segments that do not match a category are handed back to
// the caller as extras.
type Resolver struct {
	tree  *hierarchy.Tree
	cache *cache.ResponseCache
	limit int
}

// NewResolver creates the public resolver. limit is the number of trailing
// segments that may be trimmed while searching (hierarchy.Unlimited for no
// bound). responseCache may be nil.
func NewResolver(tree *hierarchy.Tree, responseCache *cache.ResponseCache, limit int) *Resolver {
	return &Resolver{tree: tree, cache: responseCache, limit: limit}
}

// resolveResponse is the body returned for a resolved URL. ObjectID is the
// first extra segment, the remaining ones stay in Extras.
type resolveResponse struct {
	Category        *models.Category  `json:"category"`
	DescriptionHTML string            `json:"description_html"`
	Breadcrumbs     []models.Category `json:"breadcrumbs"`
	Children        []models.Category `json:"children"`
	ObjectID        string            `json:"object_id,omitempty"`
	Extras          []string          `json:"extras"`
	ViewAll         bool              `json:"view_all"`
}

// Resolve handles GET /c/*.
func (h *Resolver) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	urlPath := chi.URLParam(r, "*")
	key := cache.ResolveKey(urlPath, h.limit)

	if cached, ok := h.cache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Cache", "HIT")
		w.Write(cached)
		return
	}

	category, extras, err := h.tree.Resolve(ctx, urlPath, h.limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	breadcrumbs, err := h.tree.AncestorsOldestFirst(ctx, category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	children, err := h.tree.Children(ctx, category)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := resolveResponse{
		Category:    category,
		Breadcrumbs: nonNil(breadcrumbs),
		Children:    nonNil(children),
		Extras:      []string{},
	}
	if resp.DescriptionHTML, err = markdown.ToHTML(category.Description); err != nil {
		// The category is still useful without its description.
		slog.Warn("render category description failed", "error", err, "id", category.ID)
	}
	switch {
	case len(extras) == 1 && extras[0] == viewAllSegment:
		resp.ViewAll = true
	case len(extras) > 0:
		resp.ObjectID = extras[0]
		resp.Extras = extras[1:]
	}

	body, err := json.Marshal(resp)
	if err != nil {
		slog.Error("encode resolve response failed", "error", err, "path", urlPath)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	h.cache.Set(ctx, key, body)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", "MISS")
	w.Write(body)
}

func nonNil(items []models.Category) []models.Category {
	if items == nil {
		return []models.Category{}
	}
	return items
}
