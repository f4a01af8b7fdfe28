// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"

	"dagcategory/internal/models"
)

// hierarchyFilterKey is the only query parameter the hierarchy widget
// understands.
const hierarchyFilterKey = "path"

// allCategoriesTitle labels the link back to the top level.
const allCategoriesTitle = "All categories"

// hierarchyLink is one entry of the hierarchy filter widget.
type hierarchyLink struct {
	Link  string `json:"link"`
	Title string `json:"title"`
}

// hierarchyResponse drives a drill-down filter: a link back up one level
// and a link for every category one level down.
type hierarchyResponse struct {
	Show    bool            `json:"show"`
	Back    *hierarchyLink  `json:"back,omitempty"`
	Choices []hierarchyLink `json:"choices"`
}

// Hierarchy handles GET /api/hierarchy. Without a path it lists the top
// level; with one it lists that category's children and a link to its
// parent.
func (h *Categories) Hierarchy(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	for key := range query {
		if key != hierarchyFilterKey {
			writeMessage(w, http.StatusBadRequest, "unsupported filter: "+key)
			return
		}
	}

	ctx := r.Context()
	path := query.Get(hierarchyFilterKey)
	if path == "" {
		roots, err := h.tree.TopLevel(ctx)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, hierarchyResponse{Show: true, Choices: choices(roots)})
		return
	}

	category, err := h.tree.GetByPath(ctx, path)
	if err != nil {
		writeError(w, r, err)
		return
	}

	back := &hierarchyLink{Link: filterLink(""), Title: allCategoriesTitle}
	if category.ParentID != nil {
		parent, err := h.tree.Get(ctx, *category.ParentID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		back = &hierarchyLink{Link: filterLink(parent.Path), Title: parent.Name}
	}

	children, err := h.tree.Children(ctx, category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hierarchyResponse{Show: true, Back: back, Choices: choices(children)})
}

// filterLink returns the query string selecting path, or the bare "?"
// that clears the filter.
func filterLink(path string) string {
	if path == "" {
		return "?"
	}
	return "?" + url.Values{hierarchyFilterKey: {path}}.Encode()
}

func choices(categories []models.Category) []hierarchyLink {
	links := make([]hierarchyLink, 0, len(categories))
	for _, c := range categories {
		links = append(links, hierarchyLink{Link: filterLink(c.Path), Title: c.Name})
	}
	return links
}
