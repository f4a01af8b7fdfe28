// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test runs against a fresh, migrated and seeded SQLite database;
// the response cache is disabled.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"dagcategory/internal/database"
	"dagcategory/internal/hierarchy"
	"dagcategory/internal/models"
	"dagcategory/internal/store"
)

// testEnv holds the dependencies of a handler test.
type testEnv struct {
	DB         *sql.DB
	Tree       *hierarchy.Tree
	CacheLog   *store.CacheLogStore
	Categories *Categories
	Resolver   *Resolver
	Router     http.Handler
}

// newTestEnv opens a seeded SQLite database in a temp dir and wires the
// handlers onto a router with the production route layout.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := database.SQLiteDSN(filepath.Join(t.TempDir(), "handlers.db"))
	db, err := database.Connect(database.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tree := hierarchy.New(store.NewCategoryStore(db))
	cacheLog := store.NewCacheLogStore(db)
	categories := NewCategories(tree, nil, cacheLog)
	resolver := NewResolver(tree, nil, 1)

	r := chi.NewRouter()
	r.Get("/c/*", resolver.Resolve)
	r.Get("/api/hierarchy", categories.Hierarchy)
	r.Get("/api/cache/log", categories.CacheLog)
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categories.Forest)
		r.Post("/", categories.Create)
		r.Get("/top", categories.TopLevel)
		r.Get("/leaves", categories.Leaves)
		r.Get("/inner", categories.Inner)
		r.Post("/rebuild", categories.Rebuild)
		r.Post("/reorder", categories.Reorder)
		r.Get("/{id}", categories.Get)
		r.Put("/{id}", categories.Update)
		r.Delete("/{id}", categories.Delete)
		r.Post("/{id}/move", categories.Move)
		r.Get("/{id}/children", categories.Children)
		r.Get("/{id}/descendants", categories.Descendants)
		r.Get("/{id}/subtree", categories.Subtree)
		r.Get("/{id}/branch", categories.Branch)
		r.Get("/{id}/ancestors", categories.Ancestors)
	})

	return &testEnv{
		DB:         db,
		Tree:       tree,
		CacheLog:   cacheLog,
		Categories: categories,
		Resolver:   resolver,
		Router:     r,
	}
}

// do sends a request through the router. A non-nil body is JSON encoded
// unless it is already a string.
func (env *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// byPath fetches a seeded category.
func (env *testEnv) byPath(t *testing.T, path string) *models.Category {
	t.Helper()
	c, err := env.Tree.GetByPath(context.Background(), path)
	if err != nil {
		t.Fatalf("GetByPath(%q): %v", path, err)
	}
	return c
}

// decode unmarshals a recorded JSON response body.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

// expectStatus fails the test when the recorded status differs.
func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func paths(categories []models.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = c.Path
	}
	return out
}
