// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// seedTree is the demo catalogue, listed parents first.
var seedTree = []struct {
	path string
	name string
}{
	{"books", "Books"},
	{"books/fiction", "Fiction"},
	{"books/fiction/fantasy", "Fantasy"},
	{"books/fiction/science-fiction", "Science Fiction"},
	{"books/non-fiction", "Non-Fiction"},
	{"books/non-fiction/history", "History"},
	{"music", "Music"},
	{"music/jazz", "Jazz"},
	{"music/rock", "Rock"},
}

// Seed populates an empty database with a small demo category tree.
// It does nothing when any category exists already.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Truncate(time.Microsecond)
	ids := make(map[string]uuid.UUID, len(seedTree))
	order := make(map[string]int)
	for _, n := range seedTree {
		id := uuid.New()
		ids[n.path] = id

		var parentID *uuid.UUID
		parentPath := ""
		slug := n.path
		if i := strings.LastIndex(n.path, "/"); i >= 0 {
			parentPath, slug = n.path[:i], n.path[i+1:]
			pid := ids[parentPath]
			parentID = &pid
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, slug, description, parent_id, path, sort_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, id, n.name, slug, "", parentID, n.path, order[parentPath], now, now)
		if err != nil {
			return fmt.Errorf("seed insert %s: %w", n.path, err)
		}
		order[parentPath]++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo categories", "count", len(seedTree))
	return nil
}
