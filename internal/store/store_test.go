// store_test.go provides the shared test database helpers for the store
// integration tests. SQLite runs against a temporary file on every run;
// PostgreSQL is added when it is reachable.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"dagcategory/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "dagcategory")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "dagcategory")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type backend struct {
	name string
	db   *sql.DB
}

// backends opens a migrated SQLite database and, when available, a
// migrated PostgreSQL connection. Connections close when the test ends.
func backends(t *testing.T) []backend {
	t.Helper()

	lite, err := database.Connect(database.DriverSQLite, database.SQLiteDSN(filepath.Join(t.TempDir(), "store.db")))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { lite.Close() })
	if err := database.Migrate(lite, database.DriverSQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	out := []backend{{name: database.DriverSQLite, db: lite}}

	pg, err := database.Connect(database.DriverPostgres, testDSN())
	if err != nil {
		t.Logf("postgres not available, sqlite only: %v", err)
		return out
	}
	t.Cleanup(func() { pg.Close() })
	if err := database.Migrate(pg, database.DriverPostgres); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	return append(out, backend{name: database.DriverPostgres, db: pg})
}

// eachBackend runs fn as a subtest per backend. Every category the test
// writes must live under root, which is unique per call and removed on
// cleanup, so runs against a shared PostgreSQL do not collide.
func eachBackend(t *testing.T, fn func(t *testing.T, s *CategoryStore, root string)) {
	t.Helper()
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			root := "t" + uuid.NewString()[:8]
			t.Cleanup(func() { cleanTree(b.db, root) })
			fn(t, NewCategoryStore(b.db), root)
		})
	}
}

// cleanTree deletes root and everything below it, deepest first.
func cleanTree(db *sql.DB, root string) {
	ctx := context.Background()
	rows, err := db.QueryContext(ctx, `
		SELECT id FROM categories
		WHERE path = $1 OR path LIKE $2
		ORDER BY LENGTH(path) DESC`, root, root+"/%")
	if err != nil {
		return
	}
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if rows.Scan(&id) == nil {
			ids = append(ids, id)
		}
	}
	rows.Close()
	for _, id := range ids {
		db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	}
}
