// Package main is the entry point for the dagcategory command. It serves
// the category HTTP API and offers maintenance subcommands that work
// directly against the configured database.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dagcategory/internal/cache"
	"dagcategory/internal/config"
	"dagcategory/internal/database"
	"dagcategory/internal/hierarchy"
	"dagcategory/internal/store"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "dagcategory",
	Short:         "Materialized-path category tree service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		slog.SetDefault(newLogger(cfg))
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// newLogger returns a text logger in development and a JSON logger
// everywhere else.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// openDB connects to the configured database and applies pending
// migrations. The caller closes the returned handle.
func openDB(cfg *config.Config) (*sql.DB, error) {
	dsn := cfg.DSN()
	if cfg.DBDriver == database.DriverSQLite {
		dsn = database.SQLiteDSN(dsn)
	}

	db, err := database.Connect(cfg.DBDriver, dsn)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openCache connects to Valkey when it is configured. The returned cache
// is nil, and close a no-op, when caching is disabled.
func openCache(ctx context.Context, cfg *config.Config) (*cache.ResponseCache, func(), error) {
	if !cfg.CacheEnabled() {
		slog.Info("valkey not configured, response cache disabled")
		return nil, func() {}, nil
	}
	client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewResponseCache(client, cfg.CacheTTL), func() { client.Close() }, nil
}

// newTree builds the hierarchy service over db.
func newTree(db *sql.DB) *hierarchy.Tree {
	return hierarchy.New(store.NewCategoryStore(db))
}
