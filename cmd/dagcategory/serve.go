package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dagcategory/internal/database"
	"dagcategory/internal/handlers"
	"dagcategory/internal/middleware"
	"dagcategory/internal/router"
	"dagcategory/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		slog.Info("configuration loaded",
			"env", cfg.Env,
			"addr", cfg.Addr(),
			"driver", cfg.DBDriver,
			"resolve_limit", cfg.ResolveLimit,
		)

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		// Seed development data (no-op if data already exists).
		if cfg.IsDev() {
			if err := database.Seed(ctx, db); err != nil {
				return err
			}
		}

		responseCache, closeCache, err := openCache(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeCache()

		if cfg.AdminToken == "" {
			slog.Warn("ADMIN_TOKEN not set, write endpoints are disabled")
		}

		tree := newTree(db)
		limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
		defer limiter.Stop()

		r := router.New(
			handlers.NewCategories(tree, responseCache, store.NewCacheLogStore(db)),
			handlers.NewResolver(tree, responseCache, cfg.ResolveLimit),
			cfg.AdminToken,
			limiter,
		)

		srv := &http.Server{
			Addr:         cfg.Addr(),
			Handler:      r,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			slog.Info("server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			slog.Info("shutting down server")

			// Give active requests up to 30 seconds to complete.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		slog.Info("server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
