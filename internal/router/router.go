// Package router sets up all HTTP routes and middleware chains for the
// category service. It organizes routes into public read routes and
// token-protected write routes with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dagcategory/internal/handlers"
	"dagcategory/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. Write routes require adminToken as a bearer
// token and are throttled by limiter.
func New(categories *handlers.Categories, resolver *handlers.Resolver, adminToken string, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	// Health check and metrics, no auth.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	// Public category pages.
	r.Get("/c/*", resolver.Resolve)

	// Writes require the admin token and are rate limited.
	write := chi.Chain(middleware.RequireToken(adminToken), limiter.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/hierarchy", categories.Hierarchy)
		r.With(write...).Get("/cache/log", categories.CacheLog)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.Forest)
			r.Get("/top", categories.TopLevel)
			r.Get("/leaves", categories.Leaves)
			r.Get("/inner", categories.Inner)
			r.Get("/{id}", categories.Get)
			r.Get("/{id}/children", categories.Children)
			r.Get("/{id}/descendants", categories.Descendants)
			r.Get("/{id}/subtree", categories.Subtree)
			r.Get("/{id}/branch", categories.Branch)
			r.Get("/{id}/ancestors", categories.Ancestors)

			r.Group(func(r chi.Router) {
				r.Use(write...)
				r.Post("/", categories.Create)
				r.Post("/rebuild", categories.Rebuild)
				r.Post("/reorder", categories.Reorder)
				r.Put("/{id}", categories.Update)
				r.Delete("/{id}", categories.Delete)
				r.Post("/{id}/move", categories.Move)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
