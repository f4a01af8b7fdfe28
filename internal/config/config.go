// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Storage backend: "postgres" or "sqlite"
	DBDriver string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// SQLite database file, used when DBDriver is "sqlite"
	SQLitePath string

	// Valkey (Redis-compatible cache). An empty host disables caching.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	CacheTTL       time.Duration

	// ResolveLimit is how many trailing URL segments the public resolver
	// may trim while looking for a category. -1 means no limit.
	ResolveLimit int

	// AdminToken guards every write endpoint.
	AdminToken string

	// RateLimit is the number of write requests a client may make per minute.
	RateLimit int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBDriver: envOrDefault("DB_DRIVER", "postgres"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "dagcategory"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "dagcategory"),

		SQLitePath: envOrDefault("SQLITE_PATH", "dagcategory.db"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AdminToken: os.Getenv("ADMIN_TOKEN"),
	}

	var err error
	if cfg.CacheTTL, err = time.ParseDuration(envOrDefault("CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if cfg.ResolveLimit, err = strconv.Atoi(envOrDefault("RESOLVE_LIMIT", "1")); err != nil {
		return nil, fmt.Errorf("RESOLVE_LIMIT: %w", err)
	}
	if cfg.RateLimit, err = strconv.Atoi(envOrDefault("RATE_LIMIT", "60")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT: %w", err)
	}
	if cfg.RateLimit < 1 {
		return nil, errors.New("RATE_LIMIT must be at least 1")
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}

	if cfg.Env == "production" {
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "changeme" {
			return nil, errors.New("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AdminToken == "" {
			return nil, errors.New("ADMIN_TOKEN must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string, or the database file path
// when the driver is sqlite.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
