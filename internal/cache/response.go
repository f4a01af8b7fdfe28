// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache of rendered JSON responses.
// When the public resolver answers a category URL, the encoded body is
// stored in Valkey so repeat requests skip the path lookups entirely.
// Any category mutation can move or rename paths, so writes clear the
// whole cache rather than individual keys.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "category:"

	// DefaultTTL is how long a response stays cached.
	DefaultTTL = 5 * time.Minute
)

// ResponseCache manages response caching in Valkey. A nil *ResponseCache
// is valid and behaves as an always-empty cache.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a new response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached body. The bool is false on a miss.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	cacheLookups.WithLabelValues("hit").Inc()
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a body under key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached response.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if rc == nil {
		return
	}
	if err := rc.client.Del(ctx, responseKeyPrefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("response cache invalidated", "key", key)
}

// InvalidateAll removes all cached responses by scanning for the prefix.
// Returns the number of keys deleted.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) int {
	if rc == nil {
		return 0
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache fully cleared", "deleted", deleted)
	}
	return deleted
}

// ResolveKey returns the cache key for a resolved URL path. The limit is
// part of the key because it changes which category matches.
func ResolveKey(path string, limit int) string {
	return "resolve:" + strconv.Itoa(limit) + ":" + path
}
