// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// clientWindow holds the times of one client's requests inside the current
// window, oldest first.
type clientWindow struct {
	mu   sync.Mutex
	hits []time.Time
}

// prune drops hits at or before cutoff.
func (cw *clientWindow) prune(cutoff time.Time) {
	keep := slices.IndexFunc(cw.hits, func(ts time.Time) bool { return ts.After(cutoff) })
	if keep < 0 {
		cw.hits = cw.hits[:0]
		return
	}
	cw.hits = cw.hits[keep:]
}

// RateLimiter throttles write requests per client IP with a sliding window.
// Each write may rewrite a whole subtree, so the budget is kept small.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	now     func() time.Time
	stopCh  chan struct{}
}

// NewRateLimiter creates a rate limiter that allows limit requests per window.
// It starts a background goroutine that forgets idle clients; call Stop to
// end it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// client returns the window for key, creating it on first use.
func (rl *RateLimiter) client(key string) *clientWindow {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cw, ok := rl.clients[key]
	if !ok {
		cw = &clientWindow{}
		rl.clients[key] = cw
	}
	return cw
}

// reserve records a request for key if it is within the limit. When it is
// not, the returned duration is how long until the oldest request in the
// window expires.
func (rl *RateLimiter) reserve(key string) (bool, time.Duration) {
	cw := rl.client(key)
	now := rl.now()
	cutoff := now.Add(-rl.window)

	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.prune(cutoff)
	if len(cw.hits) >= rl.limit {
		return false, cw.hits[0].Sub(cutoff)
	}
	cw.hits = append(cw.hits, now)
	return true, 0
}

// cleanup forgets clients whose newest request has left the window.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cw := range rl.clients {
		cw.mu.Lock()
		idle := len(cw.hits) == 0 || !cw.hits[len(cw.hits)-1].After(cutoff)
		cw.mu.Unlock()
		if idle {
			delete(rl.clients, key)
		}
	}
}

// Middleware returns an HTTP middleware that rate-limits by client IP.
// Rejected requests get 429 with a Retry-After header in whole seconds.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, retry := rl.reserve(ip)
		if !ok {
			rateLimited.Inc()
			slog.Warn("rate limit exceeded", "remote", ip, "path", r.URL.Path)
			secs := int(math.Ceil(retry.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the originating client address. The leftmost
// X-Forwarded-For entry wins, then X-Real-IP, then the connection's
// remote address without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
