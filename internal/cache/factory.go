// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Options selects and configures the cache backend.
type Options struct {
	// RedisURL enables the Redis backend when non-empty.
	RedisURL string

	// Prefix namespaces Redis keys. Ignored by the memory backend.
	Prefix string

	// DefaultTTL applies when Set is called with a zero TTL.
	DefaultTTL time.Duration
}

// New creates a cache from opts. When RedisURL is set but the connection
// fails, it logs a warning and falls back to the memory backend so the
// application still starts.
func New(opts Options, log *slog.Logger) Cache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = time.Hour
	}
	if opts.RedisURL != "" {
		c, err := NewRedis(opts.RedisURL, opts.Prefix, opts.DefaultTTL)
		if err == nil {
			log.Info("cache: using redis backend", "prefix", opts.Prefix)
			return c
		}
		log.Warn("cache: redis unavailable, falling back to memory", "error", err)
	}
	return NewMemory(opts.DefaultTTL, time.Minute)
}
