// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides caching for rendered feeds, the sitemap, and hot
// read paths. Values are []byte so the memory and Redis backends are
// interchangeable.
package cache

import (
	"context"
	"time"
)

// Cache is the interface shared by the memory and Redis backends.
// All implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. Returns ErrCacheMiss if the key is absent or
	// expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the backend's
	// default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries owned by this cache.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Cache keys for the rendered artifacts the handlers reuse.
const (
	KeyRSS     = "feed:rss"
	KeySitemap = "seo:sitemap"
	KeyPosts   = "posts:published"
)
