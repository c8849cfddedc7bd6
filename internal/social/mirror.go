// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package social mirrors external platform feeds (YouTube, Instagram) into
// the local store. Reads are served from the stored snapshot; upstream APIs
// are only consulted when the snapshot is stale, and an upstream failure
// degrades to the stale snapshot rather than an error.
package social

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/emckay/folio/internal/model"
	"github.com/emckay/folio/internal/store"
)

// Snapshots older than this are refreshed from upstream on the next read.
const stalenessThreshold = 60 * time.Minute

const httpTimeout = 15 * time.Second

// fetcher pulls the latest posts from one upstream platform.
type fetcher interface {
	Fetch(ctx context.Context, limit int) ([]model.SocialPost, error)
}

// Result is the outcome of a mirror read.
type Result struct {
	Posts []model.SocialPost
	// Cached is true when the snapshot was fresh and upstream was not called.
	Cached bool
	// Fallback is true when upstream failed and a stale snapshot was served.
	Fallback bool
}

// Mirror serves platform feeds from the store, refreshing from upstream when
// stale.
type Mirror struct {
	store    store.SocialStore
	fetchers map[string]fetcher
	log      *slog.Logger
	now      func() time.Time
}

// Options configures platform credentials. A platform with empty credentials
// is disabled and always serves the (possibly empty) snapshot.
type Options struct {
	YouTubeAPIKey    string
	YouTubeChannelID string
	InstagramToken   string
	InstagramUserID  string

	// HTTPClient overrides the default client, used by tests.
	HTTPClient *http.Client
}

// NewMirror builds a mirror over the given snapshot store.
func NewMirror(s store.SocialStore, opts Options, log *slog.Logger) *Mirror {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}

	fetchers := make(map[string]fetcher)
	if opts.YouTubeAPIKey != "" && opts.YouTubeChannelID != "" {
		fetchers[model.PlatformYouTube] = newYouTubeClient(opts.YouTubeAPIKey, opts.YouTubeChannelID, client)
	}
	if opts.InstagramToken != "" && opts.InstagramUserID != "" {
		fetchers[model.PlatformInstagram] = newInstagramClient(opts.InstagramToken, opts.InstagramUserID, client)
	}

	return &Mirror{
		store:    s,
		fetchers: fetchers,
		log:      log,
		now:      time.Now,
	}
}

// Enabled reports whether the platform has credentials configured.
func (m *Mirror) Enabled(platform string) bool {
	_, ok := m.fetchers[platform]
	return ok
}

// Platforms returns the platforms with credentials configured, sorted.
func (m *Mirror) Platforms() []string {
	names := make([]string, 0, len(m.fetchers))
	for name := range m.fetchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fetch returns up to limit posts for the platform. A fresh snapshot is
// served as-is; a stale one triggers an upstream refresh, falling back to the
// stale data when upstream fails. force skips the staleness check.
func (m *Mirror) Fetch(ctx context.Context, platform string, limit int, force bool) (Result, error) {
	snapshot, err := m.store.Snapshot(ctx, platform)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s snapshot: %w", platform, err)
	}

	f, enabled := m.fetchers[platform]
	if !enabled {
		return Result{Posts: trim(snapshot, limit), Cached: true}, nil
	}
	if !force && fresh(snapshot, m.now()) {
		return Result{Posts: trim(snapshot, limit), Cached: true}, nil
	}

	posts, err := f.Fetch(ctx, limit)
	if err != nil {
		m.log.Warn("social: upstream fetch failed, serving stale snapshot",
			"platform", platform, "error", err)
		return Result{Posts: trim(snapshot, limit), Fallback: true}, nil
	}
	// An empty result counts as a failed refresh: the snapshot stays as it
	// is rather than being wiped by a flaky upstream.
	if len(posts) == 0 {
		m.log.Warn("social: upstream returned no items, serving stale snapshot",
			"platform", platform)
		return Result{Posts: trim(snapshot, limit), Fallback: true}, nil
	}

	now := m.now().UTC()
	for i := range posts {
		posts[i].Platform = platform
		posts[i].CachedAt = now
	}
	if err := m.store.Upsert(ctx, platform, posts); err != nil {
		return Result{}, fmt.Errorf("storing %s snapshot: %w", platform, err)
	}

	// Re-read so ordering and previously mirrored posts are consistent.
	snapshot, err = m.store.Snapshot(ctx, platform)
	if err != nil {
		return Result{}, fmt.Errorf("rereading %s snapshot: %w", platform, err)
	}
	return Result{Posts: trim(snapshot, limit)}, nil
}

// RefreshAll force-refreshes every configured platform. Used by the
// scheduler; per-platform failures are logged, not returned.
func (m *Mirror) RefreshAll(ctx context.Context) {
	for platform := range m.fetchers {
		if _, err := m.Fetch(ctx, platform, 0, true); err != nil {
			m.log.Error("social: scheduled refresh failed", "platform", platform, "error", err)
		}
	}
}

func fresh(posts []model.SocialPost, now time.Time) bool {
	if len(posts) == 0 {
		return false
	}
	// All posts in a snapshot share a CachedAt stamp; check the first.
	return now.Sub(posts[0].CachedAt) < stalenessThreshold
}

func trim(posts []model.SocialPost, limit int) []model.SocialPost {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}
