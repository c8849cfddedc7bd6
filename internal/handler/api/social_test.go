// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emckay/folio/internal/model"
)

func TestSocialFeed(t *testing.T) {
	h, srv := newTestServer(t)

	// Seed a snapshot directly; with no credentials configured, the mirror
	// serves whatever is stored.
	err := h.store.Social.Upsert(context.Background(), model.PlatformYouTube, []model.SocialPost{
		{ExternalID: "vid-1", Platform: model.PlatformYouTube, Title: "Older",
			URL: "https://youtube.com/watch?v=vid-1", PublishedAt: time.Now().Add(-2 * time.Hour), CachedAt: time.Now()},
		{ExternalID: "vid-2", Platform: model.PlatformYouTube, Title: "Newer",
			URL: "https://youtube.com/watch?v=vid-2", PublishedAt: time.Now().Add(-1 * time.Hour), CachedAt: time.Now()},
	})
	require.NoError(t, err)

	rec := doRequest(t, srv, http.MethodGet, "/api/social/youtube", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	posts := body["posts"].([]any)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].(map[string]any)["title"])
	assert.Equal(t, true, body["cached"])
	assert.Equal(t, false, body["fallback"])

	// limit trims the feed.
	rec = doRequest(t, srv, http.MethodGet, "/api/social/youtube?limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["posts"].([]any), 1)

	// An empty platform snapshot is an empty list, not an error.
	rec = doRequest(t, srv, http.MethodGet, "/api/social/instagram", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["posts"])
}

func TestSocialFeedValidation(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/social/tiktok", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/social/youtube?limit=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/social/youtube?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshUnconfiguredPlatform(t *testing.T) {
	_, srv := newTestServer(t)

	// The test server has no platform credentials, so a forced refresh is
	// rejected instead of silently doing nothing.
	rec := doRequest(t, srv, http.MethodPost, "/api/admin/social/youtube/refresh", testAdminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
