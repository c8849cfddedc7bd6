// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSSFeed(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, map[string]any{
		"slug": "feed-me", "title": "Feed Me", "content": "body", "published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/rss.xml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "rss+xml")
	assert.Contains(t, rec.Body.String(), "<rss")
	assert.Contains(t, rec.Body.String(), "https://evanmckay.dev/blog/feed-me")

	// Deleting the post invalidates the cached feed.
	rec = doRequest(t, srv, http.MethodDelete, "/api/admin/posts/feed-me", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/rss.xml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "feed-me")
}

func TestRSSExcludesDrafts(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, map[string]any{
		"slug": "secret-draft", "title": "Secret Draft", "content": "body",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/rss.xml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-draft")
}

func TestSitemap(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, map[string]any{
		"slug": "mapped", "title": "Mapped", "content": "body", "published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<urlset")
	assert.Contains(t, body, "https://evanmckay.dev/blog/mapped")
	assert.Contains(t, body, "https://evanmckay.dev/blog")
	assert.Contains(t, body, "https://evanmckay.dev/prep")
}

func TestRobots(t *testing.T) {
	_, srv := newTestServer(t)

	// The test config runs in production mode, so crawling is allowed
	// except for the admin and API surfaces.
	rec := doRequest(t, srv, http.MethodGet, "/robots.txt", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Disallow: /admin")
	assert.Contains(t, body, "Sitemap: https://evanmckay.dev/sitemap.xml")
	assert.NotContains(t, body, "Disallow: /\n")
}

func TestAssistUnavailableWithoutKey(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/assist", testAdminToken, map[string]any{
		"op":    "improve",
		"input": "make this better",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAssistValidation(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/assist", testAdminToken, map[string]any{
		"op":    "summon",
		"input": "anything",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/assist", testAdminToken, map[string]any{
		"op":    "improve",
		"input": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
