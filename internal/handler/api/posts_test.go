// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostLifecycle(t *testing.T) {
	_, srv := newTestServer(t)

	// Create a draft.
	rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, map[string]any{
		"slug":    "first-post",
		"title":   "First Post",
		"tags":    []string{"go", "writing"},
		"content": "# First\n\nSome body text for the very first post.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	post := body["post"].(map[string]any)
	assert.Equal(t, "first-post", post["slug"])
	assert.Equal(t, false, post["published"])
	assert.GreaterOrEqual(t, post["readingTime"].(float64), float64(1))

	// Drafts are invisible on the public surface.
	rec = doRequest(t, srv, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["posts"])

	rec = doRequest(t, srv, http.MethodGet, "/api/posts/first-post", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// But visible to the admin.
	rec = doRequest(t, srv, http.MethodGet, "/api/admin/posts/first-post", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Publish it.
	rec = doRequest(t, srv, http.MethodPut, "/api/admin/posts/first-post", testAdminToken, map[string]any{
		"slug":      "first-post",
		"title":     "First Post",
		"published": true,
		"content":   "# First\n\nSome body text for the very first post.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := decodeBody(t, rec)["posts"].([]any)
	require.Len(t, posts, 1)

	// The public read carries the raw content and rendered HTML.
	rec = doRequest(t, srv, http.MethodGet, "/api/posts/first-post", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	post = decodeBody(t, rec)["post"].(map[string]any)
	assert.Contains(t, post["content"], "# First")
	assert.Contains(t, post["html"], "<h1")

	// Delete and verify it is gone everywhere.
	rec = doRequest(t, srv, http.MethodDelete, "/api/admin/posts/first-post", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/admin/posts/first-post", testAdminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePostDerivesSlug(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, map[string]any{
		"title":   "Notes on Café Culture",
		"content": "body",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decodeBody(t, rec)["post"].(map[string]any)
	assert.Equal(t, "notes-on-cafe-culture", post["slug"])
}

func TestCreatePostValidation(t *testing.T) {
	_, srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"slug": "x", "content": "body"}},
		{"bad slug", map[string]any{"slug": "Not A Slug", "title": "x", "content": "body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	_, srv := newTestServer(t)

	body := map[string]any{"slug": "taken", "title": "Taken", "content": "body"}
	rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePostRename(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, map[string]any{
		"slug": "old-slug", "title": "Renamed", "content": "body", "published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPut, "/api/admin/posts/old-slug", testAdminToken, map[string]any{
		"slug": "new-slug", "title": "Renamed", "content": "body", "published": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// The old slug resolves to nothing.
	rec = doRequest(t, srv, http.MethodGet, "/api/posts/old-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/posts/new-slug", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadingTimeScalesWithLength(t *testing.T) {
	_, srv := newTestServer(t)

	longBody := strings.TrimSpace(strings.Repeat("word ", 450))
	rec := doRequest(t, srv, http.MethodPost, "/api/admin/posts", testAdminToken, map[string]any{
		"slug": "long-read", "title": "Long Read", "content": longBody,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decodeBody(t, rec)["post"].(map[string]any)
	assert.Equal(t, float64(3), post["readingTime"])
}
