// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPath(t *testing.T, srv http.Handler, title string, published bool) string {
	t.Helper()
	rec := doRequest(t, srv, http.MethodPost, "/api/admin/prep", testAdminToken, map[string]any{
		"title":     title,
		"published": published,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody(t, rec)["path"].(map[string]any)["id"].(string)
}

func TestPrepPublicVisibility(t *testing.T) {
	_, srv := newTestServer(t)

	draftID := createPath(t, srv, "Draft Path", false)
	liveID := createPath(t, srv, "Live Path", true)

	// Public listing shows only published paths.
	rec := doRequest(t, srv, http.MethodGet, "/api/prep", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	paths := decodeBody(t, rec)["paths"].([]any)
	require.Len(t, paths, 1)
	assert.Equal(t, "Live Path", paths[0].(map[string]any)["title"])

	// An unpublished tree 404s publicly but loads for the admin.
	rec = doRequest(t, srv, http.MethodGet, "/api/prep/"+draftID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/admin/prep/"+draftID, testAdminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/prep/"+liveID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPrepTreeAssembly(t *testing.T) {
	_, srv := newTestServer(t)

	pathID := createPath(t, srv, "Systems Design", true)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/prep/topics", testAdminToken, map[string]any{
		"path_id": pathID,
		"title":   "Caching",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	topicID := decodeBody(t, rec)["topic"].(map[string]any)["id"].(string)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/prep/questions", testAdminToken, map[string]any{
		"topic_id": topicID,
		"prompt":   "When would you pick write-through over write-back?",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/prep/resources", testAdminToken, map[string]any{
		"parent_type": "topic",
		"parent_id":   topicID,
		"title":       "Caching at scale",
		"url":         "https://example.com/caching",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/prep/resources", testAdminToken, map[string]any{
		"parent_type": "path",
		"parent_id":   pathID,
		"title":       "The big book",
		"url":         "https://example.com/book",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// The public tree resolves topics, questions and resources at each level.
	rec = doRequest(t, srv, http.MethodGet, "/api/prep/"+pathID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tree := decodeBody(t, rec)["path"].(map[string]any)

	resources := tree["resources"].([]any)
	require.Len(t, resources, 1)
	assert.Equal(t, "The big book", resources[0].(map[string]any)["title"])

	topics := tree["topics"].([]any)
	require.Len(t, topics, 1)
	topic := topics[0].(map[string]any)
	assert.Equal(t, "Caching", topic["title"])
	assert.Len(t, topic["questions"].([]any), 1)
	assert.Len(t, topic["resources"].([]any), 1)
}

func TestPrepParentValidation(t *testing.T) {
	_, srv := newTestServer(t)

	// A topic needs an existing parent path.
	rec := doRequest(t, srv, http.MethodPost, "/api/admin/prep/topics", testAdminToken, map[string]any{
		"path_id": "no-such-path",
		"title":   "Orphan",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Resources only hang off paths or topics.
	rec = doRequest(t, srv, http.MethodPost, "/api/admin/prep/resources", testAdminToken, map[string]any{
		"parent_type": "question",
		"parent_id":   "whatever",
		"title":       "Bad parent",
		"url":         "https://example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPrepDeleteCascades(t *testing.T) {
	_, srv := newTestServer(t)

	pathID := createPath(t, srv, "Doomed", true)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/prep/topics", testAdminToken, map[string]any{
		"path_id": pathID,
		"title":   "Doomed Topic",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	topicID := decodeBody(t, rec)["topic"].(map[string]any)["id"].(string)

	rec = doRequest(t, srv, http.MethodDelete, "/api/admin/prep/"+pathID, testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodPut, "/api/admin/prep/topics/"+topicID, testAdminToken, map[string]any{
		"path_id": pathID,
		"title":   "Still here?",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
