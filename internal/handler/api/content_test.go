// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putContent(t *testing.T, srv http.Handler, key, raw string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/content/"+key, bytes.NewReader([]byte(raw)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestPageContentLifecycle(t *testing.T) {
	_, srv := newTestServer(t)

	// Nothing stored yet.
	rec := doRequest(t, srv, http.MethodGet, "/api/content/about", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = putContent(t, srv, "about", `{"headline":"Hi, I'm Evan","sections":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/content/about", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	content := decodeBody(t, rec)["content"].(map[string]any)
	data := content["data"].(map[string]any)
	assert.Equal(t, "Hi, I'm Evan", data["headline"])

	// Saving replaces the document wholesale.
	rec = putContent(t, srv, "about", `{"headline":"replaced"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/content/about", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["content"].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "replaced", data["headline"])
	assert.NotContains(t, data, "sections")
}

func TestPageContentValidation(t *testing.T) {
	_, srv := newTestServer(t)

	// Unknown keys 404 on both surfaces.
	rec := doRequest(t, srv, http.MethodGet, "/api/content/nonsense", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = putContent(t, srv, "nonsense", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed JSON is rejected.
	rec = putContent(t, srv, "skills", `{"broken":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
