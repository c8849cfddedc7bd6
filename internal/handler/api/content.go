// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emckay/folio/internal/model"
)

const maxContentBody = 1 << 20 // page blobs are small; 1MB is generous

// GetPageContent handles GET /api/content/{key}: the JSON blob backing one
// public page.
func (h *Handler) GetPageContent(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !model.IsValidContentKey(key) {
		WriteNotFound(w, "unknown content key")
		return
	}
	content, err := h.store.Content.Get(r.Context(), key)
	if err != nil {
		h.writeStoreError(w, err, "page content")
		return
	}
	WriteSuccess(w, Envelope{"content": content})
}

// PutPageContent handles PUT /api/admin/content/{key}. The body is the whole
// document; partial updates are not supported.
func (h *Handler) PutPageContent(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !model.IsValidContentKey(key) {
		WriteNotFound(w, "unknown content key")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxContentBody))
	if err != nil {
		WriteBadRequest(w, "reading request body: "+err.Error())
		return
	}
	if !json.Valid(body) {
		WriteBadRequest(w, "body must be valid JSON")
		return
	}

	content, err := h.store.Content.Set(r.Context(), key, json.RawMessage(body))
	if err != nil {
		h.writeStoreError(w, err, "page content")
		return
	}
	WriteSuccess(w, Envelope{"content": content})
}
