// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/emckay/folio/internal/model"
)

// GetSocialFeed handles GET /api/social/{platform}?limit=. The response flags
// whether the data came from a fresh cache hit or a stale fallback, so the
// frontend can annotate it.
func (h *Handler) GetSocialFeed(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	if platform != model.PlatformYouTube && platform != model.PlatformInstagram {
		WriteNotFound(w, "unknown platform")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	res, err := h.mirror.Fetch(r.Context(), platform, limit, false)
	if err != nil {
		h.writeStoreError(w, err, "social feed")
		return
	}
	posts := res.Posts
	if posts == nil {
		posts = []model.SocialPost{}
	}
	WriteSuccess(w, Envelope{
		"posts":    posts,
		"cached":   res.Cached,
		"fallback": res.Fallback,
	})
}

// RefreshSocialFeed handles POST /api/admin/social/{platform}/refresh,
// forcing an upstream fetch regardless of snapshot age.
func (h *Handler) RefreshSocialFeed(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	if platform != model.PlatformYouTube && platform != model.PlatformInstagram {
		WriteNotFound(w, "unknown platform")
		return
	}
	if !h.mirror.Enabled(platform) {
		WriteBadRequest(w, "platform is not configured")
		return
	}

	res, err := h.mirror.Fetch(r.Context(), platform, 0, true)
	if err != nil {
		h.writeStoreError(w, err, "social feed")
		return
	}
	WriteSuccess(w, Envelope{
		"posts":    res.Posts,
		"fallback": res.Fallback,
	})
}
