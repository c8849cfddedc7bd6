// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/emckay/folio/internal/cache"
	"github.com/emckay/folio/internal/feed"
	"github.com/emckay/folio/internal/seo"
)

// RSS handles GET /rss.xml, cached until the next post mutation.
func (h *Handler) RSS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if body, err := h.cache.Get(ctx, cache.KeyRSS); err == nil {
		writeXML(w, "application/rss+xml; charset=utf-8", body)
		return
	}

	posts, err := h.store.Posts.Published(ctx)
	if err != nil {
		h.writeStoreError(w, err, "posts")
		return
	}
	body, err := feed.RenderRSS(feed.Options{
		SiteURL:     h.cfg.SiteURL,
		Title:       h.cfg.SiteName,
		Description: h.cfg.SiteName + " — blog",
	}, posts)
	if err != nil {
		h.log.Error("rss render failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.cache.Set(ctx, cache.KeyRSS, body, 0); err != nil {
		h.log.Warn("rss cache write failed", "error", err)
	}
	writeXML(w, "application/rss+xml; charset=utf-8", body)
}

// Sitemap handles GET /sitemap.xml, cached until the next post mutation.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if body, err := h.cache.Get(ctx, cache.KeySitemap); err == nil {
		writeXML(w, "application/xml; charset=utf-8", body)
		return
	}

	posts, err := h.store.Posts.Published(ctx)
	if err != nil {
		h.writeStoreError(w, err, "posts")
		return
	}
	paths, err := h.store.Prep.Paths(ctx)
	if err != nil {
		h.writeStoreError(w, err, "prep paths")
		return
	}

	b := seo.NewSitemapBuilder(h.cfg.SiteURL)
	b.AddStatic()
	b.AddPosts(posts)
	b.AddPrepPaths(paths)
	body, err := b.Build()
	if err != nil {
		h.log.Error("sitemap render failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.cache.Set(ctx, cache.KeySitemap, body, 0); err != nil {
		h.log.Warn("sitemap cache write failed", "error", err)
	}
	writeXML(w, "application/xml; charset=utf-8", body)
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	out := seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.cfg.SiteURL,
		DisallowAll: !h.cfg.IsProduction(),
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, Envelope{"status": "ok"})
}

func writeXML(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}
