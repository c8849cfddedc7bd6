// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/emckay/folio/internal/cache"
	"github.com/emckay/folio/internal/mdx"
	"github.com/emckay/folio/internal/model"
	"github.com/emckay/folio/internal/util"
)

// postRequest is the admin payload for creating or updating a post.
type postRequest struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	Date        *time.Time `json:"date"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Image       string     `json:"image"`
	Video       string     `json:"video"`
	Content     string     `json:"content"`
}

// postResponse is a post as the API reports it. Reading time is derived at
// read time, never stored.
type postResponse struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	Date        time.Time  `json:"date"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Image       string     `json:"image,omitempty"`
	Video       string     `json:"video,omitempty"`
	Content     string     `json:"content,omitempty"`
	HTML        string     `json:"html,omitempty"`
	ReadingTime int        `json:"readingTime"`
}

// toPostResponse builds the API shape. withBody includes the raw content and
// its rendered HTML; listings omit both to stay light.
func toPostResponse(p model.BlogPost, withBody bool) postResponse {
	resp := postResponse{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Tags:        p.Tags,
		Published:   p.Published,
		Date:        p.Date,
		UpdatedAt:   p.UpdatedAt,
		ScheduledAt: p.ScheduledAt,
		Image:       p.Image,
		Video:       p.Video,
		ReadingTime: util.ReadingTime(p.Body),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if withBody {
		resp.Content = p.Body
		if html, err := mdx.Render(p.Body); err == nil {
			resp.HTML = html
		}
	}
	return resp
}

func toPostResponses(posts []model.BlogPost) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p, false))
	}
	return out
}

// ListPublishedPosts handles GET /api/posts, cached until the next post
// mutation.
func (h *Handler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if body, err := h.cache.Get(ctx, cache.KeyPosts); err == nil {
		writeJSONBytes(w, body)
		return
	}

	posts, err := h.store.Posts.Published(ctx)
	if err != nil {
		h.writeStoreError(w, err, "posts")
		return
	}
	body, err := json.Marshal(Envelope{"success": true, "posts": toPostResponses(posts)})
	if err != nil {
		h.log.Error("encoding posts failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.cache.Set(ctx, cache.KeyPosts, body, 0); err != nil {
		h.log.Warn("posts cache write failed", "error", err)
	}
	writeJSONBytes(w, body)
}

func writeJSONBytes(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// GetPublishedPost handles GET /api/posts/{slug}. Drafts are invisible here;
// requesting one 404s exactly like a missing slug.
func (h *Handler) GetPublishedPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.store.Posts.BySlug(r.Context(), slug)
	if err != nil {
		h.writeStoreError(w, err, "post")
		return
	}
	if !post.IsPublished() {
		WriteNotFound(w, "post not found")
		return
	}
	WriteSuccess(w, Envelope{"post": toPostResponse(post, true)})
}

// ListAllPosts handles GET /api/admin/posts, drafts included.
func (h *Handler) ListAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.Posts.All(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "posts")
		return
	}
	WriteSuccess(w, Envelope{"posts": toPostResponses(posts)})
}

// GetPost handles GET /api/admin/posts/{slug}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.store.Posts.BySlug(r.Context(), slug)
	if err != nil {
		h.writeStoreError(w, err, "post")
		return
	}
	WriteSuccess(w, Envelope{"post": toPostResponse(post, true)})
}

// CreatePost handles POST /api/admin/posts. A missing slug is derived from
// the title.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(slug) {
		WriteBadRequest(w, "invalid slug")
		return
	}

	now := time.Now().UTC()
	post := postFromRequest(req, slug, now)
	if err := h.store.Posts.Create(r.Context(), post); err != nil {
		h.writeStoreError(w, err, "post")
		return
	}
	h.invalidateContent(r.Context())
	WriteCreated(w, Envelope{"post": toPostResponse(post, true)})
}

// UpdatePost handles PUT /api/admin/posts/{slug}. A payload slug that differs
// from the URL renames the post: the old slug stops resolving.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	existing, err := h.store.Posts.BySlug(r.Context(), slug)
	if err != nil {
		h.writeStoreError(w, err, "post")
		return
	}

	newSlug := req.Slug
	if newSlug == "" {
		newSlug = slug
	}
	if !util.IsValidSlug(newSlug) {
		WriteBadRequest(w, "invalid slug")
		return
	}

	post := postFromRequest(req, newSlug, time.Now().UTC())
	if req.Date == nil {
		post.Date = existing.Date
	}
	if err := h.store.Posts.Update(r.Context(), slug, post); err != nil {
		h.writeStoreError(w, err, "post")
		return
	}
	h.invalidateContent(r.Context())
	WriteSuccess(w, Envelope{"post": toPostResponse(post, true)})
}

// DeletePost handles DELETE /api/admin/posts/{slug}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := h.store.Posts.Delete(r.Context(), slug); err != nil {
		h.writeStoreError(w, err, "post")
		return
	}
	h.invalidateContent(r.Context())
	WriteMessage(w, "post deleted")
}

func postFromRequest(req postRequest, slug string, now time.Time) model.BlogPost {
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	return model.BlogPost{
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Published:   req.Published,
		Date:        date,
		UpdatedAt:   now,
		ScheduledAt: req.ScheduledAt,
		Image:       req.Image,
		Video:       req.Video,
		Body:        req.Content,
	}
}

// invalidateContent drops cached artifacts derived from posts after any
// mutation.
func (h *Handler) invalidateContent(ctx context.Context) {
	for _, key := range []string{cache.KeyRSS, cache.KeySitemap, cache.KeyPosts} {
		if err := h.cache.Delete(ctx, key); err != nil {
			h.log.Warn("cache invalidation failed", "key", key, "error", err)
		}
	}
}
