// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/emckay/folio/internal/model"
)

type momentRequest struct {
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	Image       string     `json:"image"`
	Video       string     `json:"video"`
}

// ListMoments handles GET /api/moments. The gallery is fully public; an
// optional ?type= filters by category.
func (h *Handler) ListMoments(w http.ResponseWriter, r *http.Request) {
	moments, err := h.store.Moments.All(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "moments")
		return
	}
	if filter := r.URL.Query().Get("type"); filter != "" {
		if !model.IsValidMomentType(filter) {
			WriteBadRequest(w, "invalid moment type")
			return
		}
		filtered := make([]model.LifeMoment, 0, len(moments))
		for _, m := range moments {
			if m.Type == filter {
				filtered = append(filtered, m)
			}
		}
		moments = filtered
	}
	if moments == nil {
		moments = []model.LifeMoment{}
	}
	WriteSuccess(w, Envelope{"moments": moments})
}

// GetMoment handles GET /api/moments/{id}.
func (h *Handler) GetMoment(w http.ResponseWriter, r *http.Request) {
	moment, err := h.store.Moments.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "moment")
		return
	}
	WriteSuccess(w, Envelope{"moment": moment})
}

// CreateMoment handles POST /api/admin/moments.
func (h *Handler) CreateMoment(w http.ResponseWriter, r *http.Request) {
	var req momentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}
	if !model.IsValidMomentType(req.Type) {
		WriteBadRequest(w, "invalid moment type")
		return
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	moment := model.LifeMoment{
		ID:          uuid.New().String(),
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Image:       req.Image,
		Video:       req.Video,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.Moments.Create(r.Context(), moment); err != nil {
		h.writeStoreError(w, err, "moment")
		return
	}
	WriteCreated(w, Envelope{"moment": moment})
}

// UpdateMoment handles PUT /api/admin/moments/{id}.
func (h *Handler) UpdateMoment(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Moments.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "moment")
		return
	}

	var req momentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}
	if !model.IsValidMomentType(req.Type) {
		WriteBadRequest(w, "invalid moment type")
		return
	}

	existing.Type = req.Type
	existing.Title = req.Title
	existing.Description = req.Description
	if req.Date != nil {
		existing.Date = *req.Date
	}
	existing.Location = req.Location
	existing.Image = req.Image
	existing.Video = req.Video
	existing.UpdatedAt = time.Now().UTC()
	if err := h.store.Moments.Update(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "moment")
		return
	}
	WriteSuccess(w, Envelope{"moment": existing})
}

// DeleteMoment handles DELETE /api/admin/moments/{id}.
func (h *Handler) DeleteMoment(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Moments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "moment")
		return
	}
	WriteMessage(w, "moment deleted")
}
