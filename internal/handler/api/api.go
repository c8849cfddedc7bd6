// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API handlers for the site: public read
// endpoints plus the token-guarded admin CRUD surface.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/emckay/folio/internal/assist"
	"github.com/emckay/folio/internal/cache"
	"github.com/emckay/folio/internal/config"
	"github.com/emckay/folio/internal/media"
	"github.com/emckay/folio/internal/newsletter"
	"github.com/emckay/folio/internal/social"
	"github.com/emckay/folio/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	cfg        *config.Config
	store      *store.Store
	cache      cache.Cache
	mirror     *social.Mirror
	newsletter newsletter.Provider
	assist     *assist.Service
	uploads    *media.Store
	log        *slog.Logger
}

// NewHandler creates the API handler with its dependencies.
func NewHandler(cfg *config.Config, s *store.Store, c cache.Cache, mirror *social.Mirror,
	nl newsletter.Provider, as *assist.Service, uploads *media.Store, log *slog.Logger) *Handler {
	return &Handler{
		cfg:        cfg,
		store:      s,
		cache:      c,
		mirror:     mirror,
		newsletter: nl,
		assist:     as,
		uploads:    uploads,
		log:        log,
	}
}

// Envelope is the response wrapper: success flag, optional message, and any
// payload fields merged in at the top level.
type Envelope map[string]any

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 envelope with the given payload fields.
func WriteSuccess(w http.ResponseWriter, payload Envelope) {
	writeEnvelope(w, http.StatusOK, payload)
}

// WriteCreated writes a 201 envelope with the given payload fields.
func WriteCreated(w http.ResponseWriter, payload Envelope) {
	writeEnvelope(w, http.StatusCreated, payload)
}

func writeEnvelope(w http.ResponseWriter, statusCode int, payload Envelope) {
	body := Envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	WriteJSON(w, statusCode, body)
}

// WriteMessage writes a 200 envelope carrying only a message.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Envelope{"success": true, "message": message})
}

// WriteError writes a failure envelope with a human-readable message.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{"success": false, "message": message})
}

// WriteBadRequest writes a 400 response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// writeStoreError maps repository errors onto API statuses: ErrNotFound is a
// 404, ErrDuplicate a 400, anything else a logged 500 with a generic message.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, what+" not found")
	case errors.Is(err, store.ErrDuplicate):
		WriteBadRequest(w, what+" already exists")
	default:
		h.log.Error("store operation failed", "what", what, "error", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a request body, rejecting unknown fields so typos in
// admin payloads surface as 400s instead of silently dropped data.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
