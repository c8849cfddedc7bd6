// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/emckay/folio/internal/model"
	"github.com/emckay/folio/internal/store"
)

type subscribeRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Subscribe handles POST /api/subscribe. A duplicate email reports success:
// from the caller's side, the address is on the list either way.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		WriteBadRequest(w, "invalid email address")
		return
	}

	sub := model.NewsletterSubscriber{
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		Source:    req.Source,
		CreatedAt: time.Now().UTC(),
	}
	err := h.store.Subscribers.Add(r.Context(), sub)
	if err != nil && !errors.Is(err, store.ErrDuplicate) {
		h.writeStoreError(w, err, "subscriber")
		return
	}
	alreadySubscribed := errors.Is(err, store.ErrDuplicate)

	// Provider sync is best-effort: a provider outage must not lose the
	// signup, which is already stored locally.
	if h.newsletter != nil && !alreadySubscribed {
		if err := h.newsletter.Subscribe(r.Context(), email, sub.Name); err != nil {
			h.log.Warn("newsletter provider sync failed",
				"provider", h.newsletter.Name(), "error", err)
		}
	}

	WriteMessage(w, "subscribed")
}

// ListSubscribers handles GET /api/admin/subscribers.
func (h *Handler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.Subscribers.All(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "subscribers")
		return
	}
	if subs == nil {
		subs = []model.NewsletterSubscriber{}
	}
	WriteSuccess(w, Envelope{"subscribers": subs})
}
