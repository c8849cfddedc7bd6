// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/emckay/folio/internal/assist"
)

type assistRequest struct {
	Op    string `json:"op"`
	Input string `json:"input"`
}

// Assist handles POST /api/admin/assist: one stateless LLM completion per
// call. Returns 503 when no API key is configured.
func (h *Handler) Assist(w http.ResponseWriter, r *http.Request) {
	var req assistRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if !assist.IsValidOp(req.Op) {
		WriteBadRequest(w, "unknown assist operation")
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		WriteBadRequest(w, "input is required")
		return
	}

	output, err := h.assist.Run(r.Context(), req.Op, req.Input)
	if err != nil {
		if errors.Is(err, assist.ErrNotConfigured) {
			WriteError(w, http.StatusServiceUnavailable, "writing assistance is not configured")
			return
		}
		h.log.Error("assist operation failed", "op", req.Op, "error", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	WriteSuccess(w, Envelope{"op": req.Op, "output": output})
}
