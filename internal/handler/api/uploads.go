// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emckay/folio/internal/media"
)

// Upload handles POST /api/admin/uploads/{bucket} with a multipart "file"
// field. Wrong type is a 400, oversize a 413.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	maxSize := media.MaxSize(bucket)
	if maxSize == 0 {
		WriteNotFound(w, "unknown upload bucket")
		return
	}

	// Cap the whole request a little above the bucket limit so multipart
	// framing overhead does not reject a max-size file.
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+(1<<20))

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "file exceeds bucket size limit")
			return
		}
		WriteBadRequest(w, "multipart field \"file\" is required")
		return
	}
	defer func() { _ = file.Close() }()

	up, err := h.uploads.Save(bucket, header.Filename, file)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "file exceeds bucket size limit")
	case errors.Is(err, media.ErrBadType):
		WriteBadRequest(w, "file type not allowed in this bucket")
	case err != nil:
		h.log.Error("upload failed", "bucket", bucket, "error", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
	default:
		WriteCreated(w, Envelope{"upload": up})
	}
}

// DeleteUpload handles DELETE /api/admin/uploads/{bucket}/{name}.
func (h *Handler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	name := chi.URLParam(r, "name")
	if err := h.uploads.Delete(bucket, name); err != nil {
		if errors.Is(err, media.ErrUnknownBucket) {
			WriteNotFound(w, "unknown upload bucket")
			return
		}
		h.log.Error("upload delete failed", "bucket", bucket, "name", name, "error", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	WriteMessage(w, "upload deleted")
}
