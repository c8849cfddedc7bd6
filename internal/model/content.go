// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// Page content keys. Each key addresses one JSON document that is replaced
// wholesale on save.
const (
	ContentHome       = "home"
	ContentAbout      = "about"
	ContentSkills     = "skills"
	ContentHire       = "hire"
	ContentExperience = "experience"
)

// PageContent is a single JSON document keyed by page type.
type PageContent struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsValidContentKey checks a page-content key against the known set.
func IsValidContentKey(key string) bool {
	switch key {
	case ContentHome, ContentAbout, ContentSkills, ContentHire, ContentExperience:
		return true
	default:
		return false
	}
}
