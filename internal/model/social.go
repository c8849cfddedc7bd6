// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Social platforms
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
)

// SocialPost is the normalized shape of externally sourced content. ExternalID
// is the upstream id (YouTube video id, Instagram media id) and the upsert key.
// CachedAt stamps when the snapshot was taken; the mirror compares it against
// the staleness threshold.
type SocialPost struct {
	ExternalID  string    `json:"external_id"`
	Platform    string    `json:"platform"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	MediaType   string    `json:"media_type,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CachedAt    time.Time `json:"cached_at"`
}

// NewsletterSubscriber is keyed by email; duplicate inserts are tolerated at
// the API boundary.
type NewsletterSubscriber struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
