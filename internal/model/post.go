// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// BlogPost is a blog entry. The slug is the addressable identity: renaming it
// removes the old identity and creates a new one.
type BlogPost struct {
	Slug        string     `json:"slug" yaml:"-"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description,omitempty"`
	Category    string     `json:"category" yaml:"category,omitempty"`
	Tags        []string   `json:"tags" yaml:"tags,omitempty"`
	Published   bool       `json:"published" yaml:"published"`
	Date        time.Time  `json:"date" yaml:"date"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty" yaml:"scheduled,omitempty"`
	Image       string     `json:"image,omitempty" yaml:"image,omitempty"`
	Video       string     `json:"video,omitempty" yaml:"video,omitempty"`
	Body        string     `json:"body" yaml:"-"`
}

// IsPublished returns true if the post is visible to public readers.
func (p *BlogPost) IsPublished() bool {
	return p.Published
}

// HasTag reports whether the post carries the given tag.
func (p *BlogPost) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
