// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Resource parent types. A resource hangs off either a path or a topic.
const (
	ResourceParentPath  = "path"
	ResourceParentTopic = "topic"
)

// PrepPath is the root of the interview-study tree: a path owns topics and
// path-level resources. Topics and questions inherit visibility from the path;
// they carry no publish flag of their own.
type PrepPath struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Published   bool      `json:"published"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PrepTopic groups questions and resources under a path.
type PrepTopic struct {
	ID          string    `json:"id"`
	PathID      string    `json:"path_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PrepQuestion is a single study question under a topic.
type PrepQuestion struct {
	ID         string    `json:"id"`
	TopicID    string    `json:"topic_id"`
	Prompt     string    `json:"prompt"`
	Answer     string    `json:"answer,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PrepResource is an external reference (article, video, book) attached to a
// path or a topic, identified by ParentType/ParentID.
type PrepResource struct {
	ID         string    `json:"id"`
	ParentType string    `json:"parent_type"`
	ParentID   string    `json:"parent_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Kind       string    `json:"kind,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PrepTopicTree is a topic with its questions and resources resolved.
type PrepTopicTree struct {
	PrepTopic
	Questions []PrepQuestion `json:"questions"`
	Resources []PrepResource `json:"resources"`
}

// PrepPathTree is a fully resolved path: topics (each with questions and
// resources) plus path-level resources.
type PrepPathTree struct {
	PrepPath
	Topics    []PrepTopicTree `json:"topics"`
	Resources []PrepResource  `json:"resources"`
}
