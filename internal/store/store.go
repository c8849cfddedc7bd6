// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the content repository: one uniform accessor per
// content domain, implemented twice — once against flat JSON/MDX files and
// once against a SQLite database. The backend is selected once at startup
// from configuration; call sites never branch on it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/emckay/folio/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrDuplicate is returned when a unique key (slug, email) already exists.
var ErrDuplicate = errors.New("store: duplicate key")

// PostStore manages blog posts, keyed by slug.
type PostStore interface {
	// All returns every post, drafts included, newest first.
	All(ctx context.Context) ([]model.BlogPost, error)
	// Published returns only published posts, newest first.
	Published(ctx context.Context) ([]model.BlogPost, error)
	BySlug(ctx context.Context, slug string) (model.BlogPost, error)
	// Create fails with ErrDuplicate if the slug is taken.
	Create(ctx context.Context, post model.BlogPost) error
	// Update replaces the post stored under slug. If post.Slug differs, the
	// old identity is removed and the new one created; the old slug then
	// resolves to nothing.
	Update(ctx context.Context, slug string, post model.BlogPost) error
	Delete(ctx context.Context, slug string) error
}

// PrepStore manages the prep-path tree. Parent-child linkage is by id field;
// deleting a parent cascades to its descendants.
type PrepStore interface {
	Paths(ctx context.Context) ([]model.PrepPath, error)
	Path(ctx context.Context, id string) (model.PrepPath, error)
	CreatePath(ctx context.Context, p model.PrepPath) error
	UpdatePath(ctx context.Context, p model.PrepPath) error
	DeletePath(ctx context.Context, id string) error

	Topic(ctx context.Context, id string) (model.PrepTopic, error)
	TopicsByPath(ctx context.Context, pathID string) ([]model.PrepTopic, error)
	CreateTopic(ctx context.Context, t model.PrepTopic) error
	UpdateTopic(ctx context.Context, t model.PrepTopic) error
	DeleteTopic(ctx context.Context, id string) error

	Question(ctx context.Context, id string) (model.PrepQuestion, error)
	QuestionsByTopic(ctx context.Context, topicID string) ([]model.PrepQuestion, error)
	CreateQuestion(ctx context.Context, q model.PrepQuestion) error
	UpdateQuestion(ctx context.Context, q model.PrepQuestion) error
	DeleteQuestion(ctx context.Context, id string) error

	Resource(ctx context.Context, id string) (model.PrepResource, error)
	ResourcesByParent(ctx context.Context, parentType, parentID string) ([]model.PrepResource, error)
	CreateResource(ctx context.Context, r model.PrepResource) error
	UpdateResource(ctx context.Context, r model.PrepResource) error
	DeleteResource(ctx context.Context, id string) error
}

// MomentStore manages life-moment gallery entries.
type MomentStore interface {
	All(ctx context.Context) ([]model.LifeMoment, error)
	ByID(ctx context.Context, id string) (model.LifeMoment, error)
	Create(ctx context.Context, m model.LifeMoment) error
	Update(ctx context.Context, m model.LifeMoment) error
	Delete(ctx context.Context, id string) error
}

// EventStore manages calendar events. Range with zero times returns all.
type EventStore interface {
	Range(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error)
	ByID(ctx context.Context, id string) (model.CalendarEvent, error)
	Create(ctx context.Context, e model.CalendarEvent) error
	Update(ctx context.Context, e model.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}

// JournalStore manages journal entries. Range with zero times returns all.
type JournalStore interface {
	Range(ctx context.Context, start, end time.Time) ([]model.JournalEntry, error)
	ByID(ctx context.Context, id string) (model.JournalEntry, error)
	Create(ctx context.Context, j model.JournalEntry) error
	Update(ctx context.Context, j model.JournalEntry) error
	Delete(ctx context.Context, id string) error
}

// FinanceStore manages finance transactions. Range with zero times returns all.
type FinanceStore interface {
	Range(ctx context.Context, start, end time.Time) ([]model.FinanceTransaction, error)
	ByID(ctx context.Context, id string) (model.FinanceTransaction, error)
	Create(ctx context.Context, t model.FinanceTransaction) error
	Update(ctx context.Context, t model.FinanceTransaction) error
	Delete(ctx context.Context, id string) error
}

// NoteStore manages important items / notes.
type NoteStore interface {
	All(ctx context.Context) ([]model.Note, error)
	ByID(ctx context.Context, id string) (model.Note, error)
	Create(ctx context.Context, n model.Note) error
	Update(ctx context.Context, n model.Note) error
	Delete(ctx context.Context, id string) error
}

// SubscriberStore manages newsletter subscribers, keyed by email.
type SubscriberStore interface {
	All(ctx context.Context) ([]model.NewsletterSubscriber, error)
	// Add fails with ErrDuplicate when the email is already subscribed.
	Add(ctx context.Context, s model.NewsletterSubscriber) error
}

// SocialStore persists the normalized snapshots of the social mirror.
type SocialStore interface {
	// Snapshot returns the cached posts for a platform, newest first.
	// An empty cache is an empty slice, not ErrNotFound.
	Snapshot(ctx context.Context, platform string) ([]model.SocialPost, error)
	// Upsert replaces or inserts posts by external id.
	Upsert(ctx context.Context, platform string, posts []model.SocialPost) error
}

// ContentStore manages single JSON documents keyed by page type, replaced
// wholesale on save.
type ContentStore interface {
	Get(ctx context.Context, key string) (model.PageContent, error)
	Set(ctx context.Context, key string, data json.RawMessage) (model.PageContent, error)
}

// Store aggregates every content-domain accessor behind one handle.
type Store struct {
	Posts       PostStore
	Prep        PrepStore
	Moments     MomentStore
	Events      EventStore
	Journal     JournalStore
	Finance     FinanceStore
	Notes       NoteStore
	Subscribers SubscriberStore
	Social      SocialStore
	Content     ContentStore

	closeFn func() error
}

// Close releases backend resources (the SQLite connection; a no-op for the
// file backend).
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}
