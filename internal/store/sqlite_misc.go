// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/emckay/folio/internal/model"
)

type sqliteSubscriberStore struct {
	db *sql.DB
}

func (s *sqliteSubscriberStore) All(ctx context.Context) ([]model.NewsletterSubscriber, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, name, source, created_at FROM subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	defer rows.Close()

	var subs []model.NewsletterSubscriber
	for rows.Next() {
		var sub model.NewsletterSubscriber
		if err := rows.Scan(&sub.Email, &sub.Name, &sub.Source, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *sqliteSubscriberStore) Add(ctx context.Context, sub model.NewsletterSubscriber) error {
	email := strings.ToLower(strings.TrimSpace(sub.Email))
	var existing string
	err := s.db.QueryRowContext(ctx, `SELECT email FROM subscribers WHERE email = ?`, email).Scan(&existing)
	if err == nil {
		return ErrDuplicate
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking subscriber: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO subscribers (email, name, source, created_at) VALUES (?, ?, ?, ?)`,
		email, sub.Name, sub.Source, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("adding subscriber: %w", err)
	}
	return nil
}

type sqliteSocialStore struct {
	db *sql.DB
}

func (s *sqliteSocialStore) Snapshot(ctx context.Context, platform string) ([]model.SocialPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, external_id, title, description, url, thumbnail, media_type, published_at, cached_at
		 FROM social_posts WHERE platform = ? ORDER BY published_at DESC`, platform)
	if err != nil {
		return nil, fmt.Errorf("reading social snapshot: %w", err)
	}
	defer rows.Close()

	var posts []model.SocialPost
	for rows.Next() {
		var p model.SocialPost
		if err := rows.Scan(&p.Platform, &p.ExternalID, &p.Title, &p.Description,
			&p.URL, &p.Thumbnail, &p.MediaType, &p.PublishedAt, &p.CachedAt); err != nil {
			return nil, fmt.Errorf("scanning social post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *sqliteSocialStore) Upsert(ctx context.Context, platform string, posts []model.SocialPost) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning social upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range posts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO social_posts (platform, external_id, title, description, url, thumbnail, media_type, published_at, cached_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(platform, external_id) DO UPDATE SET
			   title = excluded.title,
			   description = excluded.description,
			   url = excluded.url,
			   thumbnail = excluded.thumbnail,
			   media_type = excluded.media_type,
			   published_at = excluded.published_at,
			   cached_at = excluded.cached_at`,
			platform, p.ExternalID, p.Title, p.Description, p.URL, p.Thumbnail,
			p.MediaType, p.PublishedAt, p.CachedAt)
		if err != nil {
			return fmt.Errorf("upserting social post %s: %w", p.ExternalID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing social upsert: %w", err)
	}
	return nil
}

type sqliteContentStore struct {
	db *sql.DB
}

func (s *sqliteContentStore) Get(ctx context.Context, key string) (model.PageContent, error) {
	var c model.PageContent
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT key, data, updated_at FROM page_content WHERE key = ?`, key).
		Scan(&c.Key, &data, &c.UpdatedAt)
	if err != nil {
		return model.PageContent{}, notFoundOr(err, "getting page content")
	}
	c.Data = json.RawMessage(data)
	return c, nil
}

func (s *sqliteContentStore) Set(ctx context.Context, key string, data json.RawMessage) (model.PageContent, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_content (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, string(data), now)
	if err != nil {
		return model.PageContent{}, fmt.Errorf("saving page content: %w", err)
	}
	return model.PageContent{Key: key, Data: data, UpdatedAt: now}, nil
}
