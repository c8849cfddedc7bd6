// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emckay/folio/internal/model"
)

type sqlitePostStore struct {
	db *sql.DB
}

const postColumns = `slug, title, description, category, tags, published, date, updated_at, scheduled_at, image, video, body`

func scanPost(row interface{ Scan(...any) error }) (model.BlogPost, error) {
	var p model.BlogPost
	var tags string
	var published int
	var scheduled sql.NullTime
	err := row.Scan(&p.Slug, &p.Title, &p.Description, &p.Category, &tags,
		&published, &p.Date, &p.UpdatedAt, &scheduled, &p.Image, &p.Video, &p.Body)
	if err != nil {
		return p, err
	}
	p.Published = published != 0
	if scheduled.Valid {
		p.ScheduledAt = &scheduled.Time
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return p, fmt.Errorf("decoding tags for %s: %w", p.Slug, err)
	}
	return p, nil
}

func (s *sqlitePostStore) list(ctx context.Context, query string, args ...any) ([]model.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *sqlitePostStore) All(ctx context.Context) ([]model.BlogPost, error) {
	return s.list(ctx, `SELECT `+postColumns+` FROM posts ORDER BY date DESC`)
}

func (s *sqlitePostStore) Published(ctx context.Context) ([]model.BlogPost, error) {
	return s.list(ctx, `SELECT `+postColumns+` FROM posts WHERE published = 1 ORDER BY date DESC`)
}

func (s *sqlitePostStore) BySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BlogPost{}, ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("getting post %s: %w", slug, err)
	}
	return p, nil
}

func postArgs(p model.BlogPost) ([]any, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}
	published := 0
	if p.Published {
		published = 1
	}
	var scheduled sql.NullTime
	if p.ScheduledAt != nil {
		scheduled = sql.NullTime{Time: *p.ScheduledAt, Valid: true}
	}
	return []any{p.Slug, p.Title, p.Description, p.Category, string(tags),
		published, p.Date, p.UpdatedAt, scheduled, p.Image, p.Video, p.Body}, nil
}

func (s *sqlitePostStore) Create(ctx context.Context, p model.BlogPost) error {
	// Read-before-write existence check: the slug is a natural key and
	// collisions surface as a validation error, not a driver error.
	if _, err := s.BySlug(ctx, p.Slug); err == nil {
		return ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	args, err := postArgs(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("creating post %s: %w", p.Slug, err)
	}
	return nil
}

func (s *sqlitePostStore) Update(ctx context.Context, slug string, p model.BlogPost) error {
	if _, err := s.BySlug(ctx, slug); err != nil {
		return err
	}

	// Slug change is delete-then-insert: the post gets a fresh row under the
	// new natural key and the old slug stops resolving.
	if p.Slug != slug {
		if _, err := s.BySlug(ctx, p.Slug); err == nil {
			return ErrDuplicate
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("starting rename of %s: %w", slug, err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug); err != nil {
			return fmt.Errorf("removing old post %s: %w", slug, err)
		}
		args, err := postArgs(p)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...); err != nil {
			return fmt.Errorf("inserting renamed post %s: %w", p.Slug, err)
		}
		return tx.Commit()
	}

	args, err := postArgs(p)
	if err != nil {
		return err
	}
	// Shift slug to the WHERE clause position.
	args = append(args[1:], slug)
	_, err = s.db.ExecContext(ctx, `UPDATE posts SET
		title = ?, description = ?, category = ?, tags = ?, published = ?,
		date = ?, updated_at = ?, scheduled_at = ?, image = ?, video = ?, body = ?
		WHERE slug = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating post %s: %w", slug, err)
	}
	return nil
}

func (s *sqlitePostStore) Delete(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("deleting post %s: %w", slug, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
