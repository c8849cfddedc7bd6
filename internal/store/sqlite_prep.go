// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emckay/folio/internal/model"
)

type sqlitePrepStore struct {
	db *sql.DB
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// --- paths ---

func (s *sqlitePrepStore) Paths(ctx context.Context) ([]model.PrepPath, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, icon, published, position, created_at, updated_at
		 FROM prep_paths ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing prep paths: %w", err)
	}
	defer rows.Close()

	var paths []model.PrepPath
	for rows.Next() {
		var p model.PrepPath
		var published int
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Icon, &published,
			&p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning prep path: %w", err)
		}
		p.Published = published != 0
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (s *sqlitePrepStore) Path(ctx context.Context, id string) (model.PrepPath, error) {
	var p model.PrepPath
	var published int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, icon, published, position, created_at, updated_at
		 FROM prep_paths WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Icon, &published, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.PrepPath{}, notFoundOr(err, "getting prep path")
	}
	p.Published = published != 0
	return p, nil
}

func (s *sqlitePrepStore) CreatePath(ctx context.Context, p model.PrepPath) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prep_paths (id, title, description, icon, published, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Icon, boolToInt(p.Published), p.Position, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating prep path: %w", err)
	}
	return nil
}

func (s *sqlitePrepStore) UpdatePath(ctx context.Context, p model.PrepPath) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE prep_paths SET title = ?, description = ?, icon = ?, published = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Description, p.Icon, boolToInt(p.Published), p.Position, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("updating prep path: %w", err)
	}
	return requireAffected(res)
}

// DeletePath cascades to topics, questions and resources in one transaction.
// The schema declares ON DELETE CASCADE too, but the children are deleted
// explicitly here: foreign_keys is a per-connection pragma and must not be
// the only thing standing between a path delete and orphaned rows.
func (s *sqlitePrepStore) DeletePath(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("deleting prep path: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM prep_resources WHERE (parent_type = ? AND parent_id = ?)
		 OR (parent_type = ? AND parent_id IN (SELECT id FROM prep_topics WHERE path_id = ?))`,
		model.ResourceParentPath, id, model.ResourceParentTopic, id); err != nil {
		return fmt.Errorf("deleting prep path resources: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM prep_questions WHERE topic_id IN (SELECT id FROM prep_topics WHERE path_id = ?)`,
		id); err != nil {
		return fmt.Errorf("deleting prep path questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM prep_topics WHERE path_id = ?`, id); err != nil {
		return fmt.Errorf("deleting prep path topics: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM prep_paths WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting prep path: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

// --- topics ---

func (s *sqlitePrepStore) Topic(ctx context.Context, id string) (model.PrepTopic, error) {
	var t model.PrepTopic
	err := s.db.QueryRowContext(ctx,
		`SELECT id, path_id, title, description, position, created_at, updated_at
		 FROM prep_topics WHERE id = ?`, id).
		Scan(&t.ID, &t.PathID, &t.Title, &t.Description, &t.Position, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.PrepTopic{}, notFoundOr(err, "getting prep topic")
	}
	return t, nil
}

func (s *sqlitePrepStore) TopicsByPath(ctx context.Context, pathID string) ([]model.PrepTopic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path_id, title, description, position, created_at, updated_at
		 FROM prep_topics WHERE path_id = ? ORDER BY position, created_at`, pathID)
	if err != nil {
		return nil, fmt.Errorf("listing prep topics: %w", err)
	}
	defer rows.Close()

	var topics []model.PrepTopic
	for rows.Next() {
		var t model.PrepTopic
		if err := rows.Scan(&t.ID, &t.PathID, &t.Title, &t.Description, &t.Position,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning prep topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *sqlitePrepStore) CreateTopic(ctx context.Context, t model.PrepTopic) error {
	if _, err := s.Path(ctx, t.PathID); err != nil {
		return fmt.Errorf("path %s: %w", t.PathID, err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prep_topics (id, path_id, title, description, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.PathID, t.Title, t.Description, t.Position, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating prep topic: %w", err)
	}
	return nil
}

func (s *sqlitePrepStore) UpdateTopic(ctx context.Context, t model.PrepTopic) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE prep_topics SET title = ?, description = ?, position = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Description, t.Position, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("updating prep topic: %w", err)
	}
	return requireAffected(res)
}

func (s *sqlitePrepStore) DeleteTopic(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("deleting prep topic: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM prep_resources WHERE parent_type = ? AND parent_id = ?`,
		model.ResourceParentTopic, id); err != nil {
		return fmt.Errorf("deleting prep topic resources: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM prep_questions WHERE topic_id = ?`, id); err != nil {
		return fmt.Errorf("deleting prep topic questions: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM prep_topics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting prep topic: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

// --- questions ---

func (s *sqlitePrepStore) Question(ctx context.Context, id string) (model.PrepQuestion, error) {
	var q model.PrepQuestion
	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic_id, prompt, answer, difficulty, position, created_at, updated_at
		 FROM prep_questions WHERE id = ?`, id).
		Scan(&q.ID, &q.TopicID, &q.Prompt, &q.Answer, &q.Difficulty, &q.Position, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return model.PrepQuestion{}, notFoundOr(err, "getting prep question")
	}
	return q, nil
}

func (s *sqlitePrepStore) QuestionsByTopic(ctx context.Context, topicID string) ([]model.PrepQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic_id, prompt, answer, difficulty, position, created_at, updated_at
		 FROM prep_questions WHERE topic_id = ? ORDER BY position, created_at`, topicID)
	if err != nil {
		return nil, fmt.Errorf("listing prep questions: %w", err)
	}
	defer rows.Close()

	var questions []model.PrepQuestion
	for rows.Next() {
		var q model.PrepQuestion
		if err := rows.Scan(&q.ID, &q.TopicID, &q.Prompt, &q.Answer, &q.Difficulty,
			&q.Position, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning prep question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *sqlitePrepStore) CreateQuestion(ctx context.Context, q model.PrepQuestion) error {
	if _, err := s.Topic(ctx, q.TopicID); err != nil {
		return fmt.Errorf("topic %s: %w", q.TopicID, err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prep_questions (id, topic_id, prompt, answer, difficulty, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.TopicID, q.Prompt, q.Answer, q.Difficulty, q.Position, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating prep question: %w", err)
	}
	return nil
}

func (s *sqlitePrepStore) UpdateQuestion(ctx context.Context, q model.PrepQuestion) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE prep_questions SET prompt = ?, answer = ?, difficulty = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		q.Prompt, q.Answer, q.Difficulty, q.Position, q.UpdatedAt, q.ID)
	if err != nil {
		return fmt.Errorf("updating prep question: %w", err)
	}
	return requireAffected(res)
}

func (s *sqlitePrepStore) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prep_questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting prep question: %w", err)
	}
	return requireAffected(res)
}

// --- resources ---

func (s *sqlitePrepStore) Resource(ctx context.Context, id string) (model.PrepResource, error) {
	var r model.PrepResource
	err := s.db.QueryRowContext(ctx,
		`SELECT id, parent_type, parent_id, title, url, kind, created_at
		 FROM prep_resources WHERE id = ?`, id).
		Scan(&r.ID, &r.ParentType, &r.ParentID, &r.Title, &r.URL, &r.Kind, &r.CreatedAt)
	if err != nil {
		return model.PrepResource{}, notFoundOr(err, "getting prep resource")
	}
	return r, nil
}

func (s *sqlitePrepStore) ResourcesByParent(ctx context.Context, parentType, parentID string) ([]model.PrepResource, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, parent_type, parent_id, title, url, kind, created_at
		 FROM prep_resources WHERE parent_type = ? AND parent_id = ? ORDER BY created_at`,
		parentType, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing prep resources: %w", err)
	}
	defer rows.Close()

	var resources []model.PrepResource
	for rows.Next() {
		var r model.PrepResource
		if err := rows.Scan(&r.ID, &r.ParentType, &r.ParentID, &r.Title, &r.URL,
			&r.Kind, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning prep resource: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

func (s *sqlitePrepStore) CreateResource(ctx context.Context, r model.PrepResource) error {
	switch r.ParentType {
	case model.ResourceParentPath:
		if _, err := s.Path(ctx, r.ParentID); err != nil {
			return fmt.Errorf("path %s: %w", r.ParentID, err)
		}
	case model.ResourceParentTopic:
		if _, err := s.Topic(ctx, r.ParentID); err != nil {
			return fmt.Errorf("topic %s: %w", r.ParentID, err)
		}
	default:
		return fmt.Errorf("invalid resource parent type %q", r.ParentType)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prep_resources (id, parent_type, parent_id, title, url, kind, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ParentType, r.ParentID, r.Title, r.URL, r.Kind, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating prep resource: %w", err)
	}
	return nil
}

func (s *sqlitePrepStore) UpdateResource(ctx context.Context, r model.PrepResource) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE prep_resources SET title = ?, url = ?, kind = ? WHERE id = ?`,
		r.Title, r.URL, r.Kind, r.ID)
	if err != nil {
		return fmt.Errorf("updating prep resource: %w", err)
	}
	return requireAffected(res)
}

func (s *sqlitePrepStore) DeleteResource(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prep_resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting prep resource: %w", err)
	}
	return requireAffected(res)
}

// requireAffected converts a zero-row mutation into ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
