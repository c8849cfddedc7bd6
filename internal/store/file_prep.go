// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/emckay/folio/internal/model"
)

// prepDoc is the on-disk shape of the whole prep tree: one JSON document
// holding all four node types, linked by id fields.
type prepDoc struct {
	Paths     []model.PrepPath     `json:"paths"`
	Topics    []model.PrepTopic    `json:"topics"`
	Questions []model.PrepQuestion `json:"questions"`
	Resources []model.PrepResource `json:"resources"`
}

// filePrepStore keeps the prep tree in a single JSON document. Every mutation
// loads, edits and atomically rewrites the document under one mutex, which
// also makes cascade deletes a single write.
type filePrepStore struct {
	path string
	mu   sync.Mutex
}

func newFilePrepStore(path string) *filePrepStore {
	return &filePrepStore{path: path}
}

func (s *filePrepStore) load() (prepDoc, error) {
	var doc prepDoc
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("reading %s: %w", filepath.Base(s.path), err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decoding %s: %w", filepath.Base(s.path), err)
	}
	return doc, nil
}

func (s *filePrepStore) save(doc prepDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(s.path), err)
	}
	return atomicWrite(s.path, data)
}

// mutate runs fn against the loaded document and saves the result.
func (s *filePrepStore) mutate(fn func(*prepDoc) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *filePrepStore) Paths(_ context.Context) ([]model.PrepPath, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	paths := doc.Paths
	sort.Slice(paths, func(i, j int) bool { return paths[i].Position < paths[j].Position })
	return paths, nil
}

func (s *filePrepStore) Path(_ context.Context, id string) (model.PrepPath, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return model.PrepPath{}, err
	}
	for _, p := range doc.Paths {
		if p.ID == id {
			return p, nil
		}
	}
	return model.PrepPath{}, ErrNotFound
}

func (s *filePrepStore) CreatePath(_ context.Context, p model.PrepPath) error {
	return s.mutate(func(doc *prepDoc) error {
		for i := range doc.Paths {
			if doc.Paths[i].ID == p.ID {
				return ErrDuplicate
			}
		}
		doc.Paths = append(doc.Paths, p)
		return nil
	})
}

func (s *filePrepStore) UpdatePath(_ context.Context, p model.PrepPath) error {
	return s.mutate(func(doc *prepDoc) error {
		for i := range doc.Paths {
			if doc.Paths[i].ID == p.ID {
				doc.Paths[i] = p
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeletePath removes the path and cascades to its topics, their questions,
// and every resource attached to the path or its topics.
func (s *filePrepStore) DeletePath(_ context.Context, id string) error {
	return s.mutate(func(doc *prepDoc) error {
		found := false
		paths := doc.Paths[:0]
		for _, p := range doc.Paths {
			if p.ID == id {
				found = true
				continue
			}
			paths = append(paths, p)
		}
		if !found {
			return ErrNotFound
		}
		doc.Paths = paths

		topicIDs := make(map[string]bool)
		topics := doc.Topics[:0]
		for _, t := range doc.Topics {
			if t.PathID == id {
				topicIDs[t.ID] = true
				continue
			}
			topics = append(topics, t)
		}
		doc.Topics = topics

		questions := doc.Questions[:0]
		for _, q := range doc.Questions {
			if !topicIDs[q.TopicID] {
				questions = append(questions, q)
			}
		}
		doc.Questions = questions

		resources := doc.Resources[:0]
		for _, r := range doc.Resources {
			if r.ParentType == model.ResourceParentPath && r.ParentID == id {
				continue
			}
			if r.ParentType == model.ResourceParentTopic && topicIDs[r.ParentID] {
				continue
			}
			resources = append(resources, r)
		}
		doc.Resources = resources
		return nil
	})
}

func (s *filePrepStore) Topic(_ context.Context, id string) (model.PrepTopic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return model.PrepTopic{}, err
	}
	for _, t := range doc.Topics {
		if t.ID == id {
			return t, nil
		}
	}
	return model.PrepTopic{}, ErrNotFound
}

func (s *filePrepStore) TopicsByPath(_ context.Context, pathID string) ([]model.PrepTopic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	var topics []model.PrepTopic
	for _, t := range doc.Topics {
		if t.PathID == pathID {
			topics = append(topics, t)
		}
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Position < topics[j].Position })
	return topics, nil
}

func (s *filePrepStore) CreateTopic(_ context.Context, t model.PrepTopic) error {
	return s.mutate(func(doc *prepDoc) error {
		if !pathExists(doc, t.PathID) {
			return fmt.Errorf("path %s: %w", t.PathID, ErrNotFound)
		}
		for i := range doc.Topics {
			if doc.Topics[i].ID == t.ID {
				return ErrDuplicate
			}
		}
		doc.Topics = append(doc.Topics, t)
		return nil
	})
}

func (s *filePrepStore) UpdateTopic(_ context.Context, t model.PrepTopic) error {
	return s.mutate(func(doc *prepDoc) error {
		for i := range doc.Topics {
			if doc.Topics[i].ID == t.ID {
				doc.Topics[i] = t
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeleteTopic cascades to the topic's questions and resources.
func (s *filePrepStore) DeleteTopic(_ context.Context, id string) error {
	return s.mutate(func(doc *prepDoc) error {
		found := false
		topics := doc.Topics[:0]
		for _, t := range doc.Topics {
			if t.ID == id {
				found = true
				continue
			}
			topics = append(topics, t)
		}
		if !found {
			return ErrNotFound
		}
		doc.Topics = topics

		questions := doc.Questions[:0]
		for _, q := range doc.Questions {
			if q.TopicID != id {
				questions = append(questions, q)
			}
		}
		doc.Questions = questions

		resources := doc.Resources[:0]
		for _, r := range doc.Resources {
			if !(r.ParentType == model.ResourceParentTopic && r.ParentID == id) {
				resources = append(resources, r)
			}
		}
		doc.Resources = resources
		return nil
	})
}

func (s *filePrepStore) Question(_ context.Context, id string) (model.PrepQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return model.PrepQuestion{}, err
	}
	for _, q := range doc.Questions {
		if q.ID == id {
			return q, nil
		}
	}
	return model.PrepQuestion{}, ErrNotFound
}

func (s *filePrepStore) QuestionsByTopic(_ context.Context, topicID string) ([]model.PrepQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	var questions []model.PrepQuestion
	for _, q := range doc.Questions {
		if q.TopicID == topicID {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].Position < questions[j].Position })
	return questions, nil
}

func (s *filePrepStore) CreateQuestion(_ context.Context, q model.PrepQuestion) error {
	return s.mutate(func(doc *prepDoc) error {
		if !topicExists(doc, q.TopicID) {
			return fmt.Errorf("topic %s: %w", q.TopicID, ErrNotFound)
		}
		for i := range doc.Questions {
			if doc.Questions[i].ID == q.ID {
				return ErrDuplicate
			}
		}
		doc.Questions = append(doc.Questions, q)
		return nil
	})
}

func (s *filePrepStore) UpdateQuestion(_ context.Context, q model.PrepQuestion) error {
	return s.mutate(func(doc *prepDoc) error {
		for i := range doc.Questions {
			if doc.Questions[i].ID == q.ID {
				doc.Questions[i] = q
				return nil
			}
		}
		return ErrNotFound
	})
}

func (s *filePrepStore) DeleteQuestion(_ context.Context, id string) error {
	return s.mutate(func(doc *prepDoc) error {
		for i := range doc.Questions {
			if doc.Questions[i].ID == id {
				doc.Questions = append(doc.Questions[:i], doc.Questions[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func (s *filePrepStore) Resource(_ context.Context, id string) (model.PrepResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return model.PrepResource{}, err
	}
	for _, r := range doc.Resources {
		if r.ID == id {
			return r, nil
		}
	}
	return model.PrepResource{}, ErrNotFound
}

func (s *filePrepStore) ResourcesByParent(_ context.Context, parentType, parentID string) ([]model.PrepResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	var resources []model.PrepResource
	for _, r := range doc.Resources {
		if r.ParentType == parentType && r.ParentID == parentID {
			resources = append(resources, r)
		}
	}
	return resources, nil
}

func (s *filePrepStore) CreateResource(_ context.Context, r model.PrepResource) error {
	return s.mutate(func(doc *prepDoc) error {
		switch r.ParentType {
		case model.ResourceParentPath:
			if !pathExists(doc, r.ParentID) {
				return fmt.Errorf("path %s: %w", r.ParentID, ErrNotFound)
			}
		case model.ResourceParentTopic:
			if !topicExists(doc, r.ParentID) {
				return fmt.Errorf("topic %s: %w", r.ParentID, ErrNotFound)
			}
		default:
			return fmt.Errorf("invalid resource parent type %q", r.ParentType)
		}
		for i := range doc.Resources {
			if doc.Resources[i].ID == r.ID {
				return ErrDuplicate
			}
		}
		doc.Resources = append(doc.Resources, r)
		return nil
	})
}

func (s *filePrepStore) UpdateResource(_ context.Context, r model.PrepResource) error {
	return s.mutate(func(doc *prepDoc) error {
		for i := range doc.Resources {
			if doc.Resources[i].ID == r.ID {
				doc.Resources[i] = r
				return nil
			}
		}
		return ErrNotFound
	})
}

func (s *filePrepStore) DeleteResource(_ context.Context, id string) error {
	return s.mutate(func(doc *prepDoc) error {
		for i := range doc.Resources {
			if doc.Resources[i].ID == id {
				doc.Resources = append(doc.Resources[:i], doc.Resources[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func pathExists(doc *prepDoc, id string) bool {
	for i := range doc.Paths {
		if doc.Paths[i].ID == id {
			return true
		}
	}
	return false
}

func topicExists(doc *prepDoc, id string) bool {
	for i := range doc.Topics {
		if doc.Topics[i].ID == id {
			return true
		}
	}
	return false
}
