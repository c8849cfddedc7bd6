// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/emckay/folio/internal/model"
)

// --- newsletter subscribers ---

type fileSubscriberStore struct {
	col *jsonCollection[model.NewsletterSubscriber]
}

func newFileSubscriberStore(path string) *fileSubscriberStore {
	return &fileSubscriberStore{
		col: newJSONCollection(path, func(s *model.NewsletterSubscriber) string {
			return strings.ToLower(s.Email)
		}),
	}
}

func (s *fileSubscriberStore) All(_ context.Context) ([]model.NewsletterSubscriber, error) {
	return s.col.all()
}

func (s *fileSubscriberStore) Add(_ context.Context, sub model.NewsletterSubscriber) error {
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	return s.col.insert(sub)
}

// --- social snapshots ---

type fileSocialStore struct {
	col *jsonCollection[model.SocialPost]
}

func newFileSocialStore(path string) *fileSocialStore {
	return &fileSocialStore{
		col: newJSONCollection(path, func(p *model.SocialPost) string {
			return p.Platform + ":" + p.ExternalID
		}),
	}
}

func (s *fileSocialStore) Snapshot(_ context.Context, platform string) ([]model.SocialPost, error) {
	posts, err := s.col.all()
	if err != nil {
		return nil, err
	}
	matched := posts[:0]
	for _, p := range posts {
		if p.Platform == platform {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PublishedAt.After(matched[j].PublishedAt)
	})
	return matched, nil
}

func (s *fileSocialStore) Upsert(_ context.Context, platform string, posts []model.SocialPost) error {
	return s.col.mutateAll(func(existing []model.SocialPost) []model.SocialPost {
		byKey := make(map[string]int, len(existing))
		for i, p := range existing {
			byKey[p.Platform+":"+p.ExternalID] = i
		}
		for _, p := range posts {
			p.Platform = platform
			if i, ok := byKey[platform+":"+p.ExternalID]; ok {
				existing[i] = p
			} else {
				existing = append(existing, p)
			}
		}
		return existing
	})
}

// --- page content blobs ---

type fileContentStore struct {
	col *jsonCollection[model.PageContent]
}

func newFileContentStore(path string) *fileContentStore {
	return &fileContentStore{
		col: newJSONCollection(path, func(c *model.PageContent) string { return c.Key }),
	}
}

func (s *fileContentStore) Get(_ context.Context, key string) (model.PageContent, error) {
	return s.col.get(key)
}

func (s *fileContentStore) Set(_ context.Context, key string, data json.RawMessage) (model.PageContent, error) {
	content := model.PageContent{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	err := s.col.upsert(key, content)
	if err != nil {
		return model.PageContent{}, err
	}
	return content, nil
}
