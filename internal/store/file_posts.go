// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/emckay/folio/internal/mdx"
	"github.com/emckay/folio/internal/model"
)

// filePostStore keeps one .mdx file per post under dir; the filename (minus
// extension) is the slug.
type filePostStore struct {
	dir string
	mu  sync.Mutex
}

func newFilePostStore(dir string) *filePostStore {
	return &filePostStore{dir: dir}
}

func (s *filePostStore) path(slug string) string {
	return filepath.Join(s.dir, slug+".mdx")
}

func (s *filePostStore) read(slug string) (model.BlogPost, error) {
	data, err := os.ReadFile(s.path(slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.BlogPost{}, ErrNotFound
		}
		return model.BlogPost{}, fmt.Errorf("reading post %s: %w", slug, err)
	}
	post, err := mdx.Parse(data)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("parsing post %s: %w", slug, err)
	}
	post.Slug = slug
	return post, nil
}

func (s *filePostStore) write(post model.BlogPost) error {
	data, err := mdx.Serialize(post)
	if err != nil {
		return fmt.Errorf("serializing post %s: %w", post.Slug, err)
	}
	return atomicWrite(s.path(post.Slug), data)
}

func (s *filePostStore) All(_ context.Context) ([]model.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	posts := make([]model.BlogPost, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".mdx") {
			continue
		}
		post, err := s.read(strings.TrimSuffix(name, ".mdx"))
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

func (s *filePostStore) Published(ctx context.Context) ([]model.BlogPost, error) {
	posts, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	published := posts[:0]
	for _, p := range posts {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}

func (s *filePostStore) BySlug(_ context.Context, slug string) (model.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(slug)
}

func (s *filePostStore) Create(_ context.Context, post model.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(post.Slug)); err == nil {
		return ErrDuplicate
	}
	return s.write(post)
}

func (s *filePostStore) Update(_ context.Context, slug string, post model.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(slug)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("checking post %s: %w", slug, err)
	}

	// Slug change: the new file is written first, then the old identity
	// removed, so a failure in between leaves the post reachable.
	if post.Slug != slug {
		if _, err := os.Stat(s.path(post.Slug)); err == nil {
			return ErrDuplicate
		}
		if err := s.write(post); err != nil {
			return err
		}
		if err := os.Remove(s.path(slug)); err != nil {
			return fmt.Errorf("removing old post %s: %w", slug, err)
		}
		return nil
	}
	return s.write(post)
}

func (s *filePostStore) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(slug)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting post %s: %w", slug, err)
	}
	return nil
}
