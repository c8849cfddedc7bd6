// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background jobs: publishing scheduled posts and
// refreshing the social mirror.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/emckay/folio/internal/cache"
	"github.com/emckay/folio/internal/social"
	"github.com/emckay/folio/internal/store"
)

// Scheduler owns the cron instance and its jobs.
type Scheduler struct {
	store  *store.Store
	mirror *social.Mirror
	cache  cache.Cache
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler over the given store, social mirror and response
// cache.
func New(s *store.Store, mirror *social.Mirror, c cache.Cache, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:  s,
		mirror: mirror,
		cache:  c,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the jobs: scheduled-post publishing every minute and a
// social mirror refresh every hour.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.publishScheduledPosts(); err != nil {
			s.logger.Error("failed to publish scheduled posts", "error", err)
		}
	})
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.mirror.RefreshAll(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// publishScheduledPosts flips drafts whose scheduled time has passed to
// published.
func (s *Scheduler) publishScheduledPosts() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	posts, err := s.store.Posts.All(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	published := 0
	for _, post := range posts {
		if post.Published || post.ScheduledAt == nil || post.ScheduledAt.After(now) {
			continue
		}
		post.Published = true
		post.ScheduledAt = nil
		post.UpdatedAt = now
		if err := s.store.Posts.Update(ctx, post.Slug, post); err != nil {
			s.logger.Error("failed to publish scheduled post",
				"slug", post.Slug, "error", err)
			continue
		}
		published++
		s.logger.Info("published scheduled post", "slug", post.Slug, "title", post.Title)
	}

	// Publishing is a post mutation like any other: the cached public list
	// and feeds must not outlive it.
	if published > 0 {
		for _, key := range []string{cache.KeyPosts, cache.KeyRSS, cache.KeySitemap} {
			if err := s.cache.Delete(ctx, key); err != nil {
				s.logger.Warn("failed to invalidate cache", "key", key, "error", err)
			}
		}
	}
	return nil
}
