// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emckay/folio/internal/cache"
	"github.com/emckay/folio/internal/model"
	"github.com/emckay/folio/internal/social"
	"github.com/emckay/folio/internal/store"
	"github.com/emckay/folio/internal/testutil"
)

func TestPublishScheduledPosts(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		testPublishScheduledPosts(t, testutil.TestFileStore(t))
	})
	t.Run("sqlite", func(t *testing.T) {
		testPublishScheduledPosts(t, testutil.TestSQLiteStore(t))
	})
}

func testPublishScheduledPosts(t *testing.T, s *store.Store) {
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)
	require.NoError(t, s.Posts.Create(ctx, model.BlogPost{
		Slug: "due", Title: "Due", Date: past, ScheduledAt: &past,
	}))
	require.NoError(t, s.Posts.Create(ctx, model.BlogPost{
		Slug: "later", Title: "Later", Date: past, ScheduledAt: &future,
	}))
	require.NoError(t, s.Posts.Create(ctx, model.BlogPost{
		Slug: "draft", Title: "Draft", Date: past,
	}))

	c := cache.NewMemory(time.Minute, 0)
	t.Cleanup(func() { _ = c.Close() })
	for _, key := range []string{cache.KeyPosts, cache.KeyRSS, cache.KeySitemap} {
		require.NoError(t, c.Set(ctx, key, []byte("stale"), 0))
	}

	mirror := social.NewMirror(s.Social, social.Options{}, testutil.TestLogger())
	sched := New(s, mirror, c, testutil.TestLogger())
	require.NoError(t, sched.publishScheduledPosts())

	due, err := s.Posts.BySlug(ctx, "due")
	require.NoError(t, err)
	assert.True(t, due.Published, "past-scheduled post becomes published")
	assert.Nil(t, due.ScheduledAt)

	later, err := s.Posts.BySlug(ctx, "later")
	require.NoError(t, err)
	assert.False(t, later.Published, "future-scheduled post stays a draft")

	draft, err := s.Posts.BySlug(ctx, "draft")
	require.NoError(t, err)
	assert.False(t, draft.Published, "unscheduled draft is untouched")

	// Publishing invalidates the cached public list and feeds.
	for _, key := range []string{cache.KeyPosts, cache.KeyRSS, cache.KeySitemap} {
		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, "key %s must be dropped", key)
	}
}

func TestPublishNothingDueKeepsCache(t *testing.T) {
	s := testutil.TestFileStore(t)
	ctx := context.Background()

	c := cache.NewMemory(time.Minute, 0)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Set(ctx, cache.KeyPosts, []byte("fresh"), 0))

	mirror := social.NewMirror(s.Social, social.Options{}, testutil.TestLogger())
	sched := New(s, mirror, c, testutil.TestLogger())
	require.NoError(t, sched.publishScheduledPosts())

	got, err := c.Get(ctx, cache.KeyPosts)
	require.NoError(t, err, "no publish means no invalidation")
	assert.Equal(t, []byte("fresh"), got)
}

func TestStartStop(t *testing.T) {
	s := testutil.TestFileStore(t)
	c := cache.NewMemory(time.Minute, 0)
	t.Cleanup(func() { _ = c.Close() })
	mirror := social.NewMirror(s.Social, social.Options{}, testutil.TestLogger())
	sched := New(s, mirror, c, testutil.TestLogger())

	require.NoError(t, sched.Start())
	sched.Stop()
}
