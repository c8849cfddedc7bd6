// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emckay/folio/internal/testutil"
)

func TestMemorySetGet(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryMiss(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer c.Close()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}

func TestMemoryDeleteAndClear(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Clear(ctx))
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClosed(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	require.NoError(t, c.Close())

	_, err := c.Get(context.Background(), "key")
	assert.ErrorIs(t, err, ErrCacheClosed)
	assert.ErrorIs(t, c.Set(context.Background(), "key", nil, 0), ErrCacheClosed)
}

func TestFactoryFallsBackToMemory(t *testing.T) {
	c := New(Options{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute}, testutil.TestLogger())
	defer c.Close()

	_, ok := c.(*Memory)
	assert.True(t, ok, "unreachable redis should fall back to memory")
}
