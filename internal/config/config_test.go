// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FOLIO_ADMIN_TOKEN", testToken)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "./data/folio.db", cfg.DBPath)
	assert.Equal(t, "localhost:8080", cfg.ServerAddr())
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.UseFileBackend())
	assert.False(t, cfg.UseRedisCache())
	assert.False(t, cfg.YouTubeEnabled())
	assert.False(t, cfg.InstagramEnabled())
	assert.False(t, cfg.AssistEnabled())
}

func TestLoadMissingAdminToken(t *testing.T) {
	t.Setenv("FOLIO_ADMIN_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadShortAdminToken(t *testing.T) {
	t.Setenv("FOLIO_ADMIN_TOKEN", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOLIO_ADMIN_TOKEN")
}

func TestLoadInvalidBackend(t *testing.T) {
	t.Setenv("FOLIO_ADMIN_TOKEN", testToken)
	t.Setenv("FOLIO_BACKEND", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOLIO_BACKEND")
}

func TestLoadSQLiteBackend(t *testing.T) {
	t.Setenv("FOLIO_ADMIN_TOKEN", testToken)
	t.Setenv("FOLIO_BACKEND", "sqlite")
	t.Setenv("FOLIO_DB_PATH", "/tmp/folio-test.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.False(t, cfg.UseFileBackend())
	assert.Equal(t, "/tmp/folio-test.db", cfg.DBPath)
}

func TestLoadInvalidNewsletterProvider(t *testing.T) {
	t.Setenv("FOLIO_ADMIN_TOKEN", testToken)
	t.Setenv("FOLIO_NEWSLETTER_PROVIDER", "mailchimp")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOLIO_NEWSLETTER_PROVIDER")
}

func TestSocialToggles(t *testing.T) {
	t.Setenv("FOLIO_ADMIN_TOKEN", testToken)
	t.Setenv("FOLIO_YOUTUBE_API_KEY", "key")
	t.Setenv("FOLIO_YOUTUBE_CHANNEL_ID", "chan")
	t.Setenv("FOLIO_INSTAGRAM_TOKEN", "tok")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.YouTubeEnabled())
	// Instagram needs both the token and the user ID.
	assert.False(t, cfg.InstagramEnabled())
}
