// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emckay/folio/internal/model"
)

func TestRenderRSS(t *testing.T) {
	posts := []model.BlogPost{
		{Slug: "hello", Title: "Hello", Description: "First post", Published: true,
			Date: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)},
		{Slug: "draft", Title: "Draft", Published: false},
	}

	out, err := RenderRSS(Options{
		SiteURL:     "https://example.com/",
		Title:       "Evan's Blog",
		Description: "Notes on software",
	}, posts)
	require.NoError(t, err)
	xml := string(out)

	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, `<rss version="2.0">`)
	assert.Contains(t, xml, "<title>Evan&#39;s Blog</title>")
	assert.Contains(t, xml, "<link>https://example.com/blog/hello</link>")
	assert.Contains(t, xml, "04 Mar 2026")
	assert.NotContains(t, xml, "Draft", "unpublished posts stay out of the feed")
}

func TestRenderRSSEmpty(t *testing.T) {
	out, err := RenderRSS(Options{SiteURL: "https://example.com", Title: "Blog"}, nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<channel>")
}
