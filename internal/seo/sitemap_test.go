// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emckay/folio/internal/model"
)

func TestSitemapBuilder(t *testing.T) {
	b := NewSitemapBuilder("https://example.com/")
	b.AddStatic()
	b.AddPosts([]model.BlogPost{
		{Slug: "go-generics", Title: "Go Generics", Published: true,
			Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
	})
	b.AddPrepPaths([]model.PrepPath{
		{ID: "backend", Title: "Backend", Published: true},
		{ID: "hidden", Title: "Hidden", Published: false},
	})

	out, err := b.Build()
	require.NoError(t, err)
	xml := string(out)

	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, "<loc>https://example.com/</loc>")
	assert.Contains(t, xml, "<loc>https://example.com/blog/go-generics</loc>")
	assert.Contains(t, xml, "<loc>https://example.com/prep/backend</loc>")
	assert.NotContains(t, xml, "hidden", "unpublished paths stay out of the sitemap")
	assert.Contains(t, xml, "<loc>https://example.com/about</loc>")
}

func TestBuildRobots(t *testing.T) {
	out := BuildRobots(RobotsConfig{SiteURL: "https://example.com"})
	assert.Contains(t, out, "Disallow: /admin")
	assert.Contains(t, out, "Allow: /")
	assert.Contains(t, out, "Sitemap: https://example.com/sitemap.xml")
}

func TestBuildRobotsDisallowAll(t *testing.T) {
	out := BuildRobots(RobotsConfig{DisallowAll: true})
	assert.Contains(t, out, "Disallow: /")
	assert.NotContains(t, out, "Allow: /")
}
