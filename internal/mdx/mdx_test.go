// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package mdx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emckay/folio/internal/model"
)

func TestParse(t *testing.T) {
	doc := `---
title: First Post
description: An opening note
date: 2026-01-15T09:00:00Z
tags:
  - go
  - writing
category: engineering
published: true
---

# Hello

Body text here.
`
	post, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "First Post", post.Title)
	assert.Equal(t, "An opening note", post.Description)
	assert.Equal(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC), post.Date)
	assert.Equal(t, []string{"go", "writing"}, post.Tags)
	assert.Equal(t, "engineering", post.Category)
	assert.True(t, post.Published)
	assert.Equal(t, "# Hello\n\nBody text here.\n", post.Body)
}

func TestParseNoFrontMatter(t *testing.T) {
	post, err := Parse([]byte("just a body\n"))
	require.NoError(t, err)

	assert.Empty(t, post.Title)
	assert.Equal(t, "just a body\n", post.Body)
}

func TestParseUnterminatedFrontMatter(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: Broken\n"))
	assert.Error(t, err)
}

func TestSerializeRoundTrip(t *testing.T) {
	scheduled := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	original := model.BlogPost{
		Title:       "Round Trip",
		Description: "metadata survives",
		Date:        time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		ScheduledAt: &scheduled,
		Tags:        []string{"go"},
		Category:    "engineering",
		Published:   false,
		Image:       "/uploads/images/cover.jpg",
		Body:        "Some **markdown** body.",
	}

	data, err := Serialize(original)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\n"))

	parsed, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, original.Title, parsed.Title)
	assert.Equal(t, original.Description, parsed.Description)
	assert.True(t, original.Date.Equal(parsed.Date))
	require.NotNil(t, parsed.ScheduledAt)
	assert.True(t, scheduled.Equal(*parsed.ScheduledAt))
	assert.Equal(t, original.Tags, parsed.Tags)
	assert.Equal(t, original.Category, parsed.Category)
	assert.Equal(t, original.Published, parsed.Published)
	assert.Equal(t, original.Image, parsed.Image)
	assert.Equal(t, "Some **markdown** body.\n", parsed.Body)
}

func TestRender(t *testing.T) {
	out, err := Render("# Heading\n\nSome *emphasis* and a [link](https://example.com).")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<em>emphasis</em>")
	assert.Contains(t, out, `href="https://example.com"`)
}

func TestRenderSanitizesScripts(t *testing.T) {
	out, err := Render("hello <script>alert(1)</script> world")
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}

func TestRenderTables(t *testing.T) {
	out, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}
