// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mdx parses and serializes markdown files with YAML front matter.
// The front matter carries post metadata; everything after the closing
// delimiter is the body.
package mdx

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/emckay/folio/internal/model"
)

const delimiter = "---"

// frontMatter is the YAML block at the top of a post file.
type frontMatter struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Date        time.Time  `yaml:"date"`
	Updated     time.Time  `yaml:"updated,omitempty"`
	Scheduled   *time.Time `yaml:"scheduled,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
	Category    string     `yaml:"category,omitempty"`
	Published   bool       `yaml:"published"`
	Image       string     `yaml:"image,omitempty"`
	Video       string     `yaml:"video,omitempty"`
}

// Parse decodes an MDX document into a BlogPost. The slug is not part of the
// front matter; it comes from the filename and is set by the caller.
func Parse(data []byte) (model.BlogPost, error) {
	var post model.BlogPost

	content := string(data)
	if !strings.HasPrefix(content, delimiter) {
		// No front matter block: the whole file is body.
		post.Body = content
		return post, nil
	}

	rest := content[len(delimiter):]
	idx := strings.Index(rest, "\n"+delimiter)
	if idx < 0 {
		return post, fmt.Errorf("unterminated front matter block")
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(rest[:idx]), &fm); err != nil {
		return post, fmt.Errorf("decoding front matter: %w", err)
	}

	body := rest[idx+len(delimiter)+1:]
	body = strings.TrimPrefix(body, "\n")

	post = model.BlogPost{
		Title:       fm.Title,
		Description: fm.Description,
		Date:        fm.Date,
		UpdatedAt:   fm.Updated,
		ScheduledAt: fm.Scheduled,
		Tags:        fm.Tags,
		Category:    fm.Category,
		Published:   fm.Published,
		Image:       fm.Image,
		Video:       fm.Video,
		Body:        body,
	}
	return post, nil
}

// Serialize encodes a BlogPost as an MDX document: YAML front matter followed
// by the markdown body.
func Serialize(post model.BlogPost) ([]byte, error) {
	fm := frontMatter{
		Title:       post.Title,
		Description: post.Description,
		Date:        post.Date,
		Updated:     post.UpdatedAt,
		Scheduled:   post.ScheduledAt,
		Tags:        post.Tags,
		Category:    post.Category,
		Published:   post.Published,
		Image:       post.Image,
		Video:       post.Video,
	}

	meta, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(meta)
	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(post.Body)
	if !strings.HasSuffix(post.Body, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
