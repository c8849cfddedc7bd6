// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package feed renders the public RSS feed from published blog posts.
package feed

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/emckay/folio/internal/model"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// Options names the channel.
type Options struct {
	SiteURL     string
	Title       string
	Description string
}

// RenderRSS builds an RSS 2.0 document from published posts, newest first.
func RenderRSS(opts Options, posts []model.BlogPost) ([]byte, error) {
	base := strings.TrimSuffix(opts.SiteURL, "/")

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		if !p.IsPublished() {
			continue
		}
		postURL := base + "/blog/" + p.Slug
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Description,
			PubDate:     p.Date.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}

	doc := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       opts.Title,
			Link:        base,
			Description: opts.Description,
			Items:       items,
		},
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
