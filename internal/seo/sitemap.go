// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt for the public site.
package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/emckay/folio/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL is a single URL entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the complete urlset document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder accumulates URLs for the site.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder rooted at siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddStatic adds the fixed public pages: home, blog index, prep index,
// moments gallery, and the content pages.
func (b *SitemapBuilder) AddStatic() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
	for _, path := range []string{"/blog", "/prep", "/moments"} {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + path,
			ChangeFreq: ChangeFreqDaily,
			Priority:   "0.8",
		})
	}
	for _, page := range []string{"/about", "/skills", "/hire", "/experience"} {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + page,
			ChangeFreq: ChangeFreqMonthly,
			Priority:   "0.6",
		})
	}
}

// AddPosts adds published blog posts.
func (b *SitemapBuilder) AddPosts(posts []model.BlogPost) {
	for _, p := range posts {
		url := SitemapURL{
			Loc:        b.siteURL + "/blog/" + p.Slug,
			ChangeFreq: ChangeFreqWeekly,
			Priority:   "0.7",
		}
		if !p.UpdatedAt.IsZero() {
			url.LastMod = p.UpdatedAt.Format(time.RFC3339)
		} else if !p.Date.IsZero() {
			url.LastMod = p.Date.Format(time.RFC3339)
		}
		b.urls = append(b.urls, url)
	}
}

// AddPrepPaths adds published prep paths.
func (b *SitemapBuilder) AddPrepPaths(paths []model.PrepPath) {
	for _, p := range paths {
		if !p.Published {
			continue
		}
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/prep/" + p.ID,
			ChangeFreq: ChangeFreqWeekly,
			Priority:   "0.6",
		})
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), xmlBytes...), nil
}
