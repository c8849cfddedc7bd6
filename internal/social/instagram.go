// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/emckay/folio/internal/model"
)

const defaultInstagramLimit = 12

// instagramClient pulls recent media via the Instagram Graph API.
type instagramClient struct {
	token   string
	userID  string
	baseURL string
	client  *http.Client
}

func newInstagramClient(token, userID string, client *http.Client) *instagramClient {
	return &instagramClient{
		token:   token,
		userID:  userID,
		baseURL: "https://graph.instagram.com",
		client:  client,
	}
}

func (c *instagramClient) Fetch(ctx context.Context, limit int) ([]model.SocialPost, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultInstagramLimit
	}

	params := url.Values{
		"fields":       {"id,caption,media_type,media_url,thumbnail_url,permalink,timestamp"},
		"limit":        {strconv.Itoa(limit)},
		"access_token": {c.token},
	}

	body, err := getJSON(ctx, c.client, c.baseURL+"/"+c.userID+"/media?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("instagram media: %w", err)
	}

	var result struct {
		Data []struct {
			ID           string `json:"id"`
			Caption      string `json:"caption"`
			MediaType    string `json:"media_type"`
			MediaURL     string `json:"media_url"`
			ThumbnailURL string `json:"thumbnail_url"`
			Permalink    string `json:"permalink"`
			Timestamp    string `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("instagram decode: %w", err)
	}

	posts := make([]model.SocialPost, 0, len(result.Data))
	for _, item := range result.Data {
		published, err := time.Parse(time.RFC3339, normalizeInstagramTime(item.Timestamp))
		if err != nil {
			published = time.Time{}
		}
		thumbnail := item.ThumbnailURL
		if thumbnail == "" {
			thumbnail = item.MediaURL
		}
		posts = append(posts, model.SocialPost{
			ExternalID:  item.ID,
			Platform:    model.PlatformInstagram,
			Title:       captionTitle(item.Caption),
			Description: item.Caption,
			URL:         item.Permalink,
			Thumbnail:   thumbnail,
			MediaType:   strings.ToLower(item.MediaType),
			PublishedAt: published,
		})
	}
	return posts, nil
}

// normalizeInstagramTime converts the Graph API's +0000 offset format to
// RFC 3339.
func normalizeInstagramTime(ts string) string {
	if strings.HasSuffix(ts, "+0000") {
		return strings.TrimSuffix(ts, "+0000") + "Z"
	}
	return ts
}

// captionTitle derives a short title from the first line of a caption.
func captionTitle(caption string) string {
	line := caption
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	const maxTitle = 80
	if len(line) > maxTitle {
		line = strings.TrimSpace(line[:maxTitle]) + "…"
	}
	return line
}
