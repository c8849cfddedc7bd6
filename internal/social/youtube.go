// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/emckay/folio/internal/model"
)

const defaultYouTubeLimit = 12

// youtubeClient pulls recent uploads via the YouTube Data API v3: a search
// by channel for the video ids, then a batch videos lookup for the details.
// The search snippet truncates descriptions, the videos endpoint does not.
type youtubeClient struct {
	apiKey    string
	channelID string
	baseURL   string
	client    *http.Client
}

func newYouTubeClient(apiKey, channelID string, client *http.Client) *youtubeClient {
	return &youtubeClient{
		apiKey:    apiKey,
		channelID: channelID,
		baseURL:   "https://www.googleapis.com/youtube/v3",
		client:    client,
	}
}

func (c *youtubeClient) Fetch(ctx context.Context, limit int) ([]model.SocialPost, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultYouTubeLimit
	}

	ids, err := c.searchVideoIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return c.videoDetails(ctx, ids)
}

// searchVideoIDs lists the channel's most recent video ids, newest first.
func (c *youtubeClient) searchVideoIDs(ctx context.Context, limit int) ([]string, error) {
	params := url.Values{
		"part":       {"id"},
		"channelId":  {c.channelID},
		"order":      {"date"},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(limit)},
		"key":        {c.apiKey},
	}

	body, err := getJSON(ctx, c.client, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	var result struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("youtube search decode: %w", err)
	}

	ids := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

// videoDetails batch-fetches the full snippets for the given ids in one
// call, preserving the order of ids.
func (c *youtubeClient) videoDetails(ctx context.Context, ids []string) ([]model.SocialPost, error) {
	params := url.Values{
		"part": {"snippet"},
		"id":   {strings.Join(ids, ",")},
		"key":  {c.apiKey},
	}

	body, err := getJSON(ctx, c.client, c.baseURL+"/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	var result struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title       string    `json:"title"`
				Description string    `json:"description"`
				PublishedAt time.Time `json:"publishedAt"`
				Thumbnails  struct {
					High struct {
						URL string `json:"url"`
					} `json:"high"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("youtube videos decode: %w", err)
	}

	byID := make(map[string]model.SocialPost, len(result.Items))
	for _, item := range result.Items {
		byID[item.ID] = model.SocialPost{
			ExternalID:  item.ID,
			Platform:    model.PlatformYouTube,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			URL:         "https://www.youtube.com/watch?v=" + item.ID,
			Thumbnail:   item.Snippet.Thumbnails.High.URL,
			MediaType:   "video",
			PublishedAt: item.Snippet.PublishedAt,
		}
	}

	posts := make([]model.SocialPost, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// getJSON performs a GET request and returns the response body, treating any
// non-200 status as an error. headers may be nil.
func getJSON(ctx context.Context, client *http.Client, requestURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
