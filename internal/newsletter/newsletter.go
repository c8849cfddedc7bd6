// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package newsletter forwards subscriber signups to an external email
// provider. The local subscribers table stays the source of truth; provider
// sync is best-effort.
package newsletter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

// Provider syncs a subscriber to an external newsletter service.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Subscribe registers the email with the provider. Subscribing an
	// already-known email is not an error.
	Subscribe(ctx context.Context, email, name string) error
}

// Config selects and configures a provider.
type Config struct {
	// Provider is "buttondown" or "mailerlite"; empty disables syncing.
	Provider string

	ButtondownAPIKey string

	MailerLiteAPIKey string
	MailerLiteGroup  string

	// HTTPClient overrides the default client, used by tests.
	HTTPClient *http.Client
}

// New builds the configured provider, or nil when none is configured.
func New(cfg Config) (Provider, error) {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}
	switch cfg.Provider {
	case "":
		return nil, nil
	case "buttondown":
		if cfg.ButtondownAPIKey == "" {
			return nil, fmt.Errorf("buttondown provider requires an API key")
		}
		return &buttondown{apiKey: cfg.ButtondownAPIKey, baseURL: "https://api.buttondown.email/v1", client: client}, nil
	case "mailerlite":
		if cfg.MailerLiteAPIKey == "" {
			return nil, fmt.Errorf("mailerlite provider requires an API key")
		}
		return &mailerLite{apiKey: cfg.MailerLiteAPIKey, groupID: cfg.MailerLiteGroup,
			baseURL: "https://connect.mailerlite.com/api", client: client}, nil
	default:
		return nil, fmt.Errorf("unknown newsletter provider %q", cfg.Provider)
	}
}

// postJSON sends a JSON POST and returns the response body. Statuses in the
// 2xx range succeed; everything else is an error carrying the body.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
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
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
