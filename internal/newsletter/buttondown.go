// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package newsletter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type buttondown struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func (b *buttondown) Name() string { return "buttondown" }

func (b *buttondown) Subscribe(ctx context.Context, email, name string) error {
	payload := map[string]any{
		"email_address": email,
	}
	if name != "" {
		payload["metadata"] = map[string]string{"name": name}
	}

	body, err := postJSON(ctx, b.client, b.baseURL+"/subscribers",
		map[string]string{"Authorization": "Token " + b.apiKey}, payload)
	if err != nil {
		// Buttondown rejects known emails with a 400 naming the address.
		if strings.Contains(string(body), "already subscribed") {
			return nil
		}
		return fmt.Errorf("buttondown subscribe: %w", err)
	}
	return nil
}
