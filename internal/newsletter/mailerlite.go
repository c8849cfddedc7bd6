// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package newsletter

import (
	"context"
	"fmt"
	"net/http"
)

type mailerLite struct {
	apiKey  string
	groupID string
	baseURL string
	client  *http.Client
}

func (m *mailerLite) Name() string { return "mailerlite" }

func (m *mailerLite) Subscribe(ctx context.Context, email, name string) error {
	payload := map[string]any{
		"email": email,
	}
	if name != "" {
		payload["fields"] = map[string]string{"name": name}
	}
	if m.groupID != "" {
		payload["groups"] = []string{m.groupID}
	}

	// MailerLite upserts subscribers, so repeats return 200 instead of an
	// error.
	_, err := postJSON(ctx, m.client, m.baseURL+"/subscribers",
		map[string]string{"Authorization": "Bearer " + m.apiKey}, payload)
	if err != nil {
		return fmt.Errorf("mailerlite subscribe: %w", err)
	}
	return nil
}
