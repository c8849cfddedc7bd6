// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package newsletter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsProvider(t *testing.T) {
	p, err := New(Config{Provider: "buttondown", ButtondownAPIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, "buttondown", p.Name())

	p, err = New(Config{Provider: "mailerlite", MailerLiteAPIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, "mailerlite", p.Name())

	p, err = New(Config{})
	require.NoError(t, err)
	assert.Nil(t, p, "no provider configured means nil provider")

	_, err = New(Config{Provider: "sendgrid"})
	assert.Error(t, err)

	_, err = New(Config{Provider: "buttondown"})
	assert.Error(t, err, "buttondown without key must fail")
}

func TestButtondownSubscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token key", r.Header.Get("Authorization"))
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "a@example.com", payload["email_address"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b := &buttondown{apiKey: "key", baseURL: srv.URL, client: srv.Client()}
	assert.NoError(t, b.Subscribe(context.Background(), "a@example.com", "Ann"))
}

func TestButtondownDuplicateIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"a@example.com is already subscribed"}`))
	}))
	defer srv.Close()

	b := &buttondown{apiKey: "key", baseURL: srv.URL, client: srv.Client()}
	assert.NoError(t, b.Subscribe(context.Background(), "a@example.com", ""))
}

func TestMailerLiteSubscribeIncludesGroup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "a@example.com", payload["email"])
		assert.Equal(t, []any{"g1"}, payload["groups"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := &mailerLite{apiKey: "key", groupID: "g1", baseURL: srv.URL, client: srv.Client()}
	assert.NoError(t, m.Subscribe(context.Background(), "a@example.com", ""))
}

func TestMailerLiteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := &mailerLite{apiKey: "key", baseURL: srv.URL, client: srv.Client()}
	assert.Error(t, m.Subscribe(context.Background(), "a@example.com", ""))
}
