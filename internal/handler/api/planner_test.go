// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsAndUpcoming(t *testing.T) {
	_, srv := newTestServer(t)

	soon := time.Now().UTC().Add(2 * time.Hour)
	farOff := time.Now().UTC().Add(72 * time.Hour)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/events", testAdminToken, map[string]any{
		"title":    "Dentist",
		"start":    soon.Format(time.RFC3339),
		"reminder": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/events", testAdminToken, map[string]any{
		"title":    "Conference",
		"start":    farOff.Format(time.RFC3339),
		"reminder": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/events", testAdminToken, map[string]any{
		"title": "No reminder",
		"start": soon.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/admin/events", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["events"].([]any), 3)

	// Upcoming: reminder-flagged events starting within the next day.
	rec = doRequest(t, srv, http.MethodGet, "/api/admin/events/upcoming", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	upcoming := decodeBody(t, rec)["events"].([]any)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Dentist", upcoming[0].(map[string]any)["title"])
}

func TestEventRequiresStart(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/events", testAdminToken, map[string]any{
		"title": "No start",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalCRUD(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/journal", testAdminToken, map[string]any{
		"title": "A good day",
		"body":  "Went diving.",
		"mood":  "great",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["entry"].(map[string]any)["id"].(string)

	rec = doRequest(t, srv, http.MethodPut, "/api/admin/journal/"+id, testAdminToken, map[string]any{
		"title": "A great day",
		"body":  "Went diving twice.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/admin/journal", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody(t, rec)["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "A great day", entries[0].(map[string]any)["title"])

	rec = doRequest(t, srv, http.MethodDelete, "/api/admin/journal/"+id, testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/admin/journal/"+id, testAdminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFinanceTotals(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/finance", testAdminToken, map[string]any{
		"kind":         "income",
		"amount_cents": 500000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/finance", testAdminToken, map[string]any{
		"kind":         "expense",
		"amount_cents": 125000,
		"category":     "gear",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/admin/finance", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(500000), body["income_cents"])
	assert.Equal(t, float64(125000), body["expenses_cents"])
	assert.Equal(t, float64(375000), body["balance_cents"])
	assert.Len(t, body["transactions"].([]any), 2)
}

func TestFinanceValidation(t *testing.T) {
	_, srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad kind", map[string]any{"kind": "transfer", "amount_cents": 100}},
		{"zero amount", map[string]any{"kind": "income", "amount_cents": 0}},
		{"negative amount", map[string]any{"kind": "expense", "amount_cents": -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/admin/finance", testAdminToken, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestNotesPinnedFirst(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/admin/notes", testAdminToken, map[string]any{
		"title": "ordinary note",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/admin/notes", testAdminToken, map[string]any{
		"title":  "pinned note",
		"pinned": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/admin/notes", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notes := decodeBody(t, rec)["notes"].([]any)
	require.Len(t, notes, 2)
	assert.Equal(t, "pinned note", notes[0].(map[string]any)["title"])
}

func TestRangeQueryValidation(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/admin/events?start=yesterday", testAdminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
