// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the folio project.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/emckay/folio/internal/store"
)

// TestLogger creates a quiet test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestFileStore creates a file-backed store rooted in a temp directory.
// Cleanup is handled by t.TempDir.
func TestFileStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	return s
}

// TestSQLiteStore creates a SQLite-backed store in a temp directory with
// migrations applied. The connection is closed when the test ends.
func TestSQLiteStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "folio-test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
