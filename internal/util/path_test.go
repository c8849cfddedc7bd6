// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"plain filename", "photo.jpg", "photo.jpg", false},
		{"with directory", "dir/photo.jpg", "photo.jpg", false},
		{"traversal attempt", "../../../etc/passwd", "passwd", false},
		{"dot", ".", "", true},
		{"dot dot", "..", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFilename(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("SanitizeFilename(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeFilename(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name       string
		components []string
		wantErr    bool
	}{
		{"simple component", []string{"file.txt"}, false},
		{"nested components", []string{"sub", "file.txt"}, false},
		{"no components", nil, false},
		{"traversal", []string{"..", "outside.txt"}, true},
		{"nested traversal", []string{"sub", "..", "..", "outside.txt"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SafeJoinPath(base, tt.components...)
			if tt.wantErr && err == nil {
				t.Errorf("SafeJoinPath(%q, %v) expected error", base, tt.components)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("SafeJoinPath(%q, %v) unexpected error: %v", base, tt.components, err)
			}
		})
	}
}
