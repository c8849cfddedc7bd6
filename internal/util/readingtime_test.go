// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"single word", "hello", 1},
		{"multiple words", "the quick brown fox", 4},
		{"extra whitespace", "  hello   world  ", 2},
		{"newlines", "line one\nline two", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordCount(tt.input); got != tt.expected {
				t.Errorf("WordCount(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty text", "", 1},
		{"one word", "hi", 1},
		{"exactly 200 words", words(200), 1},
		{"201 words rounds up", words(201), 2},
		{"400 words", words(400), 2},
		{"1000 words", words(1000), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTime(tt.input); got != tt.expected {
				t.Errorf("ReadingTime(%d words) = %d, want %d", WordCount(tt.input), got, tt.expected)
			}
		})
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}
