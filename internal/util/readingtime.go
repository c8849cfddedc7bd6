// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "strings"

// wordsPerMinute is the assumed adult reading speed.
const wordsPerMinute = 200

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadingTime estimates reading time in whole minutes for the given text.
// It is deterministic and never returns less than 1, so even a one-word post
// reports a minute.
func ReadingTime(s string) int {
	words := WordCount(s)
	if words == 0 {
		return 1
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
