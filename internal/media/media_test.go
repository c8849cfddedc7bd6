// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	s := newTestStore(t)

	up, err := s.Save("images", "photo.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", up.MimeType)
	assert.True(t, strings.HasSuffix(up.StoredName, ".png"))
	assert.True(t, strings.HasPrefix(up.URL, "/uploads/images/"))
	assert.NotEmpty(t, up.ThumbnailURL, "images should get a thumbnail")

	// Stored file and thumbnail exist on disk.
	assert.FileExists(t, filepath.Join(s.root, "images", up.StoredName))
	assert.FileExists(t, filepath.Join(s.root, "images", "thumbs", thumbnailName(up.StoredName)))
}

func TestSaveRejectsWrongType(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("images", "nasty.exe", strings.NewReader("MZ\x90\x00 not an image"))
	assert.ErrorIs(t, err, ErrBadType)

	_, err = s.Save("resumes", "resume.docx", strings.NewReader("PK\x03\x04 zip content here"))
	assert.ErrorIs(t, err, ErrBadType)
}

func TestSaveRejectsOversize(t *testing.T) {
	s := newTestStore(t)

	// A PDF header followed by padding past the 10MB resume limit.
	big := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{'a'}, 10*megabyte+1)...)
	_, err := s.Save("resumes", "resume.pdf", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSaveResume(t *testing.T) {
	s := newTestStore(t)

	up, err := s.Save("resumes", "resume.pdf", strings.NewReader("%PDF-1.4\nhello"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", up.MimeType)
	assert.True(t, strings.HasSuffix(up.StoredName, ".pdf"))
	assert.Empty(t, up.ThumbnailURL)
}

func TestSaveUnknownBucket(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("archives", "a.zip", strings.NewReader("data"))
	assert.ErrorIs(t, err, ErrUnknownBucket)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	up, err := s.Save("images", "photo.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	require.NoError(t, s.Delete("images", up.StoredName))
	_, statErr := os.Stat(filepath.Join(s.root, "images", up.StoredName))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete("images", up.StoredName))
}

func TestMaxSize(t *testing.T) {
	assert.Equal(t, int64(10*megabyte), MaxSize("images"))
	assert.Equal(t, int64(100*megabyte), MaxSize("videos"))
	assert.Equal(t, int64(0), MaxSize("archives"))
}
