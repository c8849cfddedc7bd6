// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media stores uploaded files under per-bucket directories with
// generated names. Each bucket carries its own size limit and MIME
// allowlist; image uploads also get a thumbnail.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/emckay/folio/internal/util"
)

var (
	// ErrUnknownBucket is returned for a bucket name outside the configured set.
	ErrUnknownBucket = errors.New("media: unknown bucket")
	// ErrTooLarge is returned when an upload exceeds the bucket's size limit.
	ErrTooLarge = errors.New("media: file too large")
	// ErrBadType is returned when the detected MIME type is not allowed in
	// the bucket.
	ErrBadType = errors.New("media: file type not allowed")
)

// Bucket describes one upload category.
type Bucket struct {
	Name    string
	MaxSize int64
	// Exts maps allowed MIME types to the stored file extension.
	Exts map[string]string
}

const megabyte = 1 << 20

// Buckets are the fixed upload categories.
var Buckets = map[string]Bucket{
	"images": {
		Name:    "images",
		MaxSize: 10 * megabyte,
		Exts: map[string]string{
			"image/jpeg": ".jpg",
			"image/png":  ".png",
			"image/gif":  ".gif",
			"image/webp": ".webp",
		},
	},
	"videos": {
		Name:    "videos",
		MaxSize: 100 * megabyte,
		Exts: map[string]string{
			"video/mp4":  ".mp4",
			"video/webm": ".webm",
		},
	},
	"resumes": {
		Name:    "resumes",
		MaxSize: 10 * megabyte,
		Exts: map[string]string{
			"application/pdf": ".pdf",
		},
	},
}

const thumbnailSize = 400

// Upload describes a stored file.
type Upload struct {
	Bucket       string `json:"bucket"`
	Filename     string `json:"filename"`
	StoredName   string `json:"stored_name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// Store saves uploads under a root directory, one subdirectory per bucket.
type Store struct {
	root string
}

// NewStore creates the bucket directories under root.
func NewStore(root string) (*Store, error) {
	for name := range Buckets {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			return nil, fmt.Errorf("creating upload directory %s: %w", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "images", "thumbs"), 0o755); err != nil {
		return nil, fmt.Errorf("creating thumbnail directory: %w", err)
	}
	return &Store{root: root}, nil
}

// MaxSize returns the size limit for a bucket, or 0 if the bucket is unknown.
func MaxSize(bucket string) int64 {
	b, ok := Buckets[bucket]
	if !ok {
		return 0
	}
	return b.MaxSize
}

// Save validates and stores an upload. The stored name is a UUID with an
// extension derived from the detected MIME type, so client filenames never
// reach the filesystem.
func (s *Store) Save(bucket, filename string, r io.Reader) (*Upload, error) {
	b, ok := Buckets[bucket]
	if !ok {
		return nil, ErrUnknownBucket
	}

	// Read one byte past the limit so oversize is detectable without
	// buffering an unbounded body.
	data, err := io.ReadAll(io.LimitReader(r, b.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > b.MaxSize {
		return nil, ErrTooLarge
	}

	mimeType := detectMime(data, filename)
	ext, allowed := b.Exts[mimeType]
	if !allowed {
		return nil, fmt.Errorf("%w: %s", ErrBadType, mimeType)
	}

	storedName := uuid.New().String() + ext
	path, err := util.SafeJoinPath(filepath.Join(s.root, bucket), storedName)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}

	cleanName, err := util.SanitizeFilename(filename)
	if err != nil {
		cleanName = storedName
	}

	up := &Upload{
		Bucket:     bucket,
		Filename:   cleanName,
		StoredName: storedName,
		URL:        "/uploads/" + bucket + "/" + storedName,
		MimeType:   mimeType,
		Size:       int64(len(data)),
	}

	if bucket == "images" && mimeType != "image/gif" {
		if thumbName, err := s.createThumbnail(data, storedName); err == nil {
			up.ThumbnailURL = "/uploads/images/thumbs/" + thumbName
		}
	}
	return up, nil
}

// Delete removes a stored file and, for images, its thumbnail.
func (s *Store) Delete(bucket, storedName string) error {
	if _, ok := Buckets[bucket]; !ok {
		return ErrUnknownBucket
	}
	path, err := util.SafeJoinPath(filepath.Join(s.root, bucket), storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("deleting upload: %w", err)
	}
	if bucket == "images" {
		thumb := thumbnailName(storedName)
		_ = os.Remove(filepath.Join(s.root, "images", "thumbs", thumb))
	}
	return nil
}

func (s *Store) createThumbnail(data []byte, storedName string) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	name := thumbnailName(storedName)
	path := filepath.Join(s.root, "images", "thumbs", name)
	if err := imaging.Save(thumb, path, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("saving thumbnail: %w", err)
	}
	return name, nil
}

// thumbnailName swaps the extension for .jpg since thumbnails are always
// encoded as JPEG.
func thumbnailName(storedName string) string {
	return strings.TrimSuffix(storedName, filepath.Ext(storedName)) + ".jpg"
}

// detectMime sniffs content first and falls back to the filename extension
// for types the sniffer reports generically (mp4 variants, pdf behind
// leading whitespace).
func detectMime(data []byte, filename string) string {
	sniffed := http.DetectContentType(data)
	if sniffed != "application/octet-stream" && !strings.HasPrefix(sniffed, "text/plain") {
		// Normalize the mp4 subtypes the sniffer can emit.
		if strings.HasPrefix(sniffed, "video/mp4") {
			return "video/mp4"
		}
		if idx := strings.IndexByte(sniffed, ';'); idx >= 0 {
			sniffed = sniffed[:idx]
		}
		return sniffed
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".pdf":
		return "application/pdf"
	}
	return sniffed
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
