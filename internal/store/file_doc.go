// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// jsonCollection is a file-backed collection of records: the whole JSON
// document is read, operated on in memory and rewritten. Writes go to a temp
// file followed by an atomic rename so a crash mid-write cannot truncate the
// document. A mutex serializes writers; the intended deployment is
// single-admin, low-concurrency.
type jsonCollection[T any] struct {
	path string
	mu   sync.Mutex
	id   func(*T) string
}

func newJSONCollection[T any](path string, id func(*T) string) *jsonCollection[T] {
	return &jsonCollection[T]{path: path, id: id}
}

// load reads the whole document. A missing file is an empty collection.
func (c *jsonCollection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(c.path), err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(c.path), err)
	}
	return items, nil
}

// save rewrites the whole document via temp file + rename.
func (c *jsonCollection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(c.path), err)
	}
	return atomicWrite(c.path, data)
}

func (c *jsonCollection[T]) all() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *jsonCollection[T]) get(id string) (T, error) {
	var zero T
	items, err := c.all()
	if err != nil {
		return zero, err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			return items[i], nil
		}
	}
	return zero, ErrNotFound
}

func (c *jsonCollection[T]) insert(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	newID := c.id(&item)
	for i := range items {
		if c.id(&items[i]) == newID {
			return ErrDuplicate
		}
	}
	return c.save(append(items, item))
}

func (c *jsonCollection[T]) replace(id string, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			items[i] = item
			return c.save(items)
		}
	}
	return ErrNotFound
}

func (c *jsonCollection[T]) remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			return c.save(append(items[:i], items[i+1:]...))
		}
	}
	return ErrNotFound
}

// upsert replaces the record stored under id, or appends it if absent.
func (c *jsonCollection[T]) upsert(id string, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			items[i] = item
			return c.save(items)
		}
	}
	return c.save(append(items, item))
}

// mutateAll applies fn to the whole collection and saves the result.
func (c *jsonCollection[T]) mutateAll(fn func([]T) []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	return c.save(fn(items))
}

// atomicWrite writes data to path via a temp file in the same directory and
// an atomic rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
