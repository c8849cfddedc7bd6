// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sort"
	"time"

	"github.com/emckay/folio/internal/model"
)

// inRange reports whether t falls inside [start, end]; a zero bound is open.
func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}

// --- moments ---

type fileMomentStore struct {
	col *jsonCollection[model.LifeMoment]
}

func newFileMomentStore(path string) *fileMomentStore {
	return &fileMomentStore{col: newJSONCollection(path, func(m *model.LifeMoment) string { return m.ID })}
}

func (s *fileMomentStore) All(_ context.Context) ([]model.LifeMoment, error) {
	moments, err := s.col.all()
	if err != nil {
		return nil, err
	}
	sort.Slice(moments, func(i, j int) bool { return moments[i].Date.After(moments[j].Date) })
	return moments, nil
}

func (s *fileMomentStore) ByID(_ context.Context, id string) (model.LifeMoment, error) {
	return s.col.get(id)
}

func (s *fileMomentStore) Create(_ context.Context, m model.LifeMoment) error {
	return s.col.insert(m)
}

func (s *fileMomentStore) Update(_ context.Context, m model.LifeMoment) error {
	return s.col.replace(m.ID, m)
}

func (s *fileMomentStore) Delete(_ context.Context, id string) error {
	return s.col.remove(id)
}

// --- calendar events ---

type fileEventStore struct {
	col *jsonCollection[model.CalendarEvent]
}

func newFileEventStore(path string) *fileEventStore {
	return &fileEventStore{col: newJSONCollection(path, func(e *model.CalendarEvent) string { return e.ID })}
}

func (s *fileEventStore) Range(_ context.Context, start, end time.Time) ([]model.CalendarEvent, error) {
	events, err := s.col.all()
	if err != nil {
		return nil, err
	}
	matched := events[:0]
	for _, e := range events {
		if inRange(e.Start, start, end) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Start.Before(matched[j].Start) })
	return matched, nil
}

func (s *fileEventStore) ByID(_ context.Context, id string) (model.CalendarEvent, error) {
	return s.col.get(id)
}

func (s *fileEventStore) Create(_ context.Context, e model.CalendarEvent) error {
	return s.col.insert(e)
}

func (s *fileEventStore) Update(_ context.Context, e model.CalendarEvent) error {
	return s.col.replace(e.ID, e)
}

func (s *fileEventStore) Delete(_ context.Context, id string) error {
	return s.col.remove(id)
}

// --- journal ---

type fileJournalStore struct {
	col *jsonCollection[model.JournalEntry]
}

func newFileJournalStore(path string) *fileJournalStore {
	return &fileJournalStore{col: newJSONCollection(path, func(j *model.JournalEntry) string { return j.ID })}
}

func (s *fileJournalStore) Range(_ context.Context, start, end time.Time) ([]model.JournalEntry, error) {
	entries, err := s.col.all()
	if err != nil {
		return nil, err
	}
	matched := entries[:0]
	for _, e := range entries {
		if inRange(e.Date, start, end) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	return matched, nil
}

func (s *fileJournalStore) ByID(_ context.Context, id string) (model.JournalEntry, error) {
	return s.col.get(id)
}

func (s *fileJournalStore) Create(_ context.Context, j model.JournalEntry) error {
	return s.col.insert(j)
}

func (s *fileJournalStore) Update(_ context.Context, j model.JournalEntry) error {
	return s.col.replace(j.ID, j)
}

func (s *fileJournalStore) Delete(_ context.Context, id string) error {
	return s.col.remove(id)
}

// --- finance ---

type fileFinanceStore struct {
	col *jsonCollection[model.FinanceTransaction]
}

func newFileFinanceStore(path string) *fileFinanceStore {
	return &fileFinanceStore{col: newJSONCollection(path, func(t *model.FinanceTransaction) string { return t.ID })}
}

func (s *fileFinanceStore) Range(_ context.Context, start, end time.Time) ([]model.FinanceTransaction, error) {
	txs, err := s.col.all()
	if err != nil {
		return nil, err
	}
	matched := txs[:0]
	for _, t := range txs {
		if inRange(t.Date, start, end) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	return matched, nil
}

func (s *fileFinanceStore) ByID(_ context.Context, id string) (model.FinanceTransaction, error) {
	return s.col.get(id)
}

func (s *fileFinanceStore) Create(_ context.Context, t model.FinanceTransaction) error {
	return s.col.insert(t)
}

func (s *fileFinanceStore) Update(_ context.Context, t model.FinanceTransaction) error {
	return s.col.replace(t.ID, t)
}

func (s *fileFinanceStore) Delete(_ context.Context, id string) error {
	return s.col.remove(id)
}

// --- notes ---

type fileNoteStore struct {
	col *jsonCollection[model.Note]
}

func newFileNoteStore(path string) *fileNoteStore {
	return &fileNoteStore{col: newJSONCollection(path, func(n *model.Note) string { return n.ID })}
}

func (s *fileNoteStore) All(_ context.Context) ([]model.Note, error) {
	notes, err := s.col.all()
	if err != nil {
		return nil, err
	}
	// Pinned notes first, then newest.
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *fileNoteStore) ByID(_ context.Context, id string) (model.Note, error) {
	return s.col.get(id)
}

func (s *fileNoteStore) Create(_ context.Context, n model.Note) error {
	return s.col.insert(n)
}

func (s *fileNoteStore) Update(_ context.Context, n model.Note) error {
	return s.col.replace(n.ID, n)
}

func (s *fileNoteStore) Delete(_ context.Context, id string) error {
	return s.col.remove(id)
}
