// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emckay/folio/internal/model"
)

// rangeClause appends a date-range filter for the given column; zero bounds
// are open.
func rangeClause(column string, start, end time.Time, args []any) (string, []any) {
	clause := ""
	if !start.IsZero() {
		clause += ` AND ` + column + ` >= ?`
		args = append(args, start)
	}
	if !end.IsZero() {
		clause += ` AND ` + column + ` <= ?`
		args = append(args, end)
	}
	return clause, args
}

// --- moments ---

type sqliteMomentStore struct {
	db *sql.DB
}

func (s *sqliteMomentStore) All(ctx context.Context) ([]model.LifeMoment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, description, date, location, image, video, created_at, updated_at
		 FROM moments ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing moments: %w", err)
	}
	defer rows.Close()

	var moments []model.LifeMoment
	for rows.Next() {
		var m model.LifeMoment
		if err := rows.Scan(&m.ID, &m.Type, &m.Title, &m.Description, &m.Date,
			&m.Location, &m.Image, &m.Video, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning moment: %w", err)
		}
		moments = append(moments, m)
	}
	return moments, rows.Err()
}

func (s *sqliteMomentStore) ByID(ctx context.Context, id string) (model.LifeMoment, error) {
	var m model.LifeMoment
	err := s.db.QueryRowContext(ctx,
		`SELECT id, type, title, description, date, location, image, video, created_at, updated_at
		 FROM moments WHERE id = ?`, id).
		Scan(&m.ID, &m.Type, &m.Title, &m.Description, &m.Date, &m.Location,
			&m.Image, &m.Video, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.LifeMoment{}, notFoundOr(err, "getting moment")
	}
	return m, nil
}

func (s *sqliteMomentStore) Create(ctx context.Context, m model.LifeMoment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moments (id, type, title, description, date, location, image, video, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Type, m.Title, m.Description, m.Date, m.Location, m.Image, m.Video, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating moment: %w", err)
	}
	return nil
}

func (s *sqliteMomentStore) Update(ctx context.Context, m model.LifeMoment) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE moments SET type = ?, title = ?, description = ?, date = ?, location = ?,
		 image = ?, video = ?, updated_at = ? WHERE id = ?`,
		m.Type, m.Title, m.Description, m.Date, m.Location, m.Image, m.Video, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("updating moment: %w", err)
	}
	return requireAffected(res)
}

func (s *sqliteMomentStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM moments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting moment: %w", err)
	}
	return requireAffected(res)
}

// --- calendar events ---

type sqliteEventStore struct {
	db *sql.DB
}

func (s *sqliteEventStore) Range(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error) {
	query := `SELECT id, title, description, location, start, end_time, all_day, reminder, created_at, updated_at
		 FROM events WHERE 1=1`
	clause, args := rangeClause("start", start, end, nil)
	rows, err := s.db.QueryContext(ctx, query+clause+` ORDER BY start`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []model.CalendarEvent
	for rows.Next() {
		var e model.CalendarEvent
		var endTime sql.NullTime
		var allDay, reminder int
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Start,
			&endTime, &allDay, &reminder, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if endTime.Valid {
			e.End = endTime.Time
		}
		e.AllDay = allDay != 0
		e.Reminder = reminder != 0
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *sqliteEventStore) ByID(ctx context.Context, id string) (model.CalendarEvent, error) {
	var e model.CalendarEvent
	var endTime sql.NullTime
	var allDay, reminder int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, location, start, end_time, all_day, reminder, created_at, updated_at
		 FROM events WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Start, &endTime,
			&allDay, &reminder, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.CalendarEvent{}, notFoundOr(err, "getting event")
	}
	if endTime.Valid {
		e.End = endTime.Time
	}
	e.AllDay = allDay != 0
	e.Reminder = reminder != 0
	return e, nil
}

func eventEnd(e model.CalendarEvent) sql.NullTime {
	if e.End.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: e.End, Valid: true}
}

func (s *sqliteEventStore) Create(ctx context.Context, e model.CalendarEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, title, description, location, start, end_time, all_day, reminder, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.Location, e.Start, eventEnd(e),
		boolToInt(e.AllDay), boolToInt(e.Reminder), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

func (s *sqliteEventStore) Update(ctx context.Context, e model.CalendarEvent) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET title = ?, description = ?, location = ?, start = ?, end_time = ?,
		 all_day = ?, reminder = ?, updated_at = ? WHERE id = ?`,
		e.Title, e.Description, e.Location, e.Start, eventEnd(e),
		boolToInt(e.AllDay), boolToInt(e.Reminder), e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return requireAffected(res)
}

func (s *sqliteEventStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return requireAffected(res)
}

// --- journal ---

type sqliteJournalStore struct {
	db *sql.DB
}

func (s *sqliteJournalStore) Range(ctx context.Context, start, end time.Time) ([]model.JournalEntry, error) {
	query := `SELECT id, date, title, body, mood, created_at, updated_at FROM journal_entries WHERE 1=1`
	clause, args := rangeClause("date", start, end, nil)
	rows, err := s.db.QueryContext(ctx, query+clause+` ORDER BY date DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		var j model.JournalEntry
		if err := rows.Scan(&j.ID, &j.Date, &j.Title, &j.Body, &j.Mood, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		entries = append(entries, j)
	}
	return entries, rows.Err()
}

func (s *sqliteJournalStore) ByID(ctx context.Context, id string) (model.JournalEntry, error) {
	var j model.JournalEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, title, body, mood, created_at, updated_at FROM journal_entries WHERE id = ?`, id).
		Scan(&j.ID, &j.Date, &j.Title, &j.Body, &j.Mood, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return model.JournalEntry{}, notFoundOr(err, "getting journal entry")
	}
	return j, nil
}

func (s *sqliteJournalStore) Create(ctx context.Context, j model.JournalEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_entries (id, date, title, body, mood, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Date, j.Title, j.Body, j.Mood, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating journal entry: %w", err)
	}
	return nil
}

func (s *sqliteJournalStore) Update(ctx context.Context, j model.JournalEntry) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE journal_entries SET date = ?, title = ?, body = ?, mood = ?, updated_at = ? WHERE id = ?`,
		j.Date, j.Title, j.Body, j.Mood, j.UpdatedAt, j.ID)
	if err != nil {
		return fmt.Errorf("updating journal entry: %w", err)
	}
	return requireAffected(res)
}

func (s *sqliteJournalStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting journal entry: %w", err)
	}
	return requireAffected(res)
}

// --- finance ---

type sqliteFinanceStore struct {
	db *sql.DB
}

func (s *sqliteFinanceStore) Range(ctx context.Context, start, end time.Time) ([]model.FinanceTransaction, error) {
	query := `SELECT id, date, kind, amount_cents, currency, category, note, created_at, updated_at
		 FROM finance_transactions WHERE 1=1`
	clause, args := rangeClause("date", start, end, nil)
	rows, err := s.db.QueryContext(ctx, query+clause+` ORDER BY date DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.FinanceTransaction
	for rows.Next() {
		var t model.FinanceTransaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Kind, &t.AmountCents, &t.Currency,
			&t.Category, &t.Note, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (s *sqliteFinanceStore) ByID(ctx context.Context, id string) (model.FinanceTransaction, error) {
	var t model.FinanceTransaction
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, kind, amount_cents, currency, category, note, created_at, updated_at
		 FROM finance_transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.Date, &t.Kind, &t.AmountCents, &t.Currency, &t.Category,
			&t.Note, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.FinanceTransaction{}, notFoundOr(err, "getting transaction")
	}
	return t, nil
}

func (s *sqliteFinanceStore) Create(ctx context.Context, t model.FinanceTransaction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO finance_transactions (id, date, kind, amount_cents, currency, category, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.Kind, t.AmountCents, t.Currency, t.Category, t.Note, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}
	return nil
}

func (s *sqliteFinanceStore) Update(ctx context.Context, t model.FinanceTransaction) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE finance_transactions SET date = ?, kind = ?, amount_cents = ?, currency = ?,
		 category = ?, note = ?, updated_at = ? WHERE id = ?`,
		t.Date, t.Kind, t.AmountCents, t.Currency, t.Category, t.Note, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}
	return requireAffected(res)
}

func (s *sqliteFinanceStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM finance_transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return requireAffected(res)
}

// --- notes ---

type sqliteNoteStore struct {
	db *sql.DB
}

func (s *sqliteNoteStore) All(ctx context.Context) ([]model.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, body, pinned, due_date, created_at, updated_at
		 FROM notes ORDER BY pinned DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		var pinned int
		var due sql.NullTime
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &pinned, &due, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		n.Pinned = pinned != 0
		if due.Valid {
			n.DueDate = &due.Time
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *sqliteNoteStore) ByID(ctx context.Context, id string) (model.Note, error) {
	var n model.Note
	var pinned int
	var due sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, body, pinned, due_date, created_at, updated_at FROM notes WHERE id = ?`, id).
		Scan(&n.ID, &n.Title, &n.Body, &pinned, &due, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return model.Note{}, notFoundOr(err, "getting note")
	}
	n.Pinned = pinned != 0
	if due.Valid {
		n.DueDate = &due.Time
	}
	return n, nil
}

func noteDue(n model.Note) sql.NullTime {
	if n.DueDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *n.DueDate, Valid: true}
}

func (s *sqliteNoteStore) Create(ctx context.Context, n model.Note) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, title, body, pinned, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Body, boolToInt(n.Pinned), noteDue(n), n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}
	return nil
}

func (s *sqliteNoteStore) Update(ctx context.Context, n model.Note) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, body = ?, pinned = ?, due_date = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Body, boolToInt(n.Pinned), noteDue(n), n.UpdatedAt, n.ID)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	return requireAffected(res)
}

func (s *sqliteNoteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return requireAffected(res)
}
