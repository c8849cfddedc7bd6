// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/emckay/folio/internal/model"
)

// upcomingWindow bounds the events feed that browser notification pollers
// consume.
const upcomingWindow = 24 * time.Hour

// parseRange reads optional start/end query parameters in RFC 3339. Absent
// parameters leave the corresponding bound open.
func parseRange(r *http.Request) (start, end time.Time, err error) {
	if s := r.URL.Query().Get("start"); s != "" {
		start, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return
		}
	}
	if e := r.URL.Query().Get("end"); e != "" {
		end, err = time.Parse(time.RFC3339, e)
		if err != nil {
			return
		}
	}
	return
}

// --- calendar events ---

type eventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	AllDay      bool       `json:"all_day"`
	Reminder    bool       `json:"reminder"`
}

// ListEvents handles GET /api/admin/events with optional ?start=&end=.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		WriteBadRequest(w, "invalid time range: "+err.Error())
		return
	}
	events, err := h.store.Events.Range(r.Context(), start, end)
	if err != nil {
		h.writeStoreError(w, err, "events")
		return
	}
	if events == nil {
		events = []model.CalendarEvent{}
	}
	WriteSuccess(w, Envelope{"events": events})
}

// UpcomingEvents handles GET /api/admin/events/upcoming: reminder-enabled
// events starting in the next 24 hours.
func (h *Handler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	events, err := h.store.Events.Range(r.Context(), now, now.Add(upcomingWindow))
	if err != nil {
		h.writeStoreError(w, err, "events")
		return
	}
	upcoming := make([]model.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.Reminder && e.StartsWithin(now, upcomingWindow) {
			upcoming = append(upcoming, e)
		}
	}
	WriteSuccess(w, Envelope{"events": upcoming})
}

// CreateEvent handles POST /api/admin/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.Start == nil {
		WriteBadRequest(w, "title and start are required")
		return
	}

	now := time.Now().UTC()
	event := model.CalendarEvent{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Start:       *req.Start,
		AllDay:      req.AllDay,
		Reminder:    req.Reminder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.End != nil {
		event.End = *req.End
	}
	if err := h.store.Events.Create(r.Context(), event); err != nil {
		h.writeStoreError(w, err, "event")
		return
	}
	WriteCreated(w, Envelope{"event": event})
}

// UpdateEvent handles PUT /api/admin/events/{id}.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Events.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "event")
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Location = req.Location
	if req.Start != nil {
		existing.Start = *req.Start
	}
	if req.End != nil {
		existing.End = *req.End
	}
	existing.AllDay = req.AllDay
	existing.Reminder = req.Reminder
	existing.UpdatedAt = time.Now().UTC()
	if err := h.store.Events.Update(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "event")
		return
	}
	WriteSuccess(w, Envelope{"event": existing})
}

// DeleteEvent handles DELETE /api/admin/events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Events.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "event")
		return
	}
	WriteMessage(w, "event deleted")
}

// --- journal ---

type journalRequest struct {
	Date  *time.Time `json:"date"`
	Title string     `json:"title"`
	Body  string     `json:"body"`
	Mood  string     `json:"mood"`
}

// ListJournal handles GET /api/admin/journal with optional ?start=&end=.
func (h *Handler) ListJournal(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		WriteBadRequest(w, "invalid time range: "+err.Error())
		return
	}
	entries, err := h.store.Journal.Range(r.Context(), start, end)
	if err != nil {
		h.writeStoreError(w, err, "journal entries")
		return
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	WriteSuccess(w, Envelope{"entries": entries})
}

// CreateJournalEntry handles POST /api/admin/journal.
func (h *Handler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req journalRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	entry := model.JournalEntry{
		ID:        uuid.New().String(),
		Date:      date,
		Title:     req.Title,
		Body:      req.Body,
		Mood:      req.Mood,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.Journal.Create(r.Context(), entry); err != nil {
		h.writeStoreError(w, err, "journal entry")
		return
	}
	WriteCreated(w, Envelope{"entry": entry})
}

// UpdateJournalEntry handles PUT /api/admin/journal/{id}.
func (h *Handler) UpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Journal.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "journal entry")
		return
	}

	var req journalRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	if req.Date != nil {
		existing.Date = *req.Date
	}
	existing.Title = req.Title
	existing.Body = req.Body
	existing.Mood = req.Mood
	existing.UpdatedAt = time.Now().UTC()
	if err := h.store.Journal.Update(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "journal entry")
		return
	}
	WriteSuccess(w, Envelope{"entry": existing})
}

// DeleteJournalEntry handles DELETE /api/admin/journal/{id}.
func (h *Handler) DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Journal.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "journal entry")
		return
	}
	WriteMessage(w, "journal entry deleted")
}

// --- finance ---

type transactionRequest struct {
	Date        *time.Time `json:"date"`
	Kind        string     `json:"kind"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Category    string     `json:"category"`
	Note        string     `json:"note"`
}

// ListTransactions handles GET /api/admin/finance with optional ?start=&end=.
// The payload carries income/expense totals for the selected range.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		WriteBadRequest(w, "invalid time range: "+err.Error())
		return
	}
	txs, err := h.store.Finance.Range(r.Context(), start, end)
	if err != nil {
		h.writeStoreError(w, err, "transactions")
		return
	}
	if txs == nil {
		txs = []model.FinanceTransaction{}
	}

	var income, expenses int64
	for _, t := range txs {
		switch t.Kind {
		case model.TransactionIncome:
			income += t.AmountCents
		case model.TransactionExpense:
			expenses += t.AmountCents
		}
	}
	WriteSuccess(w, Envelope{
		"transactions":   txs,
		"income_cents":   income,
		"expenses_cents": expenses,
		"balance_cents":  income - expenses,
	})
}

// CreateTransaction handles POST /api/admin/finance.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Kind != model.TransactionIncome && req.Kind != model.TransactionExpense {
		WriteBadRequest(w, "kind must be income or expense")
		return
	}
	if req.AmountCents <= 0 {
		WriteBadRequest(w, "amount_cents must be positive")
		return
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	tx := model.FinanceTransaction{
		ID:          uuid.New().String(),
		Date:        date,
		Kind:        req.Kind,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Category:    req.Category,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.Finance.Create(r.Context(), tx); err != nil {
		h.writeStoreError(w, err, "transaction")
		return
	}
	WriteCreated(w, Envelope{"transaction": tx})
}

// UpdateTransaction handles PUT /api/admin/finance/{id}.
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Finance.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "transaction")
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Kind != model.TransactionIncome && req.Kind != model.TransactionExpense {
		WriteBadRequest(w, "kind must be income or expense")
		return
	}
	if req.AmountCents <= 0 {
		WriteBadRequest(w, "amount_cents must be positive")
		return
	}

	if req.Date != nil {
		existing.Date = *req.Date
	}
	existing.Kind = req.Kind
	existing.AmountCents = req.AmountCents
	if req.Currency != "" {
		existing.Currency = req.Currency
	}
	existing.Category = req.Category
	existing.Note = req.Note
	existing.UpdatedAt = time.Now().UTC()
	if err := h.store.Finance.Update(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "transaction")
		return
	}
	WriteSuccess(w, Envelope{"transaction": existing})
}

// DeleteTransaction handles DELETE /api/admin/finance/{id}.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Finance.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "transaction")
		return
	}
	WriteMessage(w, "transaction deleted")
}

// --- notes ---

type noteRequest struct {
	Title   string     `json:"title"`
	Body    string     `json:"body"`
	Pinned  bool       `json:"pinned"`
	DueDate *time.Time `json:"due_date"`
}

// ListNotes handles GET /api/admin/notes, pinned first.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.store.Notes.All(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	WriteSuccess(w, Envelope{"notes": notes})
}

// CreateNote handles POST /api/admin/notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	now := time.Now().UTC()
	note := model.Note{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Body:      req.Body,
		Pinned:    req.Pinned,
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.Notes.Create(r.Context(), note); err != nil {
		h.writeStoreError(w, err, "note")
		return
	}
	WriteCreated(w, Envelope{"note": note})
}

// UpdateNote handles PUT /api/admin/notes/{id}.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.Notes.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "note")
		return
	}

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	existing.Title = req.Title
	existing.Body = req.Body
	existing.Pinned = req.Pinned
	existing.DueDate = req.DueDate
	existing.UpdatedAt = time.Now().UTC()
	if err := h.store.Notes.Update(r.Context(), existing); err != nil {
		h.writeStoreError(w, err, "note")
		return
	}
	WriteSuccess(w, Envelope{"note": existing})
}

// DeleteNote handles DELETE /api/admin/notes/{id}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Notes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "note")
		return
	}
	WriteMessage(w, "note deleted")
}
