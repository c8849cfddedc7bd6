// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open selects the storage backend once, at process start. backend is "file"
// or "sqlite"; dataDir is used by the file backend, dbPath by SQLite.
func Open(backend, dataDir, dbPath string) (*Store, error) {
	switch backend {
	case "file":
		return OpenFile(dataDir)
	case "sqlite":
		return OpenSQLite(dbPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// OpenFile builds a Store backed by flat JSON documents and MDX post files
// under dataDir.
func OpenFile(dataDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, "posts"), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	doc := func(name string) string { return filepath.Join(dataDir, name) }

	return &Store{
		Posts:       newFilePostStore(filepath.Join(dataDir, "posts")),
		Prep:        newFilePrepStore(doc("prep.json")),
		Moments:     newFileMomentStore(doc("moments.json")),
		Events:      newFileEventStore(doc("events.json")),
		Journal:     newFileJournalStore(doc("journal.json")),
		Finance:     newFileFinanceStore(doc("finance.json")),
		Notes:       newFileNoteStore(doc("notes.json")),
		Subscribers: newFileSubscriberStore(doc("subscribers.json")),
		Social:      newFileSocialStore(doc("social.json")),
		Content:     newFileContentStore(doc("content.json")),
	}, nil
}

// OpenSQLite builds a Store backed by a SQLite database at dbPath, running
// pending migrations first.
func OpenSQLite(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		Posts:       &sqlitePostStore{db: db},
		Prep:        &sqlitePrepStore{db: db},
		Moments:     &sqliteMomentStore{db: db},
		Events:      &sqliteEventStore{db: db},
		Journal:     &sqliteJournalStore{db: db},
		Finance:     &sqliteFinanceStore{db: db},
		Notes:       &sqliteNoteStore{db: db},
		Subscribers: &sqliteSubscriberStore{db: db},
		Social:      &sqliteSocialStore{db: db},
		Content:     &sqliteContentStore{db: db},
		closeFn:     db.Close,
	}, nil
}

// connPragmas travel in the DSN so every connection the pool opens gets
// them; pragmas set with Exec only reach the one connection that ran them.
var connPragmas = []string{
	"_pragma=journal_mode(WAL)",
	"_pragma=busy_timeout(5000)",
	"_pragma=synchronous(NORMAL)",
	"_pragma=foreign_keys(1)",
	"_pragma=temp_store(MEMORY)",
}

func openDB(path string) (*sql.DB, error) {
	dsn := "file:" + path + "?" + strings.Join(connPragmas, "&")
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
