// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records extracted ASN.1 modules in a SQLite database so
// they can be listed, searched and exported across extraction runs.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/makarkul/o-ran-ifaces/pkg/types"
)

const (
	dbFile            = "catalog.db"
	defaultMaxResults = 20
)

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates the catalog at cfg.Dir/catalog.db and ensures the
// schema exists.
func Open(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "catalog"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			category TEXT,
			version TEXT,
			status TEXT NOT NULL,
			error TEXT,
			run_id TEXT REFERENCES runs(id)
		)`,
		`CREATE TABLE IF NOT EXISTS modules (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document TEXT NOT NULL REFERENCES documents(path),
			file TEXT NOT NULL,
			category TEXT,
			version TEXT,
			heading TEXT,
			start_line INTEGER,
			end_line INTEGER,
			lines INTEGER,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_modules_document ON modules(document)`,
		`CREATE INDEX IF NOT EXISTS idx_modules_category ON modules(category)`,
		// FTS4 ships with the default go-sqlite3 build; FTS5 needs a build tag.
		`CREATE VIRTUAL TABLE IF NOT EXISTS modules_fts USING fts4(content)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun registers a new extraction run and returns its ID.
func (s *Store) BeginRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// RecordDocument replaces everything known about res.Path with res. The
// modules of a failed document are the regions completed before the
// failure.
func (s *Store) RecordDocument(ctx context.Context, runID string, res types.DocumentResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (path, category, version, status, error, run_id)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			category=excluded.category, version=excluded.version,
			status=excluded.status, error=excluded.error, run_id=excluded.run_id`,
		res.Path, res.ID.Category, res.ID.Version, string(res.Status), res.Error, runID)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM modules_fts WHERE docid IN (SELECT rowid FROM modules WHERE document = ?)`, res.Path,
	); err != nil {
		return fmt.Errorf("deleting old index entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM modules WHERE document = ?`, res.Path); err != nil {
		return fmt.Errorf("deleting old modules: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO modules (document, file, category, version, heading, start_line, end_line, lines, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range res.Regions {
		sr, err := stmt.ExecContext(ctx,
			res.Path, r.File, res.ID.Category, res.ID.Version, r.Heading,
			r.StartLine, r.EndLine, r.Lines, r.Content)
		if err != nil {
			return fmt.Errorf("inserting module %s: %w", r.File, err)
		}
		rowid, err := sr.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading module id: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO modules_fts (docid, content) VALUES (?, ?)`, rowid, r.Content,
		); err != nil {
			return fmt.Errorf("indexing module %s: %w", r.File, err)
		}
	}

	return tx.Commit()
}
