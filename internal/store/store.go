// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store saves cleaned metadata tables to a SQLite database so that
// runs can be queried and exported later without reloading the CSV.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/munyokii/cord19-explorer/internal/dataset"
	"github.com/munyokii/cord19-explorer/pkg/types"
)

const dbFile = "cord19.db"

// Store manages the export database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
}

// Open opens or creates cfg.Dir/cord19.db and its schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	path := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, path: path, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			created_at TEXT NOT NULL,
			row_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			row INTEGER NOT NULL,
			title TEXT,
			abstract TEXT,
			journal TEXT,
			publish_time TEXT,
			year INTEGER,
			abstract_word_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, row)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(run_id, year)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_journal ON papers(run_id, journal)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run describes one saved table.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	Source    string    `json:"source" yaml:"source"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	RowCount  int       `json:"row_count" yaml:"row_count"`
}

// SaveSummary reports the outcome of Save.
type SaveSummary struct {
	Run
	Path string `json:"path" yaml:"path"`
}

// Save inserts every row of the cleaned table t under a new run, in a single
// transaction. source names where the table came from.
func (s *Store) Save(ctx context.Context, source string, t dataset.Table) (SaveSummary, error) {
	recs, err := t.Records()
	if err != nil {
		return SaveSummary{}, fmt.Errorf("reading records: %w", err)
	}

	run := Run{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		RowCount:  len(recs),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at, row_count) VALUES (?, ?, ?, ?)`,
		run.ID, run.Source, run.CreatedAt.Format(time.RFC3339), run.RowCount,
	); err != nil {
		return SaveSummary{}, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, row, title, abstract, journal, publish_time, year, abstract_word_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range recs {
		var published sql.NullString
		if r.PublishTime.Valid {
			published = sql.NullString{String: r.PublishTime.Time.Format(types.DateLayout), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			run.ID, i, r.Title, r.Abstract, r.Journal, published, r.Year, r.AbstractWordCount,
		); err != nil {
			return SaveSummary{}, fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveSummary{}, fmt.Errorf("committing run %s: %w", run.ID, err)
	}
	return SaveSummary{Run: run, Path: s.path}, nil
}

// Runs lists saved runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, created_at, row_count FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &r.Source, &created, &r.RowCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// resolveRun returns id, or the most recent run when id is empty.
func (s *Store) resolveRun(ctx context.Context, id string) (Run, error) {
	q := `SELECT id, source, created_at, row_count FROM runs WHERE id = ?`
	args := []any{id}
	if id == "" {
		q = `SELECT id, source, created_at, row_count FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`
		args = nil
	}

	var (
		r       Run
		created string
	)
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&r.ID, &r.Source, &created, &r.RowCount)
	if err == sql.ErrNoRows {
		if id == "" {
			return Run{}, fmt.Errorf("no saved runs")
		}
		return Run{}, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("looking up run: %w", err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return r, nil
}
