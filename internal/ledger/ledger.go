// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records processed documents in SQLite so repeated runs over
// the same input directory can skip PDFs that have not changed since their
// last successful transcript.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/slidetext/pkg/types"
)

// Ledger is a handle on the ledger database. It is safe for concurrent use.
type Ledger struct {
	db *sql.DB
}

// Entry is one recorded document.
type Entry struct {
	Path        string
	ModTime     time.Time
	Size        int64
	Settings    string
	Status      types.DocumentStatus
	ErrorKind   types.ErrorKind
	Error       string
	ProcessedAt time.Time
}

// Open opens or creates the ledger database at path, creating the parent
// directory when needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	// Workers record concurrently; a single connection serializes writes.
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	if _, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		path TEXT PRIMARY KEY,
		mod_time TEXT NOT NULL,
		size INTEGER NOT NULL,
		settings TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		error_kind TEXT,
		error TEXT,
		processed_at TEXT NOT NULL
	)`); err != nil {
		return err
	}

	// Ledgers written before settings were tracked lack the column.
	var n int
	if err := l.db.QueryRow(
		`SELECT count(*) FROM pragma_table_info('documents') WHERE name = 'settings'`,
	).Scan(&n); err != nil {
		return fmt.Errorf("checking settings column: %w", err)
	}
	if n == 0 {
		if _, err := l.db.Exec(`ALTER TABLE documents ADD COLUMN settings TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("adding settings column: %w", err)
		}
	}
	return nil
}

// Unchanged reports whether path was last processed successfully with the
// same modification time and size as info, under the same settings. The
// settings string identifies every option that changes a transcript, so a
// new bold marker or structure backend forces reprocessing.
func (l *Ledger) Unchanged(ctx context.Context, path string, info fs.FileInfo, settings string) (bool, error) {
	var (
		modTime, stored string
		size            int64
		status          string
	)
	err := l.db.QueryRowContext(ctx,
		`SELECT mod_time, size, settings, status FROM documents WHERE path = ?`, path,
	).Scan(&modTime, &size, &stored, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up %s: %w", path, err)
	}

	return status == string(types.StatusProcessed) &&
		modTime == formatTime(info.ModTime()) &&
		size == info.Size() &&
		stored == settings, nil
}

// Record stores the outcome of processing path under settings. A skipped
// document leaves the existing row untouched.
func (l *Ledger) Record(ctx context.Context, path string, info fs.FileInfo, settings string, res types.DocumentResult) error {
	if res.Status == types.StatusSkipped {
		return nil
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO documents (path, mod_time, size, settings, status, error_kind, error, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			mod_time=excluded.mod_time, size=excluded.size, settings=excluded.settings,
			status=excluded.status, error_kind=excluded.error_kind, error=excluded.error,
			processed_at=excluded.processed_at`,
		path, formatTime(info.ModTime()), info.Size(), settings, string(res.Status),
		string(res.ErrorKind), res.Error, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", path, err)
	}
	return nil
}

// Entries returns every recorded document ordered by path.
func (l *Ledger) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT path, mod_time, size, settings, status, COALESCE(error_kind, ''), COALESCE(error, ''), processed_at
		 FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			modTime, processedAt string
			status, kind         string
		)
		if err := rows.Scan(&e.Path, &modTime, &e.Size, &e.Settings, &status, &kind, &e.Error, &processedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.Status = types.DocumentStatus(status)
		e.ErrorKind = types.ErrorKind(kind)
		e.ModTime, _ = time.Parse(time.RFC3339Nano, modTime)
		e.ProcessedAt, _ = time.Parse(time.RFC3339Nano, processedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
