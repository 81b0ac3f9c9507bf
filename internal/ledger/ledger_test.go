// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slidetext/pkg/types"
)

const testSettings = `structure_backend=mupdf bold_marker="Bold"`

func openTest(t *testing.T) (*Ledger, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := Open(filepath.Join(dir, "state", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, dir
}

func writeFile(t *testing.T, path, content string) os.FileInfo {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info
}

func TestUnchanged_UnknownDocument(t *testing.T) {
	l, dir := openTest(t)
	info := writeFile(t, filepath.Join(dir, "lec01.pdf"), "pdf")

	ok, err := l.Unchanged(context.Background(), "lec01.pdf", info, testSettings)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnchanged_AfterSuccess(t *testing.T) {
	ctx := context.Background()
	l, dir := openTest(t)
	path := filepath.Join(dir, "lec01.pdf")
	info := writeFile(t, path, "pdf")

	require.NoError(t, l.Record(ctx, path, info, testSettings, types.DocumentResult{Status: types.StatusProcessed}))

	ok, err := l.Unchanged(ctx, path, info, testSettings)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnchanged_ContentChanged(t *testing.T) {
	ctx := context.Background()
	l, dir := openTest(t)
	path := filepath.Join(dir, "lec01.pdf")
	info := writeFile(t, path, "pdf")
	require.NoError(t, l.Record(ctx, path, info, testSettings, types.DocumentResult{Status: types.StatusProcessed}))

	writeFile(t, path, "pdf, revised")
	later := info.ModTime().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))
	info2, err := os.Stat(path)
	require.NoError(t, err)

	ok, err := l.Unchanged(ctx, path, info2, testSettings)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnchanged_AfterFailure(t *testing.T) {
	ctx := context.Background()
	l, dir := openTest(t)
	path := filepath.Join(dir, "broken.pdf")
	info := writeFile(t, path, "not a pdf")

	require.NoError(t, l.Record(ctx, path, info, testSettings, types.DocumentResult{
		Status:    types.StatusFailed,
		ErrorKind: types.ErrorStructure,
		Error:     "decoding broken.pdf: malformed PDF",
	}))

	ok, err := l.Unchanged(ctx, path, info, testSettings)
	require.NoError(t, err)
	assert.False(t, ok, "failed documents are retried")
}

func TestRecord_SkippedLeavesRow(t *testing.T) {
	ctx := context.Background()
	l, dir := openTest(t)
	path := filepath.Join(dir, "lec01.pdf")
	info := writeFile(t, path, "pdf")

	require.NoError(t, l.Record(ctx, path, info, testSettings, types.DocumentResult{Status: types.StatusProcessed}))
	require.NoError(t, l.Record(ctx, path, info, testSettings, types.DocumentResult{Status: types.StatusSkipped}))

	entries, err := l.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.StatusProcessed, entries[0].Status)
}

func TestEntries(t *testing.T) {
	ctx := context.Background()
	l, dir := openTest(t)

	b := filepath.Join(dir, "b.pdf")
	a := filepath.Join(dir, "a.pdf")
	require.NoError(t, l.Record(ctx, b, writeFile(t, b, "bb"), testSettings, types.DocumentResult{
		Status:    types.StatusFailed,
		ErrorKind: types.ErrorNumeralRange,
		Error:     "numeral out of range",
	}))
	require.NoError(t, l.Record(ctx, a, writeFile(t, a, "a"), testSettings, types.DocumentResult{Status: types.StatusProcessed}))

	entries, err := l.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, a, entries[0].Path)
	assert.Equal(t, int64(1), entries[0].Size)
	assert.Empty(t, entries[0].Error)

	assert.Equal(t, b, entries[1].Path)
	assert.Equal(t, types.StatusFailed, entries[1].Status)
	assert.Equal(t, types.ErrorNumeralRange, entries[1].ErrorKind)
	assert.Equal(t, "numeral out of range", entries[1].Error)
	assert.False(t, entries[1].ProcessedAt.IsZero())
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ledger.db")
	path := filepath.Join(dir, "lec01.pdf")
	info := writeFile(t, path, "pdf")

	l, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, l.Record(ctx, path, info, testSettings, types.DocumentResult{Status: types.StatusProcessed}))
	require.NoError(t, l.Close())

	l, err = Open(dbPath)
	require.NoError(t, err)
	defer l.Close()

	ok, err := l.Unchanged(ctx, path, info, testSettings)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnchanged_SettingsChanged(t *testing.T) {
	ctx := context.Background()
	l, dir := openTest(t)
	path := filepath.Join(dir, "lec01.pdf")
	info := writeFile(t, path, "pdf")
	require.NoError(t, l.Record(ctx, path, info, testSettings, types.DocumentResult{Status: types.StatusProcessed}))

	ok, err := l.Unchanged(ctx, path, info, `structure_backend=rows bold_marker="Bold"`)
	require.NoError(t, err)
	assert.False(t, ok, "a different backend invalidates the transcript")

	ok, err = l.Unchanged(ctx, path, info, `structure_backend=mupdf bold_marker="Heavy"`)
	require.NoError(t, err)
	assert.False(t, ok, "a different bold marker invalidates the transcript")

	entries, err := l.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testSettings, entries[0].Settings)
}

func TestOpen_AddsSettingsColumn(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ledger.db")

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE documents (
		path TEXT PRIMARY KEY,
		mod_time TEXT NOT NULL,
		size INTEGER NOT NULL,
		status TEXT NOT NULL,
		error_kind TEXT,
		error TEXT,
		processed_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	l, err := Open(dbPath)
	require.NoError(t, err)
	defer l.Close()

	path := filepath.Join(dir, "lec01.pdf")
	info := writeFile(t, path, "pdf")
	require.NoError(t, l.Record(ctx, path, info, testSettings, types.DocumentResult{Status: types.StatusProcessed}))

	ok, err := l.Unchanged(ctx, path, info, testSettings)
	require.NoError(t, err)
	assert.True(t, ok)
}
