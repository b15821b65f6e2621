package importlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:    testTime,
		File:         "expenses_chat.txt",
		Format:       "chat",
		Transactions: 39,
		Total:        1260,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "expenses_chat.txt", entries[0].File)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.File = "ledger.csv"
	e2.Format = "csv"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "chat", entries[0].Format)
	assert.Equal(t, "csv", entries[1].Format)

	data, err := os.ReadFile(filepath.Join(dir, Path))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.File, got.File)
	assert.Equal(t, original.Format, got.Format)
	assert.Equal(t, original.Transactions, got.Transactions)
	assert.Equal(t, original.Total, got.Total)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Path), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadRow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	content := Header + "\n2026-01-15T10:30:00Z,a.txt,chat,many,10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, Path), []byte(content), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing transactions")
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 fields")
}

func TestTimestampFormat(t *testing.T) {
	e := testEntry()
	e.Timestamp = time.Date(2026, 1, 15, 18, 30, 0, 0, time.FixedZone("MYT", 8*3600))
	row := MarshalEntry(e)
	assert.Equal(t, "2026-01-15T10:30:00Z", row[0])
}

func TestAppend_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestTotals(t *testing.T) {
	e2 := testEntry()
	e2.Transactions = 4
	e2.Total = 205

	n, total := Totals([]Entry{testEntry(), e2})
	assert.Equal(t, 43, n)
	assert.Equal(t, int64(1465), total)

	n, total = Totals(nil)
	assert.Zero(t, n)
	assert.Zero(t, total)
}
