package walink

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/contactforge/walink/pkg/walink/table"
)

func newObservedProcessor(t *testing.T) (*Processor, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewProcessor(DefaultOptions(), zap.New(core)), logs
}

func contactsTable(rows ...[]string) *table.Table {
	return &table.Table{
		Path:    "contacts.csv",
		Columns: []string{"Name", "Phone 1 - Value", "Notes", "Website 1 - Value"},
		Rows:    rows,
	}
}

func TestProcessTable(t *testing.T) {
	proc, _ := newObservedProcessor(t)
	tbl := contactsTable(
		[]string{"Asha", "9876543210", "friend", ""},
		[]string{"Ravi", "+91 98765 43210", "work", "https://example.com"},
		[]string{"Meena", "09876543210", "", ""},
	)

	stats, err := proc.ProcessTable(tbl)
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 3, Updated: 3}, stats)
	for _, row := range tbl.Rows {
		assert.Equal(t, "https://wa.me/919876543210", row[3])
	}
	// Non-target cells pass through untouched.
	assert.Equal(t, "friend", tbl.Rows[0][2])
	assert.Equal(t, "+91 98765 43210", tbl.Rows[1][1])
}

func TestProcessTableBlanksUnusableRows(t *testing.T) {
	proc, logs := newObservedProcessor(t)
	tbl := contactsTable(
		[]string{"Asha", "12345", "", "https://wa.me/911112223334"},
		[]string{"Ravi", "", "", "stale"},
	)

	stats, err := proc.ProcessTable(tbl)
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 2, Skipped: 2}, stats)
	assert.Empty(t, tbl.Rows[0][3], "stale link should be cleared")
	assert.Empty(t, tbl.Rows[1][3])

	warns := logs.FilterLevelExact(zapcore.WarnLevel)
	require.Equal(t, 2, warns.Len())
	entry := warns.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "Asha", fields["name"])
	assert.Equal(t, "12345", fields["raw"])
	assert.Equal(t, int64(1), fields["row"])
}

func TestProcessTableTruncatesLongNumbers(t *testing.T) {
	proc, logs := newObservedProcessor(t)
	tbl := contactsTable(
		[]string{"Asha", "00919876543210", "", ""},
	)

	stats, err := proc.ProcessTable(tbl)
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 1, Updated: 1, Truncated: 1}, stats)
	assert.Equal(t, "https://wa.me/919876543210", tbl.Rows[0][3])
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestProcessTableMissingColumns(t *testing.T) {
	proc, _ := newObservedProcessor(t)
	tbl := &table.Table{
		Path:    "broken.csv",
		Columns: []string{"Name", "Email"},
		Rows:    [][]string{{"Asha", "asha@example.com"}},
	}

	_, err := proc.ProcessTable(tbl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"Phone 1 - Value", "Website 1 - Value"}, missing.Columns)

	// The table itself must be untouched.
	assert.Equal(t, "asha@example.com", tbl.Rows[0][1])
}

func TestProcessTableIdempotent(t *testing.T) {
	proc, _ := newObservedProcessor(t)
	tbl := contactsTable(
		[]string{"Asha", "9876543210", "", ""},
		[]string{"Ravi", "12345", "", ""},
	)

	first, err := proc.ProcessTable(tbl)
	require.NoError(t, err)
	want := [][]string{
		{"Asha", "9876543210", "", "https://wa.me/919876543210"},
		{"Ravi", "12345", "", ""},
	}
	assert.Equal(t, want, tbl.Rows)

	second, err := proc.ProcessTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, want, tbl.Rows)
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunUpdatesFiles(t *testing.T) {
	proc, logs := newObservedProcessor(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "contacts.csv",
		"Name,Phone 1 - Value,Website 1 - Value\nAsha,+91 98765 43210,\n")

	require.NoError(t, proc.Run(table.DirLister(dir)))

	tbl, err := table.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/919876543210", tbl.Rows[0][2])
	assert.Equal(t, 1, logs.FilterMessage("table updated").Len())
}

func TestRunIsolatesFailedFiles(t *testing.T) {
	proc, logs := newObservedProcessor(t)
	dir := t.TempDir()
	badContent := "Name,Email\nAsha,asha@example.com\n"
	bad := writeCSV(t, dir, "a_broken.csv", badContent)
	good := writeCSV(t, dir, "b_contacts.csv",
		"Name,Phone 1 - Value,Website 1 - Value\nRavi,9876543210,\n")

	err := proc.Run(table.DirLister(dir))
	require.Error(t, err)
	assert.EqualError(t, err, "1 of 2 tables failed")

	// The broken file is byte-identical on disk.
	raw, readErr := os.ReadFile(bad)
	require.NoError(t, readErr)
	assert.Equal(t, badContent, string(raw))

	// The good file was still processed.
	tbl, loadErr := table.Load(good)
	require.NoError(t, loadErr)
	assert.Equal(t, "https://wa.me/919876543210", tbl.Rows[0][2])

	errorLogs := logs.FilterLevelExact(zapcore.ErrorLevel)
	require.Equal(t, 1, errorLogs.Len())
	assert.True(t, errors.Is(errorLogs.All()[0].ContextMap()["error"].(error), ErrMissingColumn))
}

func TestRunEmptyDirectory(t *testing.T) {
	proc, logs := newObservedProcessor(t)

	require.NoError(t, proc.Run(table.DirLister(t.TempDir())))
	assert.Equal(t, 1, logs.FilterMessage("no tables found").Len())
}

func TestRunListerFailure(t *testing.T) {
	proc, _ := newObservedProcessor(t)

	err := proc.Run(table.DirLister(filepath.Join(t.TempDir(), "missing")))
	require.Error(t, err)
}

func TestRunFixedLister(t *testing.T) {
	proc, _ := newObservedProcessor(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "contacts.csv",
		"Name,Phone 1 - Value,Website 1 - Value\nAsha,9876543210,\n")

	require.NoError(t, proc.Run(table.FixedLister(path)))

	tbl, err := table.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/919876543210", tbl.Rows[0][2])
}

func TestCustomOptions(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	proc := NewProcessor(Options{
		SourceColumn: "Mobile",
		TargetColumn: "Chat",
		CountryCode:  "91",
	}, zap.New(core))

	tbl := &table.Table{
		Path:    "custom.csv",
		Columns: []string{"Mobile", "Chat"},
		Rows:    [][]string{{"9876543210", ""}},
	}
	stats, err := proc.ProcessTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, "https://wa.me/919876543210", tbl.Rows[0][1])
}
