// Package table loads, rewrites and saves tabular contact exports.
package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoHeader indicates a table file with no header row.
var ErrNoHeader = errors.New("table has no header row")

// Table is one tabular file held fully in memory. Column order is preserved
// from load to save, and rows are padded to header width on load so column
// lookups stay in range.
type Table struct {
	Path    string
	Columns []string
	Rows    [][]string

	sheet string // source worksheet name, xlsx only
}

// ColumnIndex returns the index of the named column, or -1.
// Column names are exact, case-sensitive strings.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Load reads a tabular file, dispatching on the file extension.
func Load(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported table format %q: %s", ext, path)
	}
}

// Save rewrites the table's file in place. Data goes to a temporary file in
// the same directory which is then renamed over the original, so a crash
// mid-write leaves the previous contents intact.
func Save(t *Table) error {
	switch ext := strings.ToLower(filepath.Ext(t.Path)); ext {
	case ".csv":
		return saveCSV(t)
	case ".xlsx":
		return saveXLSX(t)
	default:
		return fmt.Errorf("unsupported table format %q: %s", ext, t.Path)
	}
}

// A Lister enumerates candidate table files. Tests substitute a fixed list.
type Lister func() ([]string, error)

// DirLister lists the *.csv and *.xlsx files directly inside dir, sorted by
// name. Subdirectories are not entered.
func DirLister(dir string) Lister {
	return func() ([]string, error) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var paths []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".csv", ".xlsx":
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(paths)
		return paths, nil
	}
}

// FixedLister yields the given paths as-is.
func FixedLister(paths ...string) Lister {
	return func() ([]string, error) {
		return paths, nil
	}
}

func padRows(columns []string, rows [][]string) [][]string {
	for i, row := range rows {
		for len(row) < len(columns) {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}
