package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // exports occasionally carry ragged rows

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: %w", path, ErrNoHeader)
	}

	return &Table{
		Path:    path,
		Columns: records[0],
		Rows:    padRows(records[0], records[1:]),
	}, nil
}

func saveCSV(t *Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(t.Path), filepath.Base(t.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", t.Path, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", t.Path, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", t.Path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", t.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", t.Path, err)
	}
	if err := os.Rename(tmp.Name(), t.Path); err != nil {
		return fmt.Errorf("replace %s: %w", t.Path, err)
	}
	return nil
}
