package table

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("read %s: workbook has no sheets", path)
	}
	sheet := sheets[0]

	records, err := f.GetRows(sheet)
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
		sheet:   sheet,
	}, nil
}

func saveXLSX(t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("write %s: %w", t.Path, err)
		}
	}

	if err := f.SetSheetRow(sheet, "A1", rowValues(t.Columns)); err != nil {
		return fmt.Errorf("write %s: %w", t.Path, err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write %s: %w", t.Path, err)
		}
		if err := f.SetSheetRow(sheet, cell, rowValues(row)); err != nil {
			return fmt.Errorf("write %s: %w", t.Path, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.Path), filepath.Base(t.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", t.Path, err)
	}
	defer os.Remove(tmp.Name())

	if err := f.Write(tmp); err != nil {
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

// rowValues adapts a string row to the pointer-to-slice form SetSheetRow expects.
func rowValues(cells []string) *[]interface{} {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return &values
}
