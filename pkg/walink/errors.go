package walink

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn indicates a table lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// MissingColumnError names the required columns absent from a table.
// A table that fails this check is not processed at all.
type MissingColumnError struct {
	Path    string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %s: missing required column(s): %s", e.Path, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}
