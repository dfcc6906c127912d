package walink

import (
	"fmt"

	"github.com/contactforge/walink/pkg/walink/phone"
	"github.com/contactforge/walink/pkg/walink/table"
	"go.uber.org/zap"
)

// nameColumn, when present, identifies rows in diagnostics.
const nameColumn = "Name"

// Stats summarizes one processed table.
type Stats struct {
	// Rows is the total number of data rows.
	Rows int
	// Updated counts rows whose target cell received a link.
	Updated int
	// Truncated counts updated rows that needed the last-10-digits fallback.
	Truncated int
	// Skipped counts rows with an unusable phone value.
	Skipped int
}

// Processor rewrites the target column of contact tables.
type Processor struct {
	opts Options
	log  *zap.Logger
}

// NewProcessor creates a processor. A nil logger disables diagnostics.
func NewProcessor(opts Options, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{opts: opts, log: log}
}

// contact is one row viewed through the columns the transform touches.
// The backing row slice is shared with the table, so only the target cell
// is ever written; every other cell passes through untouched.
type contact struct {
	name     string
	rawPhone string
	row      []string
	target   int
}

func (c contact) setLink(link string) {
	c.row[c.target] = link
}

// ProcessTable normalizes the source column of every row and writes the
// resulting link into the target column. Rows whose phone value is unusable
// get an empty target cell, so the target column is always a pure function
// of the source column and reruns are idempotent.
//
// Both required columns are checked up front; if either is absent the table
// is returned unmodified with a *MissingColumnError.
func (p *Processor) ProcessTable(t *table.Table) (Stats, error) {
	src := t.ColumnIndex(p.opts.SourceColumn)
	dst := t.ColumnIndex(p.opts.TargetColumn)

	var missing []string
	if src < 0 {
		missing = append(missing, p.opts.SourceColumn)
	}
	if dst < 0 {
		missing = append(missing, p.opts.TargetColumn)
	}
	if len(missing) > 0 {
		return Stats{}, &MissingColumnError{Path: t.Path, Columns: missing}
	}

	nameIdx := t.ColumnIndex(nameColumn)

	stats := Stats{Rows: len(t.Rows)}
	for i, row := range t.Rows {
		c := contact{rawPhone: row[src], row: row, target: dst}
		if nameIdx >= 0 {
			c.name = row[nameIdx]
		}

		res, err := phone.Normalize(c.rawPhone)
		if err != nil {
			c.setLink("")
			stats.Skipped++
			p.log.Warn("skipping row with unusable phone value",
				zap.String("file", t.Path),
				zap.Int("row", i+1),
				zap.String("name", c.name),
				zap.String("raw", c.rawPhone),
				zap.Error(err),
			)
			continue
		}
		if res.Truncated {
			stats.Truncated++
			p.log.Warn("unexpected phone format, kept last 10 digits",
				zap.String("file", t.Path),
				zap.Int("row", i+1),
				zap.String("name", c.name),
				zap.String("raw", c.rawPhone),
				zap.String("normalized", res.Number),
			)
		}
		c.setLink(phone.Link(p.opts.CountryCode, res.Number))
		stats.Updated++
	}

	return stats, nil
}

// Run loads, transforms and saves every table the lister yields. Files are
// isolated from each other: a table that fails to load, fails the column
// check or fails to save is logged and left as it was on disk, and the
// remaining files still run. The returned error is non-nil iff at least one
// file failed; row-level problems are warnings and never fail the run.
func (p *Processor) Run(list table.Lister) error {
	paths, err := list()
	if err != nil {
		return fmt.Errorf("discover tables: %w", err)
	}
	if len(paths) == 0 {
		p.log.Info("no tables found")
		return nil
	}
	p.log.Info("found tables", zap.Strings("files", paths))

	failed := 0
	for _, path := range paths {
		if err := p.processFile(path); err != nil {
			failed++
			p.log.Error("table failed", zap.String("file", path), zap.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tables failed", failed, len(paths))
	}
	return nil
}

func (p *Processor) processFile(path string) error {
	t, err := table.Load(path)
	if err != nil {
		return err
	}
	stats, err := p.ProcessTable(t)
	if err != nil {
		return err
	}
	if err := table.Save(t); err != nil {
		return err
	}
	p.log.Info("table updated",
		zap.String("file", path),
		zap.Int("rows", stats.Rows),
		zap.Int("updated", stats.Updated),
		zap.Int("truncated", stats.Truncated),
		zap.Int("skipped", stats.Skipped),
	)
	return nil
}
