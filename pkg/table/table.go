// Package table loads result tables: CSV files with a header row. Columns
// whose cells all parse as numbers hold float64 values; any other column keeps
// its raw text and is rejected only where a numeric comparison needs it.
package table

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrEmpty is returned for a file without a header row.
	ErrEmpty = errors.New("no header row")
	// ErrNonNumeric is returned by Numeric for a text cell in a column that
	// must be compared numerically.
	ErrNonNumeric = errors.New("non-numeric cell")
	// ErrRagged is returned when a row has a different field count than the header.
	ErrRagged = errors.New("row length differs from header")
	// ErrDuplicateColumn is returned when the header names a column twice.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrMissingColumn is returned by Require for an absent column.
	ErrMissingColumn = errors.New("missing column")
)

// Column is a named sequence of values. Exactly one of Values and Text is
// populated: Text holds the raw cells of a column that is not entirely numeric.
type Column struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values,omitempty"`
	Text   []string  `json:"text,omitempty"`

	// Integer is set when every cell was a whole number written without a
	// decimal point or exponent, and none was missing.
	Integer bool `json:"integer,omitempty"`
}

// Numeric reports whether the column parsed as numbers.
func (c Column) Numeric() bool { return c.Text == nil }

// Len returns the number of cells.
func (c Column) Len() int {
	if c.Text != nil {
		return len(c.Text)
	}
	return len(c.Values)
}

// Table is a rectangular set of columns in header order.
type Table struct {
	Path    string   `json:"path"`
	Columns []Column `json:"columns"`
}

// New builds a table from columns. All columns must have the same length.
func New(path string, columns ...Column) (*Table, error) {
	t := &Table{Path: path}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Name] {
			return nil, fmt.Errorf("%s: %w %q", path, ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = true
		if len(t.Columns) > 0 && c.Len() != t.Columns[0].Len() {
			return nil, fmt.Errorf("%s: column %q: %w", path, c.Name, ErrRagged)
		}
		t.Columns = append(t.Columns, c)
	}
	return t, nil
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return t.Rows(), len(t.Columns)
}

// Names returns the column names in header order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Require checks that every named column is present.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if _, ok := t.Column(n); !ok {
			return fmt.Errorf("%s: %w %q", t.Path, ErrMissingColumn, n)
		}
	}
	return nil
}

// Numeric checks that every named column is present and numeric. The error
// names the first offending cell.
func (t *Table) Numeric(names ...string) error {
	if err := t.Require(names...); err != nil {
		return err
	}
	for _, n := range names {
		c, _ := t.Column(n)
		if c.Numeric() {
			continue
		}
		for i, cell := range c.Text {
			if _, err := parseCell(cell); err != nil {
				return fmt.Errorf("%s: row %d, column %q: %w %q", t.Path, i+1, n, ErrNonNumeric, cell)
			}
		}
	}
	return nil
}

// CommonColumns returns the names present in both tables, in a's order.
func CommonColumns(a, b *Table) []string {
	var common []string
	for _, c := range a.Columns {
		if _, ok := b.Column(c.Name); ok {
			common = append(common, c.Name)
		}
	}
	return common
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
