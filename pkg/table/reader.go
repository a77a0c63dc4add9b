package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load parses a result table from disk.
func Load(path string) (*Table, error) {
	// #nosec G304 -- paths come from the comparison plan
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	return Read(f, path)
}

// ReadBytes parses a result table from a byte slice.
func ReadBytes(data []byte, name string) (*Table, error) {
	return Read(bytes.NewReader(data), name)
}

// Read parses a result table from r. name is used in error messages and
// recorded as the table's Path.
func Read(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // checked below so the error names the row

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}

	columns := make([]Column, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if seen[h] {
			return nil, fmt.Errorf("%s: %w %q", name, ErrDuplicateColumn, h)
		}
		seen[h] = true
		columns[i].Name = h
	}

	cells := make([][]string, len(header))
	// Row numbers are 1-based data rows; the header is row 0.
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", name, row, err)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, header has %d: %w",
				name, row, len(rec), len(header), ErrRagged)
		}
		for i, cell := range rec {
			cells[i] = append(cells[i], cell)
		}
	}

	for i := range columns {
		typeColumn(&columns[i], cells[i])
	}
	return &Table{Path: name, Columns: columns}, nil
}

// typeColumn stores raw as numbers when every cell parses, and as text
// otherwise.
func typeColumn(c *Column, raw []string) {
	values := make([]float64, len(raw))
	integer := len(raw) > 0
	for i, cell := range raw {
		v, err := parseCell(cell)
		if err != nil {
			c.Text = raw
			return
		}
		values[i] = v
		if integer {
			_, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
			integer = err == nil
		}
	}
	c.Values = values
	c.Integer = integer
}

// parseCell follows pandas read_csv defaults for missing values. NaN and Inf
// spellings are handled by strconv.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "N/A", "NULL":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
