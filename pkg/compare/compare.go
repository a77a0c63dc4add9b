package compare

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dkoosis/parity/pkg/table"
)

// Side names one of the two ecosystems.
type Side string

const (
	SidePython Side = "python"
	SideR      Side = "r"
)

// Pair is one Python/R result comparison.
type Pair struct {
	Label  string `yaml:"label"`
	Python string `yaml:"python"`
	R      string `yaml:"r"`
}

// DatasetPair names the shared input datasets and the columns to check.
type DatasetPair struct {
	Python  string   `yaml:"python"`
	R       string   `yaml:"r"`
	Columns []string `yaml:"columns"`
}

// Outcome is the result of comparing one Pair.
type Outcome struct {
	Pair Pair

	// Missing is set when a file was absent; nothing else is populated.
	// The Python file is checked first.
	Missing Side

	Python *table.Table
	R      *table.Table

	// RowMismatch is set when both tables loaded but differ in length.
	RowMismatch bool

	Difference *Difference
}

// DatasetOutcome is the result of comparing the two input datasets.
type DatasetOutcome struct {
	Pair DatasetPair

	// Missing is set when either file was absent.
	Missing bool

	Python *table.Table
	R      *table.Table

	RowMismatch bool

	// Diffs holds the max absolute difference per column, in Pair.Columns order.
	Diffs     []ColumnDiff
	Identical bool
}

// ColumnDiff is the maximum absolute difference in one dataset column.
type ColumnDiff struct {
	Name   string
	MaxAbs float64
}

// Comparator runs comparisons with a fixed set of thresholds.
type Comparator struct {
	th  Thresholds
	log *zap.SugaredLogger
}

// New creates a Comparator. A nil logger discards diagnostics.
func New(th Thresholds, log *zap.SugaredLogger) *Comparator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Comparator{th: th, log: log}
}

// Thresholds returns the tolerances in use.
func (c *Comparator) Thresholds() Thresholds { return c.th }

// Files compares a Python result file against its R counterpart.
// Missing files and row-count mismatches are reported in the Outcome;
// an error means a file could not be read or parsed.
func (c *Comparator) Files(pair Pair) (*Outcome, error) {
	out := &Outcome{Pair: pair}

	if !table.Exists(pair.Python) {
		c.log.Debugw("skip comparison", "label", pair.Label, "missing", pair.Python)
		out.Missing = SidePython
		return out, nil
	}
	if !table.Exists(pair.R) {
		c.log.Debugw("skip comparison", "label", pair.Label, "missing", pair.R)
		out.Missing = SideR
		return out, nil
	}

	var err error
	if out.Python, err = table.Load(pair.Python); err != nil {
		return nil, fmt.Errorf("%s: %w", pair.Label, err)
	}
	if out.R, err = table.Load(pair.R); err != nil {
		return nil, fmt.Errorf("%s: %w", pair.Label, err)
	}
	c.log.Debugw("loaded tables", "label", pair.Label,
		"python_rows", out.Python.Rows(), "r_rows", out.R.Rows())

	d, err := Diff(out.Python, out.R, c.th)
	switch {
	case errors.Is(err, ErrRowMismatch):
		c.log.Debugw("row count mismatch", "label", pair.Label, "err", err)
		out.RowMismatch = true
		return out, nil
	case err != nil:
		return nil, fmt.Errorf("%s: %w", pair.Label, err)
	}
	c.log.Debugw("compared", "label", pair.Label, "max_abs", d.MaxAbs, "verdict", d.Verdict)
	out.Difference = d
	return out, nil
}

// Datasets compares the two generated input datasets column by column.
func (c *Comparator) Datasets(pair DatasetPair) (*DatasetOutcome, error) {
	out := &DatasetOutcome{Pair: pair}

	if !table.Exists(pair.Python) || !table.Exists(pair.R) {
		c.log.Debugw("skip dataset comparison", "python", pair.Python, "r", pair.R)
		out.Missing = true
		return out, nil
	}

	var err error
	if out.Python, err = table.Load(pair.Python); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if out.R, err = table.Load(pair.R); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	if out.Python.Rows() != out.R.Rows() {
		out.RowMismatch = true
		return out, nil
	}
	if err := out.Python.Numeric(pair.Columns...); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if err := out.R.Numeric(pair.Columns...); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	out.Identical = true
	for _, name := range pair.Columns {
		pc, _ := out.Python.Column(name)
		rc, _ := out.R.Column(name)
		d, err := MaxAbsDiff(pc.Values, rc.Values)
		if err != nil {
			return nil, fmt.Errorf("dataset column %q: %w", name, err)
		}
		out.Diffs = append(out.Diffs, ColumnDiff{Name: name, MaxAbs: d})
		if !(d < c.th.DatasetTolerance) {
			out.Identical = false
		}
	}
	c.log.Debugw("compared datasets", "identical", out.Identical)
	return out, nil
}

// CompareFiles compares one pair with a throwaway Comparator.
func CompareFiles(pair Pair, th Thresholds) (*Outcome, error) {
	return New(th, nil).Files(pair)
}

// CompareDatasets compares the input datasets with a throwaway Comparator.
func CompareDatasets(pair DatasetPair, th Thresholds) (*DatasetOutcome, error) {
	return New(th, nil).Datasets(pair)
}
