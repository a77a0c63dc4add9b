// Package compare computes element-wise differences between Python and R
// result tables and classifies how closely they match.
package compare

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dkoosis/parity/pkg/table"
)

var (
	// ErrRowMismatch is returned by Diff when the tables differ in length.
	ErrRowMismatch = errors.New("different number of rows")
	// ErrNoCommonColumns is returned by Diff when the tables share no column.
	ErrNoCommonColumns = errors.New("no common columns")
	// ErrNoRows is returned when there are no cells to compare.
	ErrNoRows = errors.New("no rows to compare")
)

// Difference holds the cell-wise comparison over the common columns.
type Difference struct {
	Columns []string

	// Absolute and Relative are rows × len(Columns).
	Absolute *mat.Dense
	Relative *mat.Dense

	MaxAbs  float64
	MeanAbs float64
	MaxRel  float64
	MeanRel float64

	PerColumn []ColumnStats
	Verdict   Verdict
}

// ColumnStats summarizes one common column.
type ColumnStats struct {
	Name    string
	MaxAbs  float64
	MeanAbs float64
	MaxRel  float64

	// Integer is set when both inputs hold whole numbers.
	Integer bool
}

// Diff compares py against the reference r over their common columns.
// Only the common columns must be numeric; the rest are ignored.
func Diff(py, r *table.Table, th Thresholds) (*Difference, error) {
	if py.Rows() != r.Rows() {
		return nil, fmt.Errorf("%w: python=%d, r=%d", ErrRowMismatch, py.Rows(), r.Rows())
	}
	cols := table.CommonColumns(py, r)
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s vs %s: %w", py.Path, r.Path, ErrNoCommonColumns)
	}
	if py.Rows() == 0 {
		return nil, fmt.Errorf("%s vs %s: %w", py.Path, r.Path, ErrNoRows)
	}
	if err := py.Numeric(cols...); err != nil {
		return nil, err
	}
	if err := r.Numeric(cols...); err != nil {
		return nil, err
	}

	a := dense(py, cols)
	b := dense(r, cols)

	abs := &mat.Dense{}
	abs.Sub(a, b)
	abs.Apply(func(_, _ int, v float64) float64 { return math.Abs(v) }, abs)

	rel := &mat.Dense{}
	rel.Apply(func(i, j int, v float64) float64 {
		return v / floor(math.Abs(b.At(i, j)), th.RelativeFloor)
	}, abs)

	d := &Difference{
		Columns:  cols,
		Absolute: abs,
		Relative: rel,
		MaxAbs:   maxOf(abs.RawMatrix().Data),
		MeanAbs:  meanOf(abs.RawMatrix().Data),
		MaxRel:   maxOf(rel.RawMatrix().Data),
		MeanRel:  meanOf(rel.RawMatrix().Data),
	}
	for j, name := range cols {
		absCol := mat.Col(nil, j, abs)
		pc, _ := py.Column(name)
		rc, _ := r.Column(name)
		d.PerColumn = append(d.PerColumn, ColumnStats{
			Name:    name,
			MaxAbs:  maxOf(absCol),
			MeanAbs: meanOf(absCol),
			MaxRel:  maxOf(mat.Col(nil, j, rel)),
			Integer: pc.Integer && rc.Integer,
		})
	}
	d.Verdict = Classify(d.MaxAbs, th)
	return d, nil
}

// dense lays out the named columns of t as a rows × len(cols) matrix.
func dense(t *table.Table, cols []string) *mat.Dense {
	m := mat.NewDense(t.Rows(), len(cols), nil)
	for j, name := range cols {
		c, _ := t.Column(name)
		m.SetCol(j, c.Values)
	}
	return m
}

// floor keeps NaN so that missing reference values stay visible.
func floor(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

// maxOf propagates NaN; floats.Max skips it.
func maxOf(s []float64) float64 {
	if floats.HasNaN(s) {
		return math.NaN()
	}
	return floats.Max(s)
}

func meanOf(s []float64) float64 {
	return floats.Sum(s) / float64(len(s))
}

// MaxAbsDiff returns the largest |a[i] - b[i]|. Both slices must be the same
// non-zero length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrRowMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, ErrNoRows
	}
	d := make([]float64, len(a))
	floats.SubTo(d, a, b)
	for i, v := range d {
		d[i] = math.Abs(v)
	}
	return maxOf(d), nil
}
