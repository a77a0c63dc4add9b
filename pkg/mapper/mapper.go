// Package mapper converts comparison outcomes into report patterns.
package mapper

import (
	"fmt"
	"math"
	"sort"

	"github.com/dkoosis/parity/pkg/compare"
	"github.com/dkoosis/parity/pkg/pattern"
	"github.com/dkoosis/parity/pkg/table"
)

const (
	kindInfo    = "info"
	kindSuccess = "success"
	kindWarning = "warning"
	kindError   = "error"
)

// leaderboardSize caps the per-column ranking.
const leaderboardSize = 5

// Title opens the report.
func Title(title string) []pattern.Pattern {
	return []pattern.Pattern{&pattern.Section{Title: title, Kind: pattern.SectionKindTitle}}
}

// Footer closes the report.
func Footer() []pattern.Pattern {
	return []pattern.Pattern{&pattern.Section{Title: "COMPARISON COMPLETE", Kind: pattern.SectionKindFooter}}
}

// FromOutcome maps one result comparison, in report order.
func FromOutcome(o *compare.Outcome, th compare.Thresholds) []pattern.Pattern {
	patterns := []pattern.Pattern{
		&pattern.Section{Title: "COMPARISON: " + o.Pair.Label, Kind: pattern.SectionKindComparison},
	}

	switch o.Missing {
	case compare.SidePython:
		return append(patterns, &pattern.Notice{
			Lines: []string{"Python file not found: " + o.Pair.Python, "Run the Python notebook first."},
			Kind:  kindWarning,
		})
	case compare.SideR:
		return append(patterns, &pattern.Notice{
			Lines: []string{"R file not found: " + o.Pair.R, "Run the R script first."},
			Kind:  kindWarning,
		})
	}

	patterns = append(patterns,
		tableGrid("Python Results", o.Python),
		tableGrid("R Results", o.R),
	)

	if o.RowMismatch || o.Difference == nil {
		return append(patterns, &pattern.Notice{
			Label: "Absolute Differences",
			Lines: []string{fmt.Sprintf("Different number of rows: Python=%d, R=%d", o.Python.Rows(), o.R.Rows())},
			Kind:  kindWarning,
		})
	}

	d := o.Difference
	return append(patterns,
		diffGrid(d),
		&pattern.Summary{
			Label: "Summary Statistics",
			Metrics: []pattern.SummaryItem{
				{Label: "Max absolute difference", Value: Fixed(d.MaxAbs, AbsoluteDecimals), Kind: verdictKind(d.Verdict)},
				{Label: "Mean absolute difference", Value: Fixed(d.MeanAbs, AbsoluteDecimals), Kind: kindInfo},
				{Label: "Max relative difference", Value: Percent(d.MaxRel), Kind: kindInfo},
				{Label: "Mean relative difference", Value: Percent(d.MeanRel), Kind: kindInfo},
			},
		},
		columnLeaderboard(d),
		verdict(d.Verdict, th),
	)
}

// FromDataset maps the input dataset comparison, in report order.
func FromDataset(o *compare.DatasetOutcome) []pattern.Pattern {
	patterns := []pattern.Pattern{
		&pattern.Section{Title: "DATA COMPARISON", Kind: pattern.SectionKindData},
	}
	if o.Missing {
		return append(patterns, &pattern.Notice{
			Lines: []string{"Data files not found. Run both Python notebook and R script first."},
			Kind:  kindWarning,
		})
	}

	pr, pc := o.Python.Shape()
	rr, rc := o.R.Shape()
	patterns = append(patterns, &pattern.Summary{
		Metrics: []pattern.SummaryItem{
			{Label: "Python data shape", Value: Shape(pr, pc), Kind: kindInfo},
			{Label: "R data shape", Value: Shape(rr, rc), Kind: kindInfo},
		},
	})
	if o.RowMismatch {
		return patterns
	}

	diffs := &pattern.Summary{}
	for _, d := range o.Diffs {
		kind := kindSuccess
		if !o.Identical {
			kind = kindWarning
		}
		diffs.Metrics = append(diffs.Metrics, pattern.SummaryItem{
			Label: "Max difference in " + d.Name,
			Value: Fixed(d.MaxAbs, DatasetDecimals),
			Kind:  kind,
		})
	}
	patterns = append(patterns, diffs)

	if o.Identical {
		return append(patterns, &pattern.Verdict{
			Status:  string(compare.VerdictPass),
			Message: "Data is identical (using same random seed)",
		})
	}
	return append(patterns, &pattern.Verdict{
		Status:  string(compare.VerdictWarn),
		Message: "Data differs - random number generation may differ between Python and R",
		Details: []string{"This is expected as numpy and R use different RNG algorithms."},
	})
}

func verdict(v compare.Verdict, th compare.Thresholds) *pattern.Verdict {
	switch v {
	case compare.VerdictPass:
		return &pattern.Verdict{Status: string(v), Message: fmt.Sprintf("Results are very similar (max diff < %g)", th.Pass)}
	case compare.VerdictOK:
		return &pattern.Verdict{Status: string(v), Message: fmt.Sprintf("Results are reasonably similar (max diff < %g)", th.OK)}
	default:
		return &pattern.Verdict{Status: string(compare.VerdictWarn), Message: "Results show notable differences"}
	}
}

func verdictKind(v compare.Verdict) string {
	switch v {
	case compare.VerdictPass:
		return kindSuccess
	case compare.VerdictOK:
		return kindWarning
	default:
		return kindError
	}
}

func tableGrid(label string, t *table.Table) *pattern.Grid {
	g := &pattern.Grid{Label: label}
	cells := make([][]string, len(t.Columns))
	for i, c := range t.Columns {
		g.Columns = append(g.Columns, displayName(c.Name, i))
		switch {
		case !c.Numeric():
			cells[i] = FormatText(c.Text)
		case c.Integer:
			cells[i] = FormatIntegers(c.Values)
		default:
			cells[i] = FormatColumn(c.Values, TableDecimals)
		}
	}
	g.Rows = transpose(cells, t.Rows())
	return g
}

func diffGrid(d *compare.Difference) *pattern.Grid {
	rows, _ := d.Absolute.Dims()
	g := &pattern.Grid{Label: "Absolute Differences"}
	cells := make([][]string, len(d.Columns))
	col := make([]float64, rows)
	for j, name := range d.Columns {
		g.Columns = append(g.Columns, displayName(name, j))
		for i := range col {
			col[i] = d.Absolute.At(i, j)
		}
		if d.PerColumn[j].Integer {
			cells[j] = FormatIntegers(col)
		} else {
			cells[j] = FormatColumn(col, TableDecimals)
		}
	}
	g.Rows = transpose(cells, rows)
	return g
}

// displayName labels R's unnamed row-name column the way pandas does.
func displayName(name string, idx int) string {
	if name == "" {
		return fmt.Sprintf("Unnamed: %d", idx)
	}
	return name
}

func transpose(cols [][]string, rows int) [][]string {
	out := make([][]string, rows)
	for i := range out {
		out[i] = make([]string, len(cols))
		for j := range cols {
			out[i][j] = cols[j][i]
		}
	}
	return out
}

// columnLeaderboard ranks common columns by their largest absolute difference.
// NaN ranks first.
func columnLeaderboard(d *compare.Difference) *pattern.Leaderboard {
	stats := append([]compare.ColumnStats(nil), d.PerColumn...)
	sort.SliceStable(stats, func(i, j int) bool {
		a, b := stats[i].MaxAbs, stats[j].MaxAbs
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.IsNaN(a) && !math.IsNaN(b)
		}
		return a > b
	})

	lb := &pattern.Leaderboard{
		Label:      "Largest differences by column",
		MetricName: "Max abs diff",
		TotalCount: len(stats),
		ShowRank:   true,
	}
	for i, s := range stats {
		if i == leaderboardSize {
			break
		}
		lb.Items = append(lb.Items, pattern.LeaderboardItem{
			Name:    s.Name,
			Metric:  Fixed(s.MaxAbs, AbsoluteDecimals),
			Value:   s.MaxAbs,
			Rank:    i + 1,
			Context: "max rel " + Percent(s.MaxRel),
		})
	}
	return lb
}
