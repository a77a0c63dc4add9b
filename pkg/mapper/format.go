package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decimal places used in the report.
const (
	TableDecimals    = 6
	AbsoluteDecimals = 6
	PercentDecimals  = 4
	DatasetDecimals  = 10
)

// Round rounds v to n decimal places, half away from zero.
func Round(v float64, n int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(n))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// Fixed formats v with prec decimals, spelling NaN and Inf in lowercase.
func Fixed(v float64, prec int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Percent formats a ratio as a percentage, e.g. 0.5 → "50.0000%".
func Percent(v float64) string {
	return Fixed(v*100, PercentDecimals) + "%"
}

// Shape formats table dimensions as "(rows, cols)".
func Shape(rows, cols int) string {
	return fmt.Sprintf("(%d, %d)", rows, cols)
}

// FormatColumn rounds a column to maxDecimals and renders every value with
// the same number of decimals: the fewest (at least one) that represent
// each rounded value exactly.
func FormatColumn(values []float64, maxDecimals int) []string {
	rounded := make([]float64, len(values))
	decimals := 1
	for i, v := range values {
		rounded[i] = Round(v, maxDecimals)
		if math.IsNaN(rounded[i]) || math.IsInf(rounded[i], 0) {
			continue
		}
		s := strconv.FormatFloat(rounded[i], 'f', -1, 64)
		if dot := strings.IndexByte(s, '.'); dot >= 0 {
			decimals = max(decimals, len(s)-dot-1)
		}
	}
	decimals = min(decimals, maxDecimals)

	out := make([]string, len(values))
	for i, v := range rounded {
		if math.IsNaN(v) {
			out[i] = "NaN"
			continue
		}
		out[i] = Fixed(v, decimals)
	}
	return out
}

// FormatIntegers renders whole-number columns without decimals.
func FormatIntegers(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'f', 0, 64)
	}
	return out
}

// FormatText renders a text column as read; empty cells show as NaN.
func FormatText(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if strings.TrimSpace(c) == "" {
			out[i] = "NaN"
			continue
		}
		out[i] = c
	}
	return out
}
