package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/parity/pkg/pattern"
)

// RuleWidth is the width of the "=" banner rules.
const RuleWidth = 70

// Plain renders patterns as the classic plain-text parity report: "=" banners,
// "--- Label ---" subsections, two-space indented lines inside a comparison.
// Zero ANSI codes. Leaderboards are omitted.
type Plain struct{}

// NewPlain creates a plain-text renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// plainWriter carries the layout of the current section.
type plainWriter struct {
	sb     strings.Builder
	indent string
	// loose sections separate every block with a blank line.
	loose bool
}

// Render formats all patterns as plain text.
func (p *Plain) Render(patterns []pattern.Pattern) string {
	w := &plainWriter{indent: "  "}
	for _, pt := range patterns {
		switch v := pt.(type) {
		case *pattern.Section:
			w.section(v)
		case *pattern.Notice:
			w.heading(v.Label, w.loose)
			for _, line := range v.Lines {
				w.line(w.indent + line)
			}
		case *pattern.Grid:
			w.heading(v.Label, true)
			for _, line := range gridLines(v) {
				w.line(line)
			}
		case *pattern.Summary:
			w.heading(v.Label, w.loose)
			for _, m := range v.Metrics {
				w.line(w.indent + m.Label + ": " + m.Value)
			}
		case *pattern.Verdict:
			w.line("")
			tag := "[" + v.Status + "] "
			w.line(w.indent + tag + v.Message)
			pad := w.indent + strings.Repeat(" ", len(tag))
			for _, d := range v.Details {
				w.line(pad + d)
			}
		}
	}
	return w.sb.String()
}

func (w *plainWriter) line(s string) {
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

// heading writes "--- label ---" after a blank line. An empty label writes
// only the blank line, and only when blank is set.
func (w *plainWriter) heading(label string, blank bool) {
	if label == "" {
		if blank {
			w.line("")
		}
		return
	}
	w.line("")
	w.line("--- " + label + " ---")
}

func (w *plainWriter) section(s *pattern.Section) {
	rule := strings.Repeat("=", RuleWidth)
	if s.Kind != pattern.SectionKindTitle {
		w.line("")
	}
	w.line(rule)
	w.line(s.Title)
	w.line(rule)

	w.loose = s.Kind == pattern.SectionKindData
	w.indent = "  "
	if w.loose {
		w.indent = ""
	}
}

// gridLines right-aligns every column to its widest cell, header included.
func gridLines(g *pattern.Grid) []string {
	widths := make([]int, len(g.Columns))
	for j, c := range g.Columns {
		widths[j] = runewidth.StringWidth(c)
	}
	for _, row := range g.Rows {
		for j, cell := range row {
			if j < len(widths) {
				widths[j] = max(widths[j], runewidth.StringWidth(cell))
			}
		}
	}

	lines := make([]string, 0, len(g.Rows)+1)
	lines = append(lines, joinAligned(g.Columns, widths))
	for _, row := range g.Rows {
		lines = append(lines, joinAligned(row, widths))
	}
	return lines
}

func joinAligned(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for j, cell := range cells {
		w := 0
		if j < len(widths) {
			w = widths[j]
		}
		parts[j] = runewidth.FillLeft(cell, w)
	}
	return strings.Join(parts, "  ")
}
