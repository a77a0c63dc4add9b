package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dkoosis/parity/pkg/pattern"
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Section:
		return t.renderSection(v)
	case *pattern.Notice:
		return t.renderNotice(v)
	case *pattern.Grid:
		return t.renderGrid(v)
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Verdict:
		return t.renderVerdict(v)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSection(s *pattern.Section) string {
	rule := t.theme.Border.Render(strings.Repeat("━", min(t.width, RuleWidth)))
	var title string
	switch s.Kind {
	case pattern.SectionKindTitle, pattern.SectionKindFooter:
		title = t.theme.Bold.Render(t.theme.Primary.Render(s.Title))
	default:
		title = t.theme.Bold.Render(s.Title)
	}
	return rule + "\n" + title + "\n" + rule + "\n"
}

func (t *Terminal) renderNotice(n *pattern.Notice) string {
	var sb strings.Builder
	if n.Label != "" {
		sb.WriteString(t.theme.Bold.Render(n.Label))
		sb.WriteString("\n")
	}
	icon, style := t.iconStyle(n.Kind)
	for i, line := range n.Lines {
		sb.WriteString("  ")
		if i == 0 {
			sb.WriteString(style.Render(icon + " " + line))
		} else {
			sb.WriteString(t.theme.Muted.Render(strings.Repeat(" ", len([]rune(icon))+1) + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderGrid(g *pattern.Grid) string {
	var sb strings.Builder
	if g.Label != "" {
		sb.WriteString(t.theme.Bold.Render(g.Label))
		sb.WriteString("\n")
	}

	cell := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(t.theme.Border).
		Headers(g.Columns...).
		Rows(g.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.theme.Header.Align(lipgloss.Right)
			}
			return cell
		})
	sb.WriteString(tbl.String())
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Bold.Render(s.Label))
		sb.WriteString("\n")
	}
	maxLabel := 0
	for _, m := range s.Metrics {
		maxLabel = max(maxLabel, len(m.Label))
	}
	for _, m := range s.Metrics {
		sb.WriteString("  ")
		icon, style := t.iconStyle(m.Kind)
		sb.WriteString(style.Render(icon + " " + padRight(m.Label+":", maxLabel+1) + " " + m.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderVerdict(v *pattern.Verdict) string {
	icon, style := t.statusIconStyle(v.Status)
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(style.Bold(true).Render(icon + " [" + v.Status + "]"))
	sb.WriteString(" ")
	sb.WriteString(v.Message)
	sb.WriteString("\n")
	for _, d := range v.Details {
		sb.WriteString("    ")
		sb.WriteString(t.theme.Muted.Render(d))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := l.Label
		if l.TotalCount > len(l.Items) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	maxName, maxMetric := 0, 0
	for _, item := range l.Items {
		maxName = max(maxName, len(item.Name))
		maxMetric = max(maxMetric, len(item.Metric))
	}
	if maxName > 40 {
		maxName = 40
	}

	for _, item := range l.Items {
		sb.WriteString("  ")
		if l.ShowRank {
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d. ", item.Rank)))
		}
		name := item.Name
		if len([]rune(name)) > maxName {
			name = string([]rune(name)[:maxName-3]) + "..."
		}
		sb.WriteString(t.theme.Primary.Render(padRight(name, maxName)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(padLeft(item.Metric, maxMetric)))
		if item.Context != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Muted.Render(item.Context))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) iconStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "success":
		return t.theme.Icons.Pass, t.theme.Success
	case "error":
		return t.theme.Icons.Fail, t.theme.Error
	case "warning":
		return t.theme.Icons.Warn, t.theme.Warning
	default:
		return t.theme.Icons.Info, t.theme.Primary
	}
}

func (t *Terminal) statusIconStyle(status string) (string, lipgloss.Style) {
	switch status {
	case "PASS":
		return t.theme.Icons.Pass, t.theme.Success
	case "OK":
		return t.theme.Icons.OK, t.theme.Warning
	case "WARN":
		return t.theme.Icons.Warn, t.theme.Error
	default:
		return t.theme.Icons.Info, t.theme.Muted
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
