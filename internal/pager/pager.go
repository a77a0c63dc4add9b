// Package pager shows a rendered report in a scrollable full-screen view.
package pager

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// footerHeight is the status line below the viewport.
const footerHeight = 1

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// Run pages content until the user quits or ctx is cancelled.
func Run(ctx context.Context, content string, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(newModel(content),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}

type model struct {
	content  string
	viewport viewport.Model
	ready    bool
}

func newModel(content string) model {
	return model{content: content}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := max(msg.Height-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	status := fmt.Sprintf(" %3.0f%%  j/k scroll · q quit", m.viewport.ScrollPercent()*100)
	return m.viewport.View() + "\n" + statusStyle.Render(status)
}
