// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package tui renders migration progress in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/similigh/shadowissues/internal/core/migrate"
)

// Brand color
var (
	primaryColor = lipgloss.Color("#ff7300")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	activeStepStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	doneStepStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStepStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// visibleRows is how many issue rows are shown around the current one.
const visibleRows = 10

// IssueStatusMsg indicates a status update for one source issue.
type IssueStatusMsg struct {
	ID      int
	Status  string // "started", "created", "closed", "skipped", "error"
	Message string
}

// ResultMsg indicates the final result.
type ResultMsg struct {
	Success bool
	Output  string
}

// Model for the TUI.
type Model struct {
	title      string
	spinner    spinner.Model
	ids        []int
	current    int
	status     map[int]string // source id -> status
	logs       []string
	quitting   bool
	aborted    bool
	err        error
	statusChan <-chan IssueStatusMsg
}

// NewModel creates a new TUI model for the given source issue ids.
func NewModel(title string, ids []int, statusChan <-chan IssueStatusMsg) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		title:      title,
		spinner:    s,
		ids:        ids,
		current:    0,
		status:     make(map[int]string),
		statusChan: statusChan,
	}
}

// Aborted reports whether the user quit before the run finished.
func (m Model) Aborted() bool {
	return m.aborted
}

// Err returns the failure reported by the run, if any.
func (m Model) Err() error {
	return m.err
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			m.aborted = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case IssueStatusMsg:
		m.status[msg.ID] = msg.Status
		if msg.Message != "" {
			m.logs = append(m.logs, fmt.Sprintf("[%s] issue %d: %s", time.Now().Format("15:04:05"), msg.ID, msg.Message))
		}

		for i, id := range m.ids {
			if id == msg.ID {
				m.current = i
				break
			}
		}

		if msg.Status == "error" {
			m.err = fmt.Errorf("issue %d failed: %s", msg.ID, msg.Message)
		}

		return m, m.waitForActivity()

	case ResultMsg:
		// Print the final output before quitting so the user can see the result
		if msg.Output != "" {
			fmt.Println("\n" + msg.Output)
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.statusChan
		if !ok {
			return ResultMsg{Success: m.err == nil}
		}
		return msg
	}
}

// Counts returns how many issues reached each status.
func (m Model) Counts() map[string]int {
	counts := make(map[string]int)
	for _, s := range m.status {
		counts[s]++
	}
	return counts
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")

	start := m.current - visibleRows/2
	if start < 0 {
		start = 0
	}
	end := start + visibleRows
	if end > len(m.ids) {
		end = len(m.ids)
	}

	for i := start; i < end; i++ {
		id := m.ids[i]
		status := m.status[id]

		prefix := "  "
		style := stepStyle

		if i == m.current {
			prefix = m.spinner.View() + " "
			style = activeStepStyle
		}

		switch status {
		case "created", "closed":
			prefix = "✓ "
			style = doneStepStyle
		case "error":
			prefix = "✗ "
			style = errorStepStyle
		case "skipped":
			prefix = "○ "
			style = stepStyle.Faint(true)
		}

		label := fmt.Sprintf("issue %d", id)
		if status != "" && status != "started" {
			label += " (" + status + ")"
		}
		s.WriteString(style.Render(fmt.Sprintf("%s%s\n", prefix, label)))
	}

	counts := m.Counts()
	fmt.Fprintf(&s, "\n%d/%d processed, %d skipped\n",
		counts["created"]+counts["closed"]+counts["skipped"], len(m.ids), counts["skipped"])

	s.WriteString("\nLogs:\n")
	// Show last 5 logs
	first := 0
	if len(m.logs) > 5 {
		first = len(m.logs) - 5
	}
	for _, log := range m.logs[first:] {
		s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render(log) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStepStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render("\nPress q to quit\n"))

	return s.String()
}

// Reporter forwards engine events to ch as status messages. The caller
// closes ch once the run returns.
func Reporter(ch chan<- IssueStatusMsg) migrate.Reporter {
	return migrate.ReporterFunc(func(ev migrate.Event) {
		msg := IssueStatusMsg{ID: ev.SourceID, Status: string(ev.Kind)}
		switch ev.Kind {
		case migrate.EventSkipped:
			msg.Message = fmt.Sprintf("target issue number would be %d, skipping", ev.Expected)
		case migrate.EventCreated:
			msg.Message = fmt.Sprintf("created %s", targetRef(ev))
		case migrate.EventClosed:
			msg.Message = fmt.Sprintf("closed %s", targetRef(ev))
		case migrate.EventFailed:
			msg.Status = "error"
			if ev.Err != nil {
				msg.Message = ev.Err.Error()
			}
		}
		ch <- msg
	})
}

func targetRef(ev migrate.Event) string {
	if ev.Target == nil {
		return fmt.Sprintf("#%d", ev.Expected)
	}
	if ev.Target.URL != "" {
		return ev.Target.URL
	}
	return fmt.Sprintf("#%d", ev.Target.Number)
}
