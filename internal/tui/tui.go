package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/retree/internal/diff"
	"github.com/sokinpui/retree/internal/ui"
	"github.com/sokinpui/retree/model"
	"github.com/sokinpui/retree/retree"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// --- Messages ---

// ChangeMsg reports one changed file while the pass is still running.
type ChangeMsg struct {
	model.FileChange
}

type summaryMsg struct {
	model.Summary
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// --- Model ---
type Model struct {
	app     *retree.App
	dryRun  bool
	spinner spinner.Model
	state   state
	changed int
	// lines holds the per-file output, printed above the final view on exit.
	lines   []string
	summary summaryMsg
	err     error
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

func New(app *retree.App, dryRun bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		app:     app,
		dryRun:  dryRun,
		spinner: s,
		state:   stateProcessing,
	}
}

// Err returns the error the pass ended with, if any.
func (m Model) Err() error {
	return m.err
}

// Summary returns the result of a completed pass.
func (m Model) Summary() model.Summary {
	return m.summary.Summary
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case ChangeMsg:
		m.changed++
		m.lines = append(m.lines, changeLines(m.dryRun, msg.FileChange))
		return m, nil

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg
		return m, m.flushAndQuit()

	case errorMsg:
		m.state = stateError
		m.err = msg.err
		return m, m.flushAndQuit()

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// flushAndQuit prints the buffered per-file lines and only then quits, so
// none of them is dropped by the shutdown.
func (m Model) flushAndQuit() tea.Cmd {
	if len(m.lines) == 0 {
		return tea.Quit
	}
	return tea.Sequence(tea.Println(strings.Join(m.lines, "\n")), tea.Quit)
}

// changeLines formats the notification for one file and, in a dry run, the
// diff that would be applied.
func changeLines(dryRun bool, change model.FileChange) string {
	line := ui.UpdatedLine(dryRun, change.Description, change.Path)
	if !dryRun {
		return line
	}
	patch, err := diff.Unified(change.Path, change.Original, change.Updated)
	if err != nil {
		return line + "\n" + errorStyle.Render(err.Error())
	}
	return line + "\n" + strings.TrimSuffix(patch, "\n")
}

func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		return fmt.Sprintf("%s Rewriting... %d file(s) changed", m.spinner.View(), m.changed)
	case stateError:
		return errorStyle.Render("Error: ", m.err.Error()) + "\n"
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m *Model) renderSummary() string {
	var b strings.Builder

	if m.summary.Message != "" {
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n\n")
	}

	label := "Updated:"
	if m.summary.DryRun {
		label = "Would update:"
	}

	hasContent := false
	if len(m.summary.Updated) > 0 {
		hasContent = true
		b.WriteString(successStyle.Render(label))
		b.WriteString("\n")
		for _, f := range m.summary.Updated {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(f)))
		}
	}
	if len(m.summary.Failed) > 0 {
		hasContent = true
		b.WriteString(errorStyle.Render("Failed:"))
		b.WriteString("\n")
		for _, f := range m.summary.Failed {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(f)))
		}
	}

	if !hasContent {
		b.WriteString(faintStyle.Render(fmt.Sprintf("Scanned %d file(s). Nothing to do.", m.summary.Scanned)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) runApp() tea.Msg {
	summary, err := m.app.Execute()
	if err != nil {
		// Check for detailed error to print stack
		var detailed *retree.DetailedError
		if errors.As(err, &detailed) {
			// The TUI will exit, so we can print to stderr here for the stack trace.
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		return errorMsg{err}
	}
	return summaryMsg{
		Summary: summary,
	}
}
