package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/retree/model"
)

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	PathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
)

func Header(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, HeaderStyle.Render(fmt.Sprintf(format, a...)))
}

func Info(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, InfoStyle.Render(fmt.Sprintf(format, a...)))
}

func Success(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, SuccessStyle.Render(fmt.Sprintf(format, a...)))
}

func Warning(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, WarningStyle.Render(fmt.Sprintf(format, a...)))
}

func Error(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render(fmt.Sprintf(format, a...)))
}

func Path(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, PathStyle.Render("  "+fmt.Sprintf(format, a...)))
}

// --- Notifications ---

// UpdatedLine formats the per-file notification, e.g.
// "Updated imports in: src/index.ts". An empty description yields
// "Updated: src/index.ts".
func UpdatedLine(dryRun bool, description, path string) string {
	verb := "Updated"
	if dryRun {
		verb = "Would update"
	}
	if description == "" {
		return fmt.Sprintf("%s: %s", verb, path)
	}
	return fmt.Sprintf("%s %s: %s", verb, description, path)
}

// --- Summaries ---

// PrintSummary writes a short recap of a pass to stderr. The per-file lines
// have already gone to stdout by then.
func PrintSummary(s model.Summary) {
	fprintSummary(os.Stderr, s)
}

func fprintSummary(w io.Writer, s model.Summary) {
	fmt.Fprintln(w, HeaderStyle.Render("\n--- Rewrite Summary ---"))
	if s.Message != "" {
		fmt.Fprintln(w, InfoStyle.Render(s.Message))
	}

	verb := "Updated"
	if s.DryRun {
		verb = "Would update"
	}
	fmt.Fprintln(w, InfoStyle.Render(fmt.Sprintf("Scanned %d file(s).", s.Scanned)))
	if len(s.Updated) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No files needed changes."))
	} else {
		fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("%s %d file(s).", verb, len(s.Updated))))
	}
	if len(s.Failed) > 0 {
		fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("Failed to process %d file(s):", len(s.Failed))))
		for _, f := range s.Failed {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}
