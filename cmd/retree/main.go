package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sokinpui/retree/cli"
	"github.com/sokinpui/retree/internal/tui"
	"github.com/sokinpui/retree/internal/ui"
	"github.com/sokinpui/retree/model"
	"github.com/sokinpui/retree/retree"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		// pflag already prints flag syntax errors.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app, err := retree.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if cfg.Interactive {
		os.Exit(runInteractive(app, cfg))
	}

	summary, err := app.Execute()
	if err != nil {
		var detailed *retree.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		ui.Error("Error: %v", err)
		os.Exit(1)
	}
	if len(summary.Failed) > 0 {
		ui.PrintSummary(summary)
		os.Exit(1)
	}
}

func runInteractive(app *retree.App, cfg *cli.Config) int {
	m := tui.New(app, cfg.DryRun)
	p := tea.NewProgram(m)

	app.SetOutput(io.Discard)
	app.SetNotifier(func(change model.FileChange) {
		p.Send(tui.ChangeMsg{FileChange: change})
	})

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	result, ok := final.(tui.Model)
	if !ok || result.Err() != nil || len(result.Summary().Failed) > 0 {
		return 1
	}
	return 0
}
