package retree

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/sokinpui/retree/cli"
	"github.com/sokinpui/retree/internal/diff"
	"github.com/sokinpui/retree/internal/fs"
	"github.com/sokinpui/retree/internal/rule"
	"github.com/sokinpui/retree/internal/ui"
	"github.com/sokinpui/retree/model"
)

// Notifier is called for every file the pass changes, in traversal order.
type Notifier func(change model.FileChange)

// App orchestrates a single rewrite pass.
type App struct {
	cfg      *cli.Config
	rule     rule.Rule
	out      io.Writer
	notifier Notifier
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance. The rule is compiled here so a malformed
// pattern is reported before any file is visited.
func New(cfg *cli.Config) (*App, error) {
	r, err := rule.Compile(cfg.Rule)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:  cfg,
		rule: r,
		out:  os.Stdout,
	}, nil
}

// SetOutput redirects the per-file and completion lines.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// SetNotifier sets a function to be called for every changed file. When a
// notifier is set, skipped files are only reported through the summary.
func (a *App) SetNotifier(n Notifier) {
	a.notifier = n
}

// Execute runs the configured rule over the tree.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	return a.rewriteTree()
}

func (a *App) rewriteTree() (model.Summary, error) {
	summary := model.Summary{DryRun: a.cfg.DryRun}

	err := fs.Walk(a.cfg.Root, a.cfg.ExcludeDirs, a.cfg.Extensions, func(path string, walkErr error) error {
		if walkErr != nil {
			return a.skip(&summary, path, walkErr)
		}
		summary.Scanned++

		change, changed, err := a.rewriteFile(path)
		if err != nil {
			return a.skip(&summary, path, err)
		}
		if changed {
			summary.Updated = append(summary.Updated, path)
			a.report(change)
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	summary.Message = a.rule.Done()
	fmt.Fprintln(a.out, summary.Message)
	return summary, nil
}

// rewriteFile applies the rule to one file and writes it back only when the
// content changed.
func (a *App) rewriteFile(path string) (model.FileChange, bool, error) {
	original, err := fs.ReadText(path)
	if err != nil {
		return model.FileChange{}, false, err
	}

	updated := a.rule.Apply(original)
	if updated == original {
		return model.FileChange{}, false, nil
	}

	if !a.cfg.DryRun {
		if err := fs.WriteText(path, updated); err != nil {
			return model.FileChange{}, false, err
		}
	}

	return model.FileChange{
		Path:        path,
		Original:    original,
		Updated:     updated,
		Description: a.rule.Description(),
	}, true, nil
}

// skip records a file that could not be processed, or aborts the walk in
// fail-fast mode.
func (a *App) skip(summary *model.Summary, path string, err error) error {
	if a.cfg.FailFast {
		return fmt.Errorf("aborting rewrite: %w", err)
	}
	summary.Failed = append(summary.Failed, path)
	if a.notifier == nil {
		ui.Warning("Skipping %s: %v", path, err)
	}
	return nil
}

func (a *App) report(change model.FileChange) {
	fmt.Fprintln(a.out, ui.UpdatedLine(a.cfg.DryRun, change.Description, change.Path))
	if a.cfg.DryRun {
		patch, err := diff.Unified(change.Path, change.Original, change.Updated)
		if err != nil {
			ui.Warning("%v", err)
		} else {
			fmt.Fprint(a.out, patch)
		}
	}
	if a.notifier != nil {
		a.notifier(change)
	}
}
