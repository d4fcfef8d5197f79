package retree

import (
	"fmt"
	"io"

	"github.com/sokinpui/retree/cli"
	"github.com/sokinpui/retree/internal/rule"
	"github.com/sokinpui/retree/model"
)

// RuleSpec selects a rule and its parameters.
type RuleSpec = rule.Spec

// RuleKind names one of the supported rules.
type RuleKind = rule.Kind

const (
	ImportExtension     = rule.ImportExtension
	LiteralSubstitution = rule.LiteralSubstitution
	QuoteStyle          = rule.QuoteStyle
)

// DefaultRule returns the parameters a rule kind runs with by default.
func DefaultRule(kind RuleKind) RuleSpec {
	return rule.Defaults(kind)
}

// Config for using retree as a library.
type Config struct {
	// Directory to scan.
	Root string
	// Directory names never descended into.
	ExcludeDirs []string
	// Eligible file suffixes (e.g., '.ts', 'tsx').
	Extensions []string
	Rule       RuleSpec
	// Report changes without writing them.
	DryRun bool
	// Abort on the first unreadable file instead of skipping it.
	FailFast bool
}

// Apply runs one rewrite pass over config.Root without printing anything.
// It returns the changed and failed paths in a map.
func Apply(config Config) (map[string][]string, error) {
	cliCfg := &cli.Config{
		Root:        config.Root,
		ExcludeDirs: config.ExcludeDirs,
		Extensions:  cli.NormalizeExtensions(config.Extensions),
		Rule:        config.Rule,
		DryRun:      config.DryRun,
		FailFast:    config.FailFast,
	}

	app, err := New(cliCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize retree app: %w", err)
	}
	app.SetOutput(io.Discard)
	app.SetNotifier(func(model.FileChange) {})

	summary, err := app.Execute()
	if err != nil {
		return nil, err
	}

	result := map[string][]string{
		"Updated": summary.Updated,
		"Failed":  summary.Failed,
	}
	return result, nil
}

// Rewrite applies a rule to content held in memory.
func Rewrite(content string, spec RuleSpec) (string, error) {
	r, err := rule.Compile(spec)
	if err != nil {
		return "", err
	}
	return r.Apply(content), nil
}
