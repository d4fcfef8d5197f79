package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/sokinpui/retree/internal/rule"
)

// Config holds all the command-line flag values.
type Config struct {
	Root        string
	ExcludeDirs []string
	Extensions  []string
	Rule        rule.Spec
	DryRun      bool
	FailFast    bool
	Interactive bool
}

// Defaults holds the traversal settings a rule runs with when the matching
// flags are not given.
type Defaults struct {
	Root        string
	ExcludeDirs []string
	Extensions  []string
}

var webExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// RuleDefaults returns the traversal defaults for a rule kind.
func RuleDefaults(kind rule.Kind) Defaults {
	switch kind {
	case rule.ImportExtension:
		return Defaults{
			Root:       "./server/src",
			Extensions: []string{".ts", ".js"},
		}
	default:
		return Defaults{
			Root:        "./client",
			ExcludeDirs: []string{"node_modules", ".git", "dist"},
			Extensions:  append([]string(nil), webExtensions...),
		}
	}
}

// ParseFlags parses os.Args using pflag.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:], os.Stderr)
}

// ParseArgs defines and parses command-line flags using pflag. Usage and
// parse errors are written to output.
func ParseArgs(args []string, output io.Writer) (*Config, error) {
	flags := pflag.NewFlagSet("retree", pflag.ContinueOnError)
	flags.SetOutput(output)

	var (
		ruleName string
		root     string
		exclude  []string
		exts     []string
		cfg      = &Config{}
		spec     = rule.Spec{}
	)

	// Define flags
	flags.StringVarP(&ruleName, "rule", "r", string(rule.ImportExtension), "Rule to apply: import-extension, literal-substitution or quote-style.")
	flags.StringVar(&root, "root", "", "Directory to scan (default depends on the rule).")
	flags.StringSliceVarP(&exclude, "exclude", "x", nil, "Directory names to skip entirely (default depends on the rule).")
	flags.StringSliceVarP(&exts, "extension", "e", nil, "Eligible file extensions (e.g., 'ts', 'tsx'; default depends on the rule).")
	flags.StringVar(&spec.Extension, "target-ext", rule.DefaultExtension, "import-extension: extension appended to relative import paths.")
	flags.StringVar(&spec.Old, "old", rule.DefaultOld, "literal-substitution: literal to replace.")
	flags.StringVar(&spec.New, "new", rule.DefaultNew, "literal-substitution: replacement literal.")
	flags.StringVar(&spec.Marker, "marker", rule.DefaultMarker, "quote-style: regular expression the quoted content must start with.")
	flags.StringVar(&spec.Quote, "quote", rule.DefaultQuote, "quote-style: quote that replaces the single quotes.")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Print the diff of every change without writing any file.")
	flags.BoolVar(&cfg.FailFast, "fail-fast", false, "Abort on the first file that cannot be read or written.")
	flags.BoolVarP(&cfg.Interactive, "interactive", "i", false, "Show a spinner while running and a styled summary afterwards.")

	flags.Usage = func() {
		fmt.Fprintln(output, "Usage: retree [flags]")
		fmt.Fprintln(output, "\nRewrite source files in place with one text substitution rule.")
		fmt.Fprintln(output, "\nExample: retree -r literal-substitution --root ./client --old http://localhost:8080 --new process.env.VITE_API_URL")
		fmt.Fprintln(output, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	kind, err := rule.ParseKind(ruleName)
	if err != nil {
		return nil, err
	}
	spec.Kind = kind
	cfg.Rule = spec

	defaults := RuleDefaults(kind)
	cfg.Root = defaults.Root
	if flags.Changed("root") {
		cfg.Root = root
	}
	cfg.ExcludeDirs = defaults.ExcludeDirs
	if flags.Changed("exclude") {
		cfg.ExcludeDirs = exclude
	}
	cfg.Extensions = defaults.Extensions
	if flags.Changed("extension") {
		cfg.Extensions = NormalizeExtensions(exts)
	}

	return cfg, nil
}

// NormalizeExtensions prefixes a dot to extensions given without one.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
