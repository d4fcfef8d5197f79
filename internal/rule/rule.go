package rule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies one of the supported transformation rules.
type Kind string

const (
	ImportExtension     Kind = "import-extension"
	LiteralSubstitution Kind = "literal-substitution"
	QuoteStyle          Kind = "quote-style"
)

// Kinds lists every supported rule kind in display order.
var Kinds = []Kind{ImportExtension, LiteralSubstitution, QuoteStyle}

const (
	DefaultExtension = ".js"
	DefaultOld       = "http://localhost:8080"
	DefaultNew       = "process.env.VITE_API_URL"
	DefaultMarker    = `\$\{import\.meta\.env\.`
	DefaultQuote     = "`"
)

// ParseKind converts a rule name into a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return "", fmt.Errorf("unknown rule %q (expected one of: %s)", name, strings.Join(names, ", "))
}

// Spec holds a rule kind together with its parameters. Only the parameters
// relevant to Kind are read.
type Spec struct {
	Kind Kind
	// Extension is appended to relative import paths (import-extension).
	Extension string
	// Old and New are the literals swapped by literal-substitution.
	Old string
	New string
	// Marker is a regular expression the quoted content must start with (quote-style).
	Marker string
	// Quote replaces the surrounding single quotes (quote-style).
	Quote string
}

// Defaults returns the spec a rule kind runs with when no parameter is overridden.
func Defaults(kind Kind) Spec {
	return Spec{
		Kind:      kind,
		Extension: DefaultExtension,
		Old:       DefaultOld,
		New:       DefaultNew,
		Marker:    DefaultMarker,
		Quote:     DefaultQuote,
	}
}

// Rule is a pure content transformation.
type Rule interface {
	// Apply returns the transformed content. It never fails.
	Apply(content string) string
	// Description names what the rule updates, e.g. "imports in".
	Description() string
	// Done is the line printed once a pass with this rule has completed.
	Done() string
}

// PatternError reports a rule whose parameters cannot be compiled.
type PatternError struct {
	Kind  Kind
	Param string
	Err   error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s rule: %s: %v", e.Kind, e.Param, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Compile validates a spec and builds its rule.
func Compile(spec Spec) (Rule, error) {
	switch spec.Kind {
	case ImportExtension:
		return newImportRule(spec)
	case LiteralSubstitution:
		return newLiteralRule(spec)
	case QuoteStyle:
		return newQuoteRule(spec)
	default:
		return nil, &PatternError{Kind: spec.Kind, Param: "kind", Err: errors.New("unknown rule kind")}
	}
}

// --- import-extension ---

// importRegex matches an import statement line up to and including the
// closing quote of a relative source path.
var importRegex = regexp.MustCompile(`(?m)^([ \t]*import\s.*from\s+)(['"])(\.\.?/[^'"\n]*)(['"])`)

type importRule struct {
	ext string
}

func newImportRule(spec Spec) (Rule, error) {
	ext := spec.Extension
	switch {
	case ext == "":
		return nil, &PatternError{Kind: spec.Kind, Param: "extension", Err: errors.New("must not be empty")}
	case !strings.HasPrefix(ext, "."):
		return nil, &PatternError{Kind: spec.Kind, Param: "extension", Err: fmt.Errorf("%q must start with '.'", ext)}
	case strings.ContainsAny(ext, "'\"` \t\n"):
		return nil, &PatternError{Kind: spec.Kind, Param: "extension", Err: fmt.Errorf("%q contains a quote or whitespace", ext)}
	}
	return &importRule{ext: ext}, nil
}

func (r *importRule) Apply(content string) string {
	return importRegex.ReplaceAllStringFunc(content, func(match string) string {
		groups := importRegex.FindStringSubmatch(match)
		prefix, open, path, closing := groups[1], groups[2], groups[3], groups[4]
		if open != closing || strings.HasSuffix(path, r.ext) {
			return match
		}
		return prefix + open + path + r.ext + closing
	})
}

func (r *importRule) Description() string { return "imports in" }

func (r *importRule) Done() string { return "Done updating relative imports." }

// --- literal-substitution ---

type literalRule struct {
	old, new string
}

func newLiteralRule(spec Spec) (Rule, error) {
	if spec.Old == "" {
		return nil, &PatternError{Kind: spec.Kind, Param: "old", Err: errors.New("must not be empty")}
	}
	return &literalRule{old: spec.Old, new: spec.New}, nil
}

func (r *literalRule) Apply(content string) string {
	return strings.ReplaceAll(content, r.old, r.new)
}

// Description is empty so notifications read "Updated: <path>".
func (r *literalRule) Description() string { return "" }

func (r *literalRule) Done() string {
	return fmt.Sprintf("Done replacing %s with %s.", r.old, r.new)
}

// --- quote-style ---

type quoteRule struct {
	re    *regexp.Regexp
	quote string
}

func newQuoteRule(spec Spec) (Rule, error) {
	if spec.Marker == "" {
		return nil, &PatternError{Kind: spec.Kind, Param: "marker", Err: errors.New("must not be empty")}
	}
	if _, err := regexp.Compile(spec.Marker); err != nil {
		return nil, &PatternError{Kind: spec.Kind, Param: "marker", Err: err}
	}
	if spec.Quote == "" {
		return nil, &PatternError{Kind: spec.Kind, Param: "quote", Err: errors.New("must not be empty")}
	}
	// Escaped characters, including \', stay inside the literal.
	re, err := regexp.Compile(`'(?:` + spec.Marker + `)(?:[^'\\\n]|\\.)*'`)
	if err != nil {
		return nil, &PatternError{Kind: spec.Kind, Param: "marker", Err: err}
	}
	return &quoteRule{re: re, quote: spec.Quote}, nil
}

func (r *quoteRule) Apply(content string) string {
	return r.re.ReplaceAllStringFunc(content, func(match string) string {
		inner := match[1 : len(match)-1]
		// Re-quoting would terminate the literal early.
		if strings.Contains(inner, r.quote) {
			return match
		}
		return r.quote + inner + r.quote
	})
}

func (r *quoteRule) Description() string { return "quotes in" }

func (r *quoteRule) Done() string { return "Done converting quotes." }
