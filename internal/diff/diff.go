package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

// Unified renders the change from original to updated as a unified diff with
// git-style a/ and b/ file headers. It returns "" when nothing changed.
func Unified(path, original, updated string) (string, error) {
	if original == updated {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(updated),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	}
	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("failed to render diff for %s: %w", path, err)
	}
	return out, nil
}

// splitLines keeps line terminators and terminates a trailing partial line so
// the last hunk line is printed on its own.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + "\n"
	}
	return lines
}
