package cli_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/retree/cli"
	"github.com/sokinpui/retree/internal/rule"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := cli.ParseArgs(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "./server/src", cfg.Root)
	assert.Empty(t, cfg.ExcludeDirs)
	assert.Equal(t, []string{".ts", ".js"}, cfg.Extensions)
	assert.Equal(t, rule.ImportExtension, cfg.Rule.Kind)
	assert.Equal(t, ".js", cfg.Rule.Extension)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.FailFast)
}

func TestParseArgsLiteralDefaults(t *testing.T) {
	cfg, err := cli.ParseArgs([]string{"-r", "literal-substitution"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "./client", cfg.Root)
	assert.Equal(t, []string{"node_modules", ".git", "dist"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{".ts", ".tsx", ".js", ".jsx"}, cfg.Extensions)
	assert.Equal(t, "http://localhost:8080", cfg.Rule.Old)
	assert.Equal(t, "process.env.VITE_API_URL", cfg.Rule.New)
}

func TestParseArgsOverrides(t *testing.T) {
	cfg, err := cli.ParseArgs([]string{
		"--rule", "quote-style",
		"--root", "web",
		"-x", "vendor,build",
		"-e", "vue", "-e", ".svelte",
		"--marker", `\$\{env\.`,
		"--dry-run",
		"--fail-fast",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "web", cfg.Root)
	assert.Equal(t, []string{"vendor", "build"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{".vue", ".svelte"}, cfg.Extensions)
	assert.Equal(t, rule.QuoteStyle, cfg.Rule.Kind)
	assert.Equal(t, `\$\{env\.`, cfg.Rule.Marker)
	assert.Equal(t, "`", cfg.Rule.Quote)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.FailFast)
}

func TestParseArgsErrors(t *testing.T) {
	_, err := cli.ParseArgs([]string{"--rule", "rename"}, io.Discard)
	assert.ErrorContains(t, err, "unknown rule")

	_, err = cli.ParseArgs([]string{"--no-such-flag"}, io.Discard)
	assert.Error(t, err)

	_, err = cli.ParseArgs([]string{"stray"}, io.Discard)
	assert.ErrorContains(t, err, "unexpected arguments")
}

func TestNormalizeExtensions(t *testing.T) {
	assert.Equal(t, []string{".ts", ".js"}, cli.NormalizeExtensions([]string{"ts", "", ".js"}))
}
