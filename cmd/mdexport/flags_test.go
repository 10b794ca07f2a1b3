package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseConvertFlags([]string{
		"-t", "png",
		"--output-dir", "build",
		"--workspace-root", "/work",
		"--timeout", "30s",
		"--breaks",
		"--style", "a.css",
		"--style", "https://cdn.example.com/b,c.css",
		"--no-default-styles",
		"--no-highlight",
		"--highlight-style", "monokai",
		"--executable-path", "/usr/bin/chromium",
		"--proxy", "http://proxy:3128",
		"--asset-path", "assets",
		"--template", "plain",
		"-c", "work",
		"-q",
		"-v",
		"doc.md", "other.md",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"doc.md", "other.md"}, positional)
	assert.Equal(t, "png", flags.kind)
	assert.Equal(t, "build", flags.outputDir)
	assert.Equal(t, "/work", flags.workspaceRoot)
	assert.Equal(t, "30s", flags.timeout)
	assert.True(t, flags.breaks)
	assert.Equal(t, []string{"a.css", "https://cdn.example.com/b,c.css"}, flags.style.styles)
	assert.True(t, flags.style.noDefaultStyles)
	assert.True(t, flags.style.noHighlight)
	assert.Equal(t, "monokai", flags.style.highlightStyle)
	assert.Equal(t, "/usr/bin/chromium", flags.browser.executablePath)
	assert.Equal(t, "http://proxy:3128", flags.browser.proxy)
	assert.Equal(t, "assets", flags.assets.assetPath)
	assert.Equal(t, "plain", flags.assets.template)
	assert.Equal(t, "work", flags.common.config)
	assert.True(t, flags.common.quiet)
	assert.True(t, flags.common.verbose)
}

func TestParseConvertFlags_Defaults(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseConvertFlags([]string{"doc.md"})
	require.NoError(t, err)

	assert.Equal(t, []string{"doc.md"}, positional)
	assert.Empty(t, flags.kind)
	assert.Empty(t, flags.style.styles)
	assert.False(t, flags.breaks)
	assert.False(t, flags.common.quiet)
}

func TestParseConvertFlags_Unknown(t *testing.T) {
	t.Parallel()

	_, _, err := parseConvertFlags([]string{"--watermark", "DRAFT"})
	assert.Error(t, err)
}
