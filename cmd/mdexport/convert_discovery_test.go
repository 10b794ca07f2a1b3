package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdexport "github.com/alnah/go-mdexport"
)

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.md":               "# A",
		"b.markdown":         "# B",
		"notes.txt":          "skip",
		"docs/guide.md":      "# Guide",
		"docs/api/ref.MD":    "# Ref",
		".git/HEAD.md":       "hidden",
		"drafts/.cache/x.md": "hidden",
		"docs/img/logo.png":  "png",
	})
	p := func(rel string) string { return filepath.Join(dir, filepath.FromSlash(rel)) }

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "single file",
			args: []string{p("a.md")},
			want: []string{p("a.md")},
		},
		{
			name: "directory walk skips hidden",
			args: []string{dir},
			want: []string{p("a.md"), p("b.markdown"), p("docs/api/ref.MD"), p("docs/guide.md")},
		},
		{
			name: "recursive glob",
			args: []string{p("docs") + "/**/*.md"},
			want: []string{p("docs/guide.md")},
		},
		{
			name: "brace glob",
			args: []string{p("*.{md,markdown,txt}")},
			want: []string{p("a.md"), p("b.markdown")},
		},
		{
			name: "duplicates removed, order kept",
			args: []string{p("b.markdown"), p("a.md"), dir},
			want: []string{p("b.markdown"), p("a.md"), p("docs/api/ref.MD"), p("docs/guide.md")},
		},
		{
			name: "glob without matches",
			args: []string{p("*.rst")},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := discoverFiles(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"notes.txt": "x"})

	_, err := discoverFiles([]string{filepath.Join(dir, "missing.md")})
	assert.ErrorIs(t, err, mdexport.ErrSourceNotFound)

	_, err = discoverFiles([]string{filepath.Join(dir, "notes.txt")})
	assert.ErrorIs(t, err, ErrInvalidExtension)

	_, err = discoverFiles([]string{filepath.Join(dir, "[.md")})
	assert.Error(t, err)
}

func TestIsMarkdownPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.md", true},
		{"dir/b.markdown", true},
		{"UPPER.MD", true},
		{"a.mdx", false},
		{"md", false},
		{"a.txt", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isMarkdownPath(tt.path), tt.path)
	}
}
