package mdext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// TestTableOfContents - Placeholder replacement
// ---------------------------------------------------------------------------

func TestTableOfContents(t *testing.T) {
	t.Parallel()

	t.Run("nested headings", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "[toc]\n\n# A\n\n## A1\n\n### A1a\n\n## A2\n\n# B\n", NamedHeaders, TableOfContents)

		want := `<nav class="table-of-contents"><ol>` +
			`<li><a href="#a">A</a><ol>` +
			`<li><a href="#a1">A1</a><ol><li><a href="#a1a">A1a</a></li></ol></li>` +
			`<li><a href="#a2">A2</a></li>` +
			`</ol></li>` +
			`<li><a href="#b">B</a></li>` +
			`</ol></nav>`
		assert.Contains(t, got, want)
	})

	t.Run("placeholder spellings", func(t *testing.T) {
		t.Parallel()

		for _, marker := range []string{"[toc]", "[TOC]", "[[toc]]", "[[_toc_]]", "${toc}"} {
			got := convert(t, marker+"\n\n# A\n", NamedHeaders, TableOfContents)
			assert.Contains(t, got, `<nav class="table-of-contents">`, "marker %q", marker)
			assert.NotContains(t, got, "toc]", "marker %q", marker)
		}
	})

	t.Run("placeholder split from paragraph", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "[toc]\nintro text\n\n# A\n", NamedHeaders, TableOfContents)

		nav := strings.Index(got, "<nav")
		intro := strings.Index(got, "<p>intro text</p>")
		require.GreaterOrEqual(t, nav, 0)
		require.Greater(t, intro, nav)
		assert.NotContains(t, got, "[toc]")
	})

	t.Run("every placeholder is replaced", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "[toc]\n\n# A\n\n[toc]\n", NamedHeaders, TableOfContents)
		assert.Equal(t, 2, strings.Count(got, "<nav"))
	})

	t.Run("placeholder in sentence is text", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "see [toc] here\n\n# A\n", NamedHeaders, TableOfContents)
		assert.NotContains(t, got, "<nav")
		assert.Contains(t, got, "see [toc] here")
	})

	t.Run("no headings", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "[toc]\n\ntext\n", NamedHeaders, TableOfContents)
		assert.Contains(t, got, `<nav class="table-of-contents"><ol></ol></nav>`)
	})

	t.Run("titles are plain text", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "[toc]\n\n# Use `go` *now*\n", NamedHeaders, TableOfContents)
		assert.Contains(t, got, `">Use go now</a>`)
	})

	t.Run("titles are escaped", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "[toc]\n\n# a < b\n", NamedHeaders, TableOfContents)
		assert.Contains(t, got, `">a &lt; b</a>`)
	})
}
