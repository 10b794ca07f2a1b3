package mdext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// TestAnchor - Heading anchors and permalinks
// ---------------------------------------------------------------------------

func TestAnchor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts AnchorOptions
		want string
	}{
		{
			name: "tabindex only",
			opts: AnchorOptions{},
			want: `<h2 id="setup" tabindex="-1">Setup</h2>`,
		},
		{
			name: "permalink with default symbol",
			opts: AnchorOptions{Permalink: true},
			want: `<h2 id="setup" tabindex="-1">Setup <a class="header-anchor" href="#setup" aria-hidden="true">¶</a></h2>`,
		},
		{
			name: "permalink with custom symbol",
			opts: AnchorOptions{Permalink: true, PermalinkSymbol: "#"},
			want: `<a class="header-anchor" href="#setup" aria-hidden="true">#</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convert(t, "## Setup\n", NamedHeaders, NewAnchor(tt.opts))
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestAnchor_WithoutIDs(t *testing.T) {
	t.Parallel()

	got := convert(t, "## Setup\n", NewAnchor(AnchorOptions{Permalink: true}))
	assert.Equal(t, "<h2>Setup</h2>\n", got)
}

func TestAnchor_KeepsPermalinkOutOfTOC(t *testing.T) {
	t.Parallel()

	got := convert(t, "[toc]\n\n# Setup\n", NamedHeaders, TableOfContents, NewAnchor(AnchorOptions{Permalink: true}))
	assert.Contains(t, got, `<li><a href="#setup">Setup</a></li>`)
}
