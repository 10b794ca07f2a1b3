package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prefixRewrite(src string) string {
	if strings.HasPrefix(src, "http") {
		return src
	}
	return "file:///base/" + src
}

// ---------------------------------------------------------------------------
// TestRewriteImageSources - Raw HTML blocks
// ---------------------------------------------------------------------------

func TestRewriteImageSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no image is untouched",
			in:   "<div>\n<p>Text</p>\n",
			want: "<div>\n<p>Text</p>\n",
		},
		{
			name: "single image",
			in:   `<img src="a.png">`,
			want: `<img src="file:///base/a.png">`,
		},
		{
			name: "self closing image",
			in:   `<img src="a.png" />`,
			want: `<img src="file:///base/a.png"/>`,
		},
		{
			name: "unbalanced wrapper keeps other bytes",
			in:   "<div align=\"center\">\n<img src=\"logo.png\" width=\"100\">\n",
			want: "<div align=\"center\">\n<img src=\"file:///base/logo.png\" width=\"100\">\n",
		},
		{
			name: "uppercase tag",
			in:   `<P><IMG SRC="a.png"></P>`,
			want: `<P><img src="file:///base/a.png"></P>`,
		},
		{
			name: "unchanged src keeps raw tag",
			in:   `<img   src="https://x/a.png"  alt='logo'>`,
			want: `<img   src="https://x/a.png"  alt='logo'>`,
		},
		{
			name: "image without src",
			in:   `<img alt="none">`,
			want: `<img alt="none">`,
		},
		{
			name: "comment kept",
			in:   "<!-- note --><img src=\"a.png\">",
			want: "<!-- note --><img src=\"file:///base/a.png\">",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteImageSources(tt.in, prefixRewrite)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
