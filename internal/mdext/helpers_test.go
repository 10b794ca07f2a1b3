package mdext

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// convert renders source with the given extensions and raw HTML enabled.
func convert(t *testing.T, source string, exts ...goldmark.Extender) string {
	t.Helper()

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(source), &buf))
	return buf.String()
}

// parse returns the AST of source with the given extensions.
func parse(source string, exts ...goldmark.Extender) ast.Node {
	md := goldmark.New(goldmark.WithExtensions(exts...))
	return md.Parser().Parse(text.NewReader([]byte(source)))
}
