package mdext

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Checkbox renders "- [ ]" and "- [x]" list items as checkboxes.
var Checkbox goldmark.Extender = extension.TaskList

type namedHeaders struct{}

// NamedHeaders gives every heading a slug id derived from its text.
// Duplicate slugs get a numeric suffix.
var NamedHeaders goldmark.Extender = &namedHeaders{}

func (e *namedHeaders) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithAutoHeadingID())
}

// headingID returns the id attribute of a heading, or nil.
func headingID(h *ast.Heading) []byte {
	v, ok := h.AttributeString("id")
	if !ok {
		return nil
	}
	id, _ := v.([]byte)
	return id
}

// plainText concatenates the text of n's descendants, skipping markup.
func plainText(n ast.Node, source []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			out = append(out, t.Segment.Value(source)...)
			if t.SoftLineBreak() {
				out = append(out, ' ')
			}
		case *ast.String:
			out = append(out, t.Value...)
		case *ast.CodeSpan:
			out = append(out, plainText(t, source)...)
		default:
			out = append(out, plainText(c, source)...)
		}
	}
	return out
}
