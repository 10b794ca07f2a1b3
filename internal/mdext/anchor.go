package mdext

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindPermalink identifies heading permalinks.
var KindPermalink = ast.NewNodeKind("Permalink")

// AnchorOptions configures header anchors.
type AnchorOptions struct {
	Permalink       bool
	PermalinkSymbol string // defaults to ¶
}

// Permalink is a link to its parent heading.
type Permalink struct {
	ast.BaseInline
	ID     []byte
	Symbol string
}

func (n *Permalink) Kind() ast.NodeKind { return KindPermalink }

func (n *Permalink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": string(n.ID)}, nil)
}

type anchorTransformer struct {
	opts AnchorOptions
}

// Transform makes headings with an id focusable and optionally appends a
// permalink.
func (t *anchorTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id := headingID(h)
		if id == nil {
			return ast.WalkSkipChildren, nil
		}
		h.SetAttributeString("tabindex", []byte("-1"))
		if t.opts.Permalink {
			h.AppendChild(h, &Permalink{ID: id, Symbol: t.opts.PermalinkSymbol})
		}
		return ast.WalkSkipChildren, nil
	})
}

type permalinkRenderer struct{}

func (r *permalinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindPermalink, r.render)
}

func (r *permalinkRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Permalink)
	_, _ = w.WriteString(` <a class="header-anchor" href="#`)
	_, _ = w.Write(util.EscapeHTML(n.ID))
	_, _ = w.WriteString(`" aria-hidden="true">`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Symbol)))
	_, _ = w.WriteString("</a>")
	return ast.WalkSkipChildren, nil
}

type anchor struct {
	opts AnchorOptions
}

// NewAnchor returns the header anchor extension. It must run after the
// TOC transformer so permalinks stay out of TOC titles.
func NewAnchor(opts AnchorOptions) goldmark.Extender {
	if opts.PermalinkSymbol == "" {
		opts.PermalinkSymbol = "¶"
	}
	return &anchor{opts: opts}
}

func (e *anchor) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&anchorTransformer{opts: e.opts}, 200),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&permalinkRenderer{}, 500),
	))
}
