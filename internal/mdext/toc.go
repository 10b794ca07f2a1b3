package mdext

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindTOC identifies table of contents nodes.
var KindTOC = ast.NewNodeKind("TOC")

// tocPlaceholder matches [toc], [[toc]], [[_toc_]] and ${toc}, in any case.
var tocPlaceholder = regexp.MustCompile(`(?i)^(\$\{toc\}|\[\[?_?toc_?\]?\])$`)

// TOCItem is a heading listed in the table of contents.
type TOCItem struct {
	Level    int
	ID       []byte
	Title    []byte
	Children []*TOCItem
}

// TOC is a block replacing a placeholder paragraph.
type TOC struct {
	ast.BaseBlock
	Items []*TOCItem
}

func (n *TOC) Kind() ast.NodeKind { return KindTOC }

func (n *TOC) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type tocTransformer struct{}

// Transform replaces placeholder paragraphs with TOC nodes. A placeholder
// on the first line of a longer paragraph is split off.
func (t *tocTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var placeholders []*ast.Paragraph
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if p, ok := n.(*ast.Paragraph); ok {
			if p.Lines().Len() > 0 && isPlaceholder(p.Lines().At(0), source) {
				placeholders = append(placeholders, p)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if len(placeholders) == 0 {
		return
	}

	items := collectHeadings(doc, source)
	for _, p := range placeholders {
		toc := &TOC{Items: items}
		parent := p.Parent()
		if p.Lines().Len() == 1 {
			parent.ReplaceChild(parent, p, toc)
			continue
		}
		splitFirstLine(p)
		parent.InsertBefore(parent, p, toc)
	}
}

func isPlaceholder(seg text.Segment, source []byte) bool {
	return tocPlaceholder.Match(util.TrimRightSpace(util.TrimLeftSpace(seg.Value(source))))
}

// splitFirstLine drops the placeholder line and its inline nodes from p.
func splitFirstLine(p *ast.Paragraph) {
	first := p.Lines().At(0)
	for c := p.FirstChild(); c != nil; {
		next := c.NextSibling()
		t, ok := c.(*ast.Text)
		if !ok || t.Segment.Start >= first.Stop {
			break
		}
		p.RemoveChild(p, c)
		c = next
	}

	rest := text.NewSegments()
	for i := 1; i < p.Lines().Len(); i++ {
		rest.Append(p.Lines().At(i))
	}
	p.SetLines(rest)
}

// collectHeadings nests headings with an id by level.
func collectHeadings(doc *ast.Document, source []byte) []*TOCItem {
	root := &TOCItem{Level: 0}
	stack := []*TOCItem{root}

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

		item := &TOCItem{Level: h.Level, ID: id, Title: plainText(h, source)}
		for len(stack) > 1 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, item)
		stack = append(stack, item)
		return ast.WalkSkipChildren, nil
	})

	return root.Children
}

type tocRenderer struct{}

func (r *tocRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTOC, r.render)
}

func (r *tocRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*TOC)
	_, _ = w.WriteString(`<nav class="table-of-contents">`)
	writeTOCList(w, n.Items)
	_, _ = w.WriteString("</nav>\n")
	return ast.WalkSkipChildren, nil
}

func writeTOCList(w util.BufWriter, items []*TOCItem) {
	_, _ = w.WriteString("<ol>")
	for _, item := range items {
		_, _ = w.WriteString(`<li><a href="#`)
		_, _ = w.Write(util.EscapeHTML(item.ID))
		_, _ = w.WriteString(`">`)
		_, _ = w.Write(util.EscapeHTML(item.Title))
		_, _ = w.WriteString("</a>")
		if len(item.Children) > 0 {
			writeTOCList(w, item.Children)
		}
		_, _ = w.WriteString("</li>")
	}
	_, _ = w.WriteString("</ol>")
}

type tocExtension struct{}

// TableOfContents expands a [toc] placeholder paragraph into a nested list of links to
// the document's headings.
var TableOfContents goldmark.Extender = &tocExtension{}

func (e *tocExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&tocTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&tocRenderer{}, 500),
	))
}
