package mdext

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMathInline and KindMathBlock identify math nodes.
var (
	KindMathInline = ast.NewNodeKind("MathInline")
	KindMathBlock  = ast.NewNodeKind("MathBlock")
)

// MathInline is $...$ (or $$...$$ inside a paragraph).
type MathInline struct {
	ast.BaseInline
	Value   []byte
	Display bool
}

func (n *MathInline) Kind() ast.NodeKind { return KindMathInline }

func (n *MathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

// MathBlock is a $$ fenced block.
type MathBlock struct {
	ast.BaseBlock
	singleLine []byte
	oneLine    bool
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

func (n *MathBlock) IsRaw() bool { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Value returns the TeX source of the block.
func (n *MathBlock) Value(source []byte) []byte {
	if n.oneLine {
		return n.singleLine
	}
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}

type mathInlineParser struct{}

func (p *mathInlineParser) Trigger() []byte { return []byte{'$'} }

// Parse accepts $x$ where the content neither starts nor ends with a space
// and the closing $ is not followed by a digit, so "$5 and $10" stays text.
func (p *mathInlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	delim := 1
	if len(line) > 1 && line[1] == '$' {
		delim = 2
	}
	closer := bytes.Repeat([]byte{'$'}, delim)

	start := delim
	for i := start; i+delim <= len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if !bytes.HasPrefix(line[i:], closer) {
			continue
		}
		content := line[start:i]
		if len(content) == 0 || util.IsSpace(content[0]) || util.IsSpace(content[len(content)-1]) {
			return nil
		}
		if next := i + delim; next < len(line) && line[next] >= '0' && line[next] <= '9' {
			return nil
		}
		block.Advance(i + delim)
		return &MathInline{Value: append([]byte(nil), content...), Display: delim == 2}
	}
	return nil
}

type mathBlockParser struct{}

func (p *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], []byte("$$")) {
		return nil, parser.NoChildren
	}

	node := &MathBlock{}
	rest := bytes.TrimSpace(line[pos+2:])
	if len(rest) >= 2 && bytes.HasSuffix(rest, []byte("$$")) {
		node.oneLine = true
		node.singleLine = append([]byte(nil), bytes.TrimSpace(rest[:len(rest)-2])...)
	} else if len(rest) > 0 {
		// Text after the opening fence is not math: leave it to the paragraph parser.
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*MathBlock)
	if n.oneLine {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if trimmed := bytes.TrimSpace(line); bytes.Equal(trimmed, []byte("$$")) {
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}
	n.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *mathBlockParser) CanInterruptParagraph() bool { return true }

func (p *mathBlockParser) CanAcceptIndentedLine() bool { return false }

type mathRenderer struct{}

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathInline, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *mathRenderer) renderInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathInline)
	if n.Display {
		_, _ = w.WriteString(`<span class="math display">\[`)
		_, _ = w.Write(util.EscapeHTML(n.Value))
		_, _ = w.WriteString(`\]</span>`)
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString(`<span class="math inline">\(`)
	_, _ = w.Write(util.EscapeHTML(n.Value))
	_, _ = w.WriteString(`\)</span>`)
	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathBlock)
	_, _ = w.WriteString(`<div class="math display">\[`)
	_, _ = w.Write(util.EscapeHTML(n.Value(source)))
	_, _ = w.WriteString("\\]</div>\n")
	return ast.WalkSkipChildren, nil
}

type mathExtension struct{}

// Math parses $inline$ and $$display$$ math into markup KaTeX's
// auto-render script typesets in the browser.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 701)),
		parser.WithInlineParsers(util.Prioritized(&mathInlineParser{}, 501)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathRenderer{}, 501),
	))
}

// HasMath reports whether doc contains math nodes.
func HasMath(doc ast.Node) bool {
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && (n.Kind() == KindMathInline || n.Kind() == KindMathBlock) {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
