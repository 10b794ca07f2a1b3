package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdexport/internal/mdext"
)

// ErrRender indicates the Markdown engine failed.
var ErrRender = errors.New("markdown rendering failed")

// Reporter receives non-fatal failures. component names the failing step.
type Reporter func(component string, err error)

func (r Reporter) report(component string, err error) {
	if r != nil && err != nil {
		r(component, err)
	}
}

// ImageRewriter maps the src of a Markdown image.
type ImageRewriter func(src string) string

// HTMLBlockRewriter maps a raw HTML block.
type HTMLBlockRewriter func(block string) string

// Rewriters returns the image and HTML block strategies for an output kind.
// HTML output keeps relative paths (the browser opens the file next to its
// source) and leaves HTML blocks alone; other kinds resolve images to
// file URIs. Resolution failures are reported and the src is kept.
func Rewriters(kind, docPath string, report Reporter) (ImageRewriter, HTMLBlockRewriter) {
	if kind == "html" {
		return func(src string) string {
			out, err := DecodeImageSrc(src)
			report.report("image", err)
			return out
		}, nil
	}

	resolve := func(src string) string {
		out, err := ResolveImageSrc(src, docPath)
		report.report("image", err)
		return out
	}
	return resolve, func(block string) string {
		out, err := RewriteImageSources(block, resolve)
		report.report("html block", err)
		return out
	}
}

// RenderOptions configures a Renderer.
type RenderOptions struct {
	Breaks    bool              // soft line breaks become <br>
	Image     ImageRewriter     // nil keeps image sources
	HTMLBlock HTMLBlockRewriter // nil writes HTML blocks verbatim
	PlantUML  mdext.PlantUMLOptions
	Anchor    mdext.AnchorOptions
	Report    Reporter
}

// Fragment is the HTML body produced by a Renderer.
type Fragment struct {
	HTML    string
	HasMath bool
}

// Renderer converts Markdown to an HTML fragment with goldmark. Raw HTML
// passes through.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a goldmark instance for one output kind.
func NewRenderer(opts RenderOptions) *Renderer {
	rendererOpts := []renderer.Option{
		html.WithUnsafe(),
		renderer.WithNodeRenderers(util.Prioritized(&contentRenderer{
			htmlBlock: opts.HTMLBlock,
			report:    opts.Report,
		}, 100)),
	}
	if opts.Breaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}

	parserOpts := []parser.Option{}
	if opts.Image != nil {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(imageTransformer(opts.Image), 50),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			mdext.Checkbox,
			mdext.Math,
			mdext.NewPlantUML(opts.PlantUML),
			mdext.NamedHeaders,
			mdext.TableOfContents,
			mdext.NewAnchor(opts.Anchor),
		),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &Renderer{md: md}
}

// Render prepends a [toc] marker when the text has none and converts it.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (r *Renderer) Render(ctx context.Context, source string) (Fragment, error) {
	if err := ctx.Err(); err != nil {
		return Fragment{}, err
	}

	type result struct {
		frag Fragment
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrRender, p)}
			}
		}()

		src := []byte(EnsureTOCMarker(source))
		doc := r.md.Parser().Parse(text.NewReader(src))

		var buf bytes.Buffer
		if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{frag: Fragment{HTML: buf.String(), HasMath: mdext.HasMath(doc)}}
	}()

	select {
	case <-ctx.Done():
		return Fragment{}, ctx.Err()
	case res := <-done:
		return res.frag, res.err
	}
}

// imageTransformer applies an ImageRewriter to every image destination.
type imageTransformer ImageRewriter

func (t imageTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			img.Destination = []byte(t(string(img.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

// contentRenderer overrides fenced code blocks (highlighting) and, when a
// rewriter is set, raw HTML blocks.
type contentRenderer struct {
	htmlBlock HTMLBlockRewriter
	report    Reporter
}

func (r *contentRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
	if r.htmlBlock != nil {
		reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	}
}

func (r *contentRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)

	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	if n.HasClosure() {
		sb.Write(n.ClosureLine.Value(source))
	}
	_, _ = w.WriteString(r.htmlBlock(sb.String()))
	return ast.WalkSkipChildren, nil
}

func (r *contentRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	var lang string
	if n.Info != nil {
		lang = string(n.Language(source))
	}

	_, _ = w.WriteString(`<pre class="hljs"><code><div class="chroma">`)
	_, _ = w.WriteString(Highlight(lang, code.String(), r.report))
	_, _ = w.WriteString("</div></code></pre>\n")
	return ast.WalkSkipChildren, nil
}

// Highlight returns code highlighted with chroma classes when lang names a
// known lexer. Unknown languages and highlighter failures yield escaped
// text; failures are reported.
func Highlight(lang, code string, report Reporter) string {
	escaped := string(util.EscapeHTML([]byte(code)))
	if lang == "" {
		return escaped
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return escaped
	}

	out, err := highlight(chroma.Coalesce(lexer), code)
	if err != nil {
		report.report("highlight", fmt.Errorf("%s: %w", lang, err))
		return escaped
	}
	return out
}

func highlight(lexer chroma.Lexer, code string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lexer panic: %v", p)
		}
	}()

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))
	if err := formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}
