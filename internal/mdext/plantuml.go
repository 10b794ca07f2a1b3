package mdext

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindPlantUML identifies PlantUML diagram blocks.
var KindPlantUML = ast.NewNodeKind("PlantUML")

// PlantUMLOptions configures diagram rendering.
type PlantUMLOptions struct {
	Server      string // e.g. http://www.plantuml.com/plantuml
	Format      string // svg or png
	OpenMarker  string // @startuml
	CloseMarker string // @enduml
}

func (o PlantUMLOptions) withDefaults() PlantUMLOptions {
	if o.Server == "" {
		o.Server = "http://www.plantuml.com/plantuml"
	}
	if o.Format == "" {
		o.Format = "svg"
	}
	if o.OpenMarker == "" {
		o.OpenMarker = "@startuml"
	}
	if o.CloseMarker == "" {
		o.CloseMarker = "@enduml"
	}
	return o
}

// PlantUMLBlock holds the diagram source between the markers.
type PlantUMLBlock struct {
	ast.BaseBlock
}

func (n *PlantUMLBlock) Kind() ast.NodeKind { return KindPlantUML }

func (n *PlantUMLBlock) IsRaw() bool { return true }

func (n *PlantUMLBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type plantUMLParser struct {
	opts PlantUMLOptions
}

func (p *plantUMLParser) Trigger() []byte { return []byte{p.opts.OpenMarker[0]} }

func (p *plantUMLParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.Equal(bytes.TrimSpace(line[pos:]), []byte(p.opts.OpenMarker)) {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - 1)
	return &PlantUMLBlock{}, parser.NoChildren
}

func (p *plantUMLParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if bytes.HasPrefix(bytes.TrimSpace(line), []byte(p.opts.CloseMarker)) {
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *plantUMLParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *plantUMLParser) CanInterruptParagraph() bool { return true }

func (p *plantUMLParser) CanAcceptIndentedLine() bool { return false }

type plantUMLRenderer struct {
	opts PlantUMLOptions
}

func (r *plantUMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindPlantUML, r.render)
}

func (r *plantUMLRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var body bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		body.Write(seg.Value(source))
	}

	src, err := PlantUMLURL(r.opts.Server, r.opts.Format, strings.TrimRight(body.String(), "\n"))
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(`<img src="`)
	_, _ = w.WriteString(html.EscapeString(src))
	_, _ = w.WriteString("\" alt=\"uml diagram\">\n")
	return ast.WalkSkipChildren, nil
}

// plantUMLEncoding is PlantUML's base64 variant.
var plantUMLEncoding = base64.NewEncoding("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_").WithPadding(base64.NoPadding)

// PlantUMLURL returns the image URL of a diagram on a PlantUML server.
// The source is wrapped in @startuml/@enduml, raw-deflated and encoded with
// PlantUML's alphabet; a trailing partial group is zero-filled as the
// reference encoder does.
func PlantUMLURL(server, format, source string) (string, error) {
	var compressed bytes.Buffer
	zw, err := flate.NewWriter(&compressed, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write([]byte("@startuml\n" + source + "\n@enduml")); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	data := compressed.Bytes()
	if rem := len(data) % 3; rem != 0 {
		data = append(data, make([]byte, 3-rem)...)
	}
	return strings.TrimRight(server, "/") + "/" + format + "/" + plantUMLEncoding.EncodeToString(data), nil
}

type plantUML struct {
	opts PlantUMLOptions
}

// NewPlantUML returns an extension rendering diagram blocks as images
// served by a PlantUML server.
func NewPlantUML(opts PlantUMLOptions) goldmark.Extender {
	return &plantUML{opts: opts.withDefaults()}
}

func (e *plantUML) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&plantUMLParser{opts: e.opts}, 702),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&plantUMLRenderer{opts: e.opts}, 502),
	))
}
