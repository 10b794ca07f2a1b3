package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-mdexport/internal/assets"
)

// StyleOptions selects the stylesheets of a document.
type StyleOptions struct {
	IncludeDefaultStyles bool
	Styles               []string // user hrefs, resolved with ResolveHref
	Highlight            bool
	HighlightStyle       string // asset or chroma style name; empty = arduino-light
	Href                 HrefContext
}

// StyleBuilder accumulates the <style> and <link> block of a document.
type StyleBuilder struct {
	loader assets.AssetLoader
	report Reporter
}

// NewStyleBuilder creates a StyleBuilder reading stylesheets from loader.
// report may be nil.
func NewStyleBuilder(loader assets.AssetLoader, report Reporter) *StyleBuilder {
	return &StyleBuilder{loader: loader, report: report}
}

// Build returns the style block for the document at docPath. Order:
//
//  1. math stylesheet (always)
//  2. default theme (IncludeDefaultStyles)
//  3. user links (IncludeDefaultStyles)
//  4. highlight theme (Highlight)
//  5. document theme (IncludeDefaultStyles)
//  6. user links again
//
// User links appear twice when IncludeDefaultStyles is set. Stylesheets
// that cannot be found contribute nothing.
func (b *StyleBuilder) Build(docPath string, opts StyleOptions) string {
	var sb strings.Builder

	sb.WriteString(b.inline(assets.MathStyleName))
	if opts.IncludeDefaultStyles {
		sb.WriteString(b.inline(assets.DefaultStyleName))
		sb.WriteString(b.links(docPath, opts))
	}
	if opts.Highlight {
		sb.WriteString(b.highlight(opts.HighlightStyle))
	}
	if opts.IncludeDefaultStyles {
		sb.WriteString(b.inline(assets.DocumentStyleName))
	}
	sb.WriteString(b.links(docPath, opts))

	return sb.String()
}

// inline wraps the named stylesheet in a <style> element.
func (b *StyleBuilder) inline(name string) string {
	css, err := b.loader.LoadStyle(name)
	if err != nil {
		if !errors.Is(err, assets.ErrStyleNotFound) {
			b.report.report("styles", err)
		}
		return ""
	}
	return styleElement(css)
}

func (b *StyleBuilder) links(docPath string, opts StyleOptions) string {
	var sb strings.Builder
	for _, ref := range opts.Styles {
		href, err := ResolveHref(docPath, ref, opts.Href)
		if err != nil {
			b.report.report("styles", err)
		}
		sb.WriteString(`<link rel="stylesheet" href="`)
		sb.WriteString(html.EscapeString(href))
		sb.WriteString(`" type="text/css">`)
	}
	return sb.String()
}

// highlight loads a highlight theme from the assets, then from chroma's
// built-in styles.
func (b *StyleBuilder) highlight(name string) string {
	name = assets.StyleName(name)
	if name == "" {
		name = assets.HighlightStyleName
	}

	if css := b.inline(name); css != "" {
		return css
	}

	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return ""
	}
	css, err := chromaCSS(style)
	if err != nil {
		b.report.report("styles", fmt.Errorf("highlight style %q: %w", name, err))
		return ""
	}
	return styleElement(css)
}

// chromaCSS renders a chroma style for class-based highlighting, with the
// background also applied to the code container.
func chromaCSS(style *chroma.Style) (string, error) {
	var sb strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&sb, style); err != nil {
		return "", err
	}
	if bg := style.Get(chroma.Background); bg.Background.IsSet() {
		fmt.Fprintf(&sb, ".hljs { background-color: %s; }\n", bg.Background)
	}
	return sb.String(), nil
}

// styleElement wraps css the way every inline stylesheet is emitted.
func styleElement(css string) string {
	if css == "" {
		return ""
	}
	return "\n<style>\n" + sanitizeCSS(css) + "\n</style>\n"
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
