package pipeline

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-mdexport/internal/assets"
)

// ErrAssemble indicates the document template could not be applied.
var ErrAssemble = errors.New("document assembly failed")

// Document is the data substituted into the document template.
type Document struct {
	Title   string
	Style   template.HTML // trusted: built by StyleBuilder
	Content template.HTML // trusted: rendered Markdown with raw HTML

	// Loaded only when the content needs them.
	Stylesheets []string
	Scripts     []string
}

// Assembler merges a rendered fragment into the document template.
type Assembler struct {
	loader assets.AssetLoader
	name   string
}

// NewAssembler creates an Assembler using the named template from loader.
// An empty name selects the default template.
func NewAssembler(loader assets.AssetLoader, name string) *Assembler {
	if name == "" {
		name = assets.DefaultTemplateName
	}
	return &Assembler{loader: loader, name: name}
}

// Assemble returns the complete HTML document.
func (a *Assembler) Assemble(doc Document) (string, error) {
	raw, err := a.loader.LoadTemplate(a.name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}

	tmpl, err := template.New(a.name).Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: parsing template: %v", ErrAssemble, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}
	return sb.String(), nil
}
