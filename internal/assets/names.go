package assets

import (
	"fmt"
	"strings"
)

// Built-in stylesheet names, in the order the style accumulator uses them.
const (
	MathStyleName      = "katex"
	DefaultStyleName   = "markdown"
	DocumentStyleName  = "markdown-pdf"
	HighlightStyleName = "arduino-light"
)

// DefaultTemplateName is the name of the built-in document template.
const DefaultTemplateName = "template"

const maxNameLen = 64

// StyleName turns a configured stylesheet reference such as "github.css"
// into the asset name expected by LoadStyle.
func StyleName(ref string) string {
	return strings.TrimSuffix(strings.TrimSpace(ref), ".css")
}

// ValidateAssetName accepts names made of ASCII letters, digits, '-' and '_'.
// Anything else could point a loader outside its styles or templates folder.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxNameLen)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
