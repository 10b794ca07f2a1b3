package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// TOCMarker is prepended to documents that do not place a table of contents.
const TOCMarker = "[toc]"

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	tocMarkerPattern = regexp.MustCompile(`(?i)\[toc\]`)
)

// FrontMatter holds the front matter keys the converter understands.
// Other keys are ignored.
type FrontMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Preprocess normalizes line endings and strips a YAML, TOML or JSON front
// matter block. A block that fails to decode is left in the text and
// reported through the returned error; the text is still usable.
func Preprocess(content string) (string, FrontMatter, error) {
	content = normalizeLineEndings(content)

	var fm FrontMatter
	rest, err := frontmatter.Parse(strings.NewReader(content), &fm)
	if err != nil {
		return content, FrontMatter{}, fmt.Errorf("front matter: %w", err)
	}
	return string(rest), fm, nil
}

// EnsureTOCMarker prepends TOCMarker on its own line unless the text
// already contains a [toc] marker, in any case.
func EnsureTOCMarker(text string) string {
	if tocMarkerPattern.MatchString(text) {
		return text
	}
	return TOCMarker + "\n" + text
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
