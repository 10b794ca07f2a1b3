package mdexport

import (
	"fmt"
	"slices"
	"strings"
)

// OutputKind is the format of an exported artifact.
type OutputKind string

// Supported output kinds.
const (
	KindPDF  OutputKind = "pdf"
	KindHTML OutputKind = "html"
	KindPNG  OutputKind = "png"
	KindJPEG OutputKind = "jpeg"
)

// Requests that expand to several kinds.
const (
	RequestAll      = "all"      // every supported kind
	RequestSettings = "settings" // the kinds listed in Config.Type
)

var supportedKinds = []OutputKind{KindPDF, KindHTML, KindPNG, KindJPEG}

// SupportedFormats is reported whenever a request names an unknown kind.
const SupportedFormats = "Supported formats: pdf, html, png, jpeg."

// SupportedKinds returns the supported kinds in export order.
func SupportedKinds() []OutputKind {
	return slices.Clone(supportedKinds)
}

// Supported reports whether k can be exported.
func (k OutputKind) Supported() bool {
	return slices.Contains(supportedKinds, k)
}

// Extension returns the file extension of artifacts of this kind.
func (k OutputKind) Extension() string {
	return string(k)
}

// OutputKinds is a request normalized to a list: a single kind is a
// one-element list.
type OutputKinds []OutputKind

// Strings returns the kinds as plain strings.
func (ks OutputKinds) Strings() []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = string(k)
	}
	return out
}

// ResolveKinds expands a request into the kinds to export, in order.
//
//   - a supported kind yields itself
//   - "all" yields every supported kind
//   - "settings" or "" yields configured, or pdf when configured is empty
//
// Kinds taken from configured are not validated here: the converter stops
// at the first unsupported one.
func ResolveKinds(requested string, configured []string) (OutputKinds, error) {
	req := normalizeKind(requested)
	switch req {
	case RequestAll:
		return OutputKinds(SupportedKinds()), nil
	case RequestSettings, "":
		kinds := make(OutputKinds, 0, len(configured))
		for _, k := range configured {
			if k = normalizeKind(k); k != "" {
				kinds = append(kinds, OutputKind(k))
			}
		}
		if len(kinds) == 0 {
			kinds = OutputKinds{KindPDF}
		}
		return kinds, nil
	}

	kind := OutputKind(req)
	if !kind.Supported() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, requested)
	}
	return OutputKinds{kind}, nil
}

func normalizeKind(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
