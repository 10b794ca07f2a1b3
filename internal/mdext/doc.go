// Package mdext holds the goldmark extensions used to render documents:
// checkbox lists, math, PlantUML diagrams, named headers, table of contents
// and header anchors.
//
// Extensions are independent goldmark.Extender values. Register them in the
// order listed above; the TOC and anchor transformers expect heading IDs,
// which NamedHeaders enables.
package mdext
