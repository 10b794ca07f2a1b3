package assets

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the loaders.
var (
	ErrStyleNotFound    = errors.New("stylesheet not found")
	ErrTemplateNotFound = errors.New("document template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid assets directory")
	ErrAssetRead        = errors.New("cannot read asset")
	ErrPathTraversal    = errors.New("asset outside assets directory")
)

// AssetLoader resolves stylesheet and template names to their contents.
// Names carry no extension. A missing asset yields ErrStyleNotFound or
// ErrTemplateNotFound so callers can fall back to another loader.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// assetKind describes where a family of assets lives under a loader root.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated location of name relative to the root.
func (k assetKind) file(name string) string {
	return k.dir + "/" + name + k.ext
}

func (k assetKind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}
