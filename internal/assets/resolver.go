package assets

import "errors"

// AssetResolver layers a user assets directory over the embedded assets.
// An asset missing from the directory falls back to the embedded copy.
// Validation and read errors do not fall back.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver returns a resolver over the embedded assets, preceded by
// basePath when it is set.
func NewAssetResolver(basePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if basePath != "" {
		custom, err := NewFilesystemLoader(basePath)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, custom)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, layer := range r.layers {
		var content string
		content, err = load(layer)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a user assets directory is layered in.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
