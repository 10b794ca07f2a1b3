package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{name: "math style", styleName: MathStyleName, wantContain: ".math"},
		{name: "default style", styleName: DefaultStyleName, wantContain: "font-family"},
		{name: "document style", styleName: DocumentStyleName, wantContain: ".page"},
		{name: "highlight style", styleName: HighlightStyleName, wantContain: ".chroma"},
		{name: "nonexistent", styleName: "nonexistent-style-xyz", wantErr: ErrStyleNotFound},
		{name: "empty name", styleName: "", wantErr: ErrInvalidAssetName},
		{name: "path traversal", styleName: "../secret", wantErr: ErrInvalidAssetName},
		{name: "name with extension", styleName: "markdown.css", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantContain)
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("default template has placeholders", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadTemplate(DefaultTemplateName)
		require.NoError(t, err)
		for _, placeholder := range []string{"{{.Title}}", "{{.Style}}", "{{.Content}}"} {
			assert.Contains(t, got, placeholder)
		}
	})

	t.Run("nonexistent template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("missing")
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("../template")
		require.ErrorIs(t, err, ErrInvalidAssetName)
	})
}

func TestBuiltinStyles(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t,
		[]string{MathStyleName, DefaultStyleName, DocumentStyleName, HighlightStyleName},
		BuiltinStyles())
}

func TestStyleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"github.css", "github"},
		{"github", "github"},
		{" monokai.css ", "monokai"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StyleName(tt.in), "StyleName(%q)", tt.in)
	}
}
