package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	require.NoError(t, err)
	assert.False(t, r.HasCustomLoader())

	r, err = NewAssetResolver(t.TempDir())
	require.NoError(t, err)
	assert.True(t, r.HasCustomLoader())

	_, err = NewAssetResolver("/definitely/not/a/dir")
	require.ErrorIs(t, err, ErrInvalidBasePath)
}

func TestAssetResolver_CustomOverridesEmbedded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", DocumentStyleName+".css", "/* custom document */")
	writeAsset(t, dir, "templates", DefaultTemplateName+".html", "<body>{{.Content}}</body>")

	r, err := NewAssetResolver(dir)
	require.NoError(t, err)

	got, err := r.LoadStyle(DocumentStyleName)
	require.NoError(t, err)
	assert.Equal(t, "/* custom document */", got)

	got, err = r.LoadTemplate(DefaultTemplateName)
	require.NoError(t, err)
	assert.Equal(t, "<body>{{.Content}}</body>", got)
}

func TestAssetResolver_FallsBackToEmbedded(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver(t.TempDir())
	require.NoError(t, err)

	got, err := r.LoadStyle(MathStyleName)
	require.NoError(t, err)
	assert.Contains(t, got, ".math")

	_, err = r.LoadStyle("missing-everywhere")
	require.ErrorIs(t, err, ErrStyleNotFound)
}

func TestAssetResolver_ValidationErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver(t.TempDir())
	require.NoError(t, err)

	_, err = r.LoadStyle("../markdown")
	require.ErrorIs(t, err, ErrInvalidAssetName)
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "markdown", false},
		{"hyphen", "markdown-pdf", false},
		{"underscore and digits", "theme_2", false},
		{"empty", "", true},
		{"forward slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "../secret", true},
		{"extension", "style.css", true},
		{"space", "my style", true},
		{"non-ascii", "thème", true},
		{"too long", strings.Repeat("a", maxNameLen+1), true},
		{"max length", strings.Repeat("a", maxNameLen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAssetName)
				return
			}
			require.NoError(t, err)
		})
	}
}
