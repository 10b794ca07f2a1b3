package mdext

import (
	"compress/flate"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodePlantUML reverses PlantUMLURL's encoding of the last path element.
func decodePlantUML(t *testing.T, url string) string {
	t.Helper()

	enc := url[strings.LastIndex(url, "/")+1:]
	data, err := plantUMLEncoding.DecodeString(enc)
	require.NoError(t, err)

	// Zero fill after the deflate stream end is ignored by the reader.
	out, err := io.ReadAll(flate.NewReader(strings.NewReader(string(data))))
	require.NoError(t, err)
	return string(out)
}

// ---------------------------------------------------------------------------
// TestPlantUMLURL - Server URL encoding
// ---------------------------------------------------------------------------

func TestPlantUMLURL(t *testing.T) {
	t.Parallel()

	t.Run("roundtrip", func(t *testing.T) {
		t.Parallel()

		url, err := PlantUMLURL("http://www.plantuml.com/plantuml", "svg", "Bob -> Alice : hello")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "http://www.plantuml.com/plantuml/svg/"))
		assert.Equal(t, "@startuml\nBob -> Alice : hello\n@enduml", decodePlantUML(t, url))
	})

	t.Run("encoded length is a multiple of four", func(t *testing.T) {
		t.Parallel()

		for _, src := range []string{"a", "ab", "A -> B", strings.Repeat("x", 97)} {
			url, err := PlantUMLURL("http://srv", "png", src)
			require.NoError(t, err)
			enc := url[strings.LastIndex(url, "/")+1:]
			assert.Zero(t, len(enc)%4, "source %q", src)
		}
	})

	t.Run("trailing slash on server", func(t *testing.T) {
		t.Parallel()

		url, err := PlantUMLURL("http://srv/", "png", "a")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "http://srv/png/"))
	})

	t.Run("alphabet is url safe", func(t *testing.T) {
		t.Parallel()

		url, err := PlantUMLURL("http://srv", "svg", strings.Repeat("Alice -> Bob: ??>>\n", 20))
		require.NoError(t, err)
		enc := url[strings.LastIndex(url, "/")+1:]
		assert.NotContains(t, enc, "+")
		assert.NotContains(t, enc, "/")
		assert.NotContains(t, enc, "=")
	})
}

// ---------------------------------------------------------------------------
// TestPlantUML - Diagram blocks
// ---------------------------------------------------------------------------

func TestPlantUML(t *testing.T) {
	t.Parallel()

	t.Run("block renders image", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "@startuml\nA -> B\n@enduml\n", NewPlantUML(PlantUMLOptions{}))

		want, err := PlantUMLURL("http://www.plantuml.com/plantuml", "svg", "A -> B")
		require.NoError(t, err)
		assert.Equal(t, `<img src="`+want+"\" alt=\"uml diagram\">\n", got)
	})

	t.Run("custom markers and server", func(t *testing.T) {
		t.Parallel()

		opts := PlantUMLOptions{
			Server:      "https://uml.internal",
			Format:      "png",
			OpenMarker:  "::uml::",
			CloseMarker: "::end::",
		}
		got := convert(t, "before\n\n::uml::\nA -> B\n::end::\n\nafter\n", NewPlantUML(opts))

		assert.Contains(t, got, `<img src="https://uml.internal/png/`)
		assert.Contains(t, got, "<p>before</p>")
		assert.Contains(t, got, "<p>after</p>")
		assert.NotContains(t, got, "A -&gt; B")
	})

	t.Run("marker inside text is not a diagram", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "@startuml is the marker\n", NewPlantUML(PlantUMLOptions{}))
		assert.Equal(t, "<p>@startuml is the marker</p>\n", got)
	})

	t.Run("multi line source", func(t *testing.T) {
		t.Parallel()

		got := convert(t, "@startuml\nA -> B\nB -> C\n@enduml\n", NewPlantUML(PlantUMLOptions{}))

		start := strings.Index(got, `src="`) + len(`src="`)
		url := got[start : start+strings.Index(got[start:], `"`)]
		assert.Equal(t, "@startuml\nA -> B\nB -> C\n@enduml", decodePlantUML(t, url))
	})
}
