package pipeline

// Notes:
// - Expectations use Unix absolute paths; Windows drive handling is covered
//   by pathToFileURL only.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

// ---------------------------------------------------------------------------
// TestResolveHref - Stylesheet href rules
// ---------------------------------------------------------------------------

func TestResolveHref(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	home := HrefContext{Home: "/home/u"}
	workspace := HrefContext{Home: "/home/u", WorkspaceRoot: "/work", StylesRelativePathFile: boolPtr(false)}

	tests := []struct {
		name string
		raw  string
		hc   HrefContext
		want string
	}{
		{"empty", "", home, ""},
		{"https unchanged", "https://cdn.example.com/a.css?v=1", home, "https://cdn.example.com/a.css?v=1"},
		{"http uppercase scheme", "HTTP://example.com/a.css", home, "HTTP://example.com/a.css"},
		{"home directory", "~/styles/x.css", home, "file:///home/u/styles/x.css"},
		{"absolute path", "/abs/x.css", home, "file:///abs/x.css"},
		{"absolute path with hash", "/abs/x#1.css", home, "file:///abs/x%231.css"},
		{"file uri", "file:///abs/x.css", home, "file:///abs/x.css"},
		{"file uri encoded", "file:///abs/my%20x.css", home, "file:///abs/my%20x.css"},
		{"file uri localhost", "file://localhost/abs/x.css", home, "file:///abs/x.css"},
		{"file uri unc host", "file://server/share/a.css", home, "file://server/share/a.css"},
		{"relative to document", "a.css", home, "file:///work/docs/a.css"},
		{"parent of document", "../shared/a.css", home, "file:///work/shared/a.css"},
		{"space encoded", "css/a b.css", home, "file:///work/docs/css/a%20b.css"},
		{"relative to workspace", "a.css", workspace, "file:///work/a.css"},
		{"explicit true ignores workspace", "a.css", HrefContext{WorkspaceRoot: "/work", StylesRelativePathFile: boolPtr(true)}, "file:///work/docs/a.css"},
		{"unset ignores workspace", "a.css", HrefContext{WorkspaceRoot: "/work"}, "file:///work/docs/a.css"},
		{"false without workspace", "a.css", HrefContext{StylesRelativePathFile: boolPtr(false)}, "file:///work/docs/a.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveHref(testDoc, tt.raw, tt.hc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveHref_Idempotent(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	hc := HrefContext{Home: "/home/u"}
	for _, raw := range []string{"a.css", "~/x.css", "/abs/a b.css", "file:///abs/x%231.css", "file://server/share/a.css", "https://x/a.css"} {
		once, err := ResolveHref(testDoc, raw, hc)
		require.NoError(t, err)
		twice, err := ResolveHref(testDoc, once, hc)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "resolving %q twice", raw)
	}
}

func TestResolveHref_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		hc   HrefContext
	}{
		{"home unknown", "~/x.css", HrefContext{}},
		{"bad escape", "%zz.css", HrefContext{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveHref(testDoc, tt.raw, tt.hc)
			require.ErrorIs(t, err, ErrMalformedHref)
			assert.Equal(t, tt.raw, got, "original href passes through")
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveImageSrc - Embedded image rules
// ---------------------------------------------------------------------------

func TestResolveImageSrc(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"relative", "img/a.png", "file:///work/docs/img/a.png"},
		{"dot relative", "./img/a.png", "file:///work/docs/img/a.png"},
		{"parent", "../up.png", "file:///work/up.png"},
		{"absolute", "/abs/a.png", "file:///abs/a.png"},
		{"percent decoded", "img/my%20pic.png", "file:///work/docs/img/my pic.png"},
		{"straight quotes", `"img/a.png"`, "file:///work/docs/img/a.png"},
		{"curly quotes", "\u201cimg/a.png\u201d", "file:///work/docs/img/a.png"},
		{"backslashes", `img\a.png`, "file:///work/docs/img/a.png"},
		{"hash escaped", "img/a#1.png", "file:///work/docs/img/a%231.png"},
		{"file triple slash", "file:///abs/a.png", "file:///abs/a.png"},
		{"file double slash", "file://abs/a.png", "file:///abs/a.png"},
		{"file single slash", "file:/abs/a.png", "file:/abs/a.png"},
		{"https", "https://example.com/a.png", "https://example.com/a.png"},
		{"data uri", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"drive path backslashes", `C:\x\y.png`, `C:\x\y.png`},
		{"drive path slashes", "c:/x/y.png", "c:/x/y.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveImageSrc(tt.src, testDoc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveImageSrc_Malformed(t *testing.T) {
	t.Parallel()

	got, err := ResolveImageSrc("img/%zz.png", testDoc)
	require.ErrorIs(t, err, ErrMalformedHref)
	assert.Equal(t, "img/%zz.png", got)
}

func TestDecodeImageSrc(t *testing.T) {
	t.Parallel()

	got, err := DecodeImageSrc(`"img/my%20pic.png"`)
	require.NoError(t, err)
	assert.Equal(t, "img/my pic.png", got)

	got, err = DecodeImageSrc("img/a.png")
	require.NoError(t, err)
	assert.Equal(t, "img/a.png", got)

	_, err = DecodeImageSrc("%zz")
	require.ErrorIs(t, err, ErrMalformedHref)
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "file:///C:/docs/a.css", pathToFileURL("C:/docs/a.css"))
	assert.Equal(t, "file:///tmp/a%20b.css", pathToFileURL("/tmp/a b.css"))
	assert.Equal(t, "file://server/share/a.css", pathToFileURL("//server/share/a.css"))
}
