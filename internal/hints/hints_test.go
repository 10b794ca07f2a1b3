package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, key := range ciVars {
		t.Setenv(key, "")
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-aware hints
// ---------------------------------------------------------------------------

func TestForBrowserConnect_InCI(t *testing.T) {
	withContainer(t, false)
	clearCIEnv(t)
	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")

	hint := ForBrowserConnect()

	assert.Contains(t, hint, "hint:")
	assert.Contains(t, hint, "ROD_NO_SANDBOX")
	assert.Contains(t, hint, "--executable-path")
	assert.Contains(t, hint, "--proxy")
}

func TestForBrowserConnect_InContainer(t *testing.T) {
	withContainer(t, true)
	clearCIEnv(t)
	t.Setenv("ROD_NO_SANDBOX", "")

	assert.Contains(t, ForBrowserConnect(), "ROD_NO_SANDBOX")
}

func TestForBrowserConnect_AlreadyConfigured(t *testing.T) {
	withContainer(t, true)
	clearCIEnv(t)
	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	hint := ForBrowserConnect()

	assert.NotContains(t, hint, "ROD_NO_SANDBOX")
	assert.NotContains(t, hint, "ROD_BROWSER_BIN")
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound - Suggests the user config location
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"settings.yaml", "/home/u/.config/go-mdexport/settings.yaml"})
	assert.Contains(t, hint, "--config")
	assert.Contains(t, hint, "create /home/u/.config/go-mdexport/settings.yaml")

	assert.NotContains(t, ForConfigNotFound(nil), "create")
}

// ---------------------------------------------------------------------------
// TestStaticHints
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\n  hint: for large documents, use --timeout flag", ForTimeout())
	assert.Contains(t, ForOutputDirectory(), "writable")
	assert.Contains(t, ForNoInput(), "docs/**/*.md")
	assert.Equal(t, "\n  hint: use one of: pdf, html", ForUnsupportedKind([]string{"pdf", "html"}))
	assert.Empty(t, ForUnsupportedKind(nil))
}
