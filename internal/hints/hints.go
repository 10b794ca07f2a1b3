// Package hints builds the "hint:" suffixes the CLI appends to error messages.
// Every hint renders as "\n  hint: <text>"; several hints share one line,
// separated by "; ".
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// IsInContainer reports whether /.dockerenv exists. Tests replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// IsInCI reports whether a known CI environment variable is set.
func IsInCI() bool {
	for _, key := range ciVars {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests fixes for a browser that failed to start or
// download, skipping the ones the environment already applies.
func ForBrowserConnect() string {
	var tips []string
	sandboxed := os.Getenv("ROD_NO_SANDBOX") != "1"
	if sandboxed && (IsInCI() || IsInContainer()) {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "use --executable-path or ROD_BROWSER_BIN to point at an installed Chrome")
	}
	tips = append(tips, "behind a proxy, set --proxy so the browser can be downloaded")
	return join(tips...)
}

func ForTimeout() string {
	return join("for large documents, use --timeout flag")
}

// ForConfigNotFound points at --config and, when it was searched, the
// per-user config location.
func ForConfigNotFound(searched []string) string {
	tip := "use --config /path/to/file.yaml"
	for _, candidate := range searched {
		if strings.Contains(filepath.ToSlash(candidate), ".config/go-mdexport") {
			tip += " or create " + candidate
			break
		}
	}
	return join(tip)
}

func ForOutputDirectory() string {
	return join("outputDirectory must be creatable and writable")
}

// ForUnsupportedKind lists the accepted --type values.
func ForUnsupportedKind(kinds []string) string {
	if len(kinds) == 0 {
		return ""
	}
	return join("use one of: " + strings.Join(kinds, ", "))
}

// ForNoInput is shown when no Markdown file matched the arguments.
func ForNoInput() string {
	return join("pass .md files, directories, or quoted globs such as 'docs/**/*.md'")
}

func join(tips ...string) string {
	if len(tips) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(tips, "; ")
}
