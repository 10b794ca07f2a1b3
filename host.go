package mdexport

import (
	"os"
	"path/filepath"
)

// Host supplies the environment a conversion runs in.
type Host interface {
	// HomeDir returns the directory "~" expands to.
	HomeDir() (string, error)
	// WorkspaceRoot returns the project directory containing sourcePath.
	WorkspaceRoot(sourcePath string) (string, bool)
}

// workspaceMarkers identify a project root.
var workspaceMarkers = []string{".git", ".vscode"}

// SystemHost reads the home directory from the OS and finds the workspace
// root by walking up from the source file to the nearest directory holding
// a .git or .vscode entry.
type SystemHost struct{}

// HomeDir returns the current user's home directory.
func (SystemHost) HomeDir() (string, error) {
	return os.UserHomeDir()
}

// WorkspaceRoot returns the nearest ancestor of sourcePath containing a
// workspace marker.
func (SystemHost) WorkspaceRoot(sourcePath string) (string, bool) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return "", false
	}

	dir := filepath.Dir(abs)
	for {
		for _, marker := range workspaceMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
