// Package fileutil holds the path and file helpers the converter, the
// browser exporter and the CLI have in common.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrExtensionEmpty         = errors.New("empty file extension")
	ErrExtensionPathTraversal = errors.New("file extension must not contain separators or NUL")
)

// WriteTempFile stores content in a new hidden file in dir, or in the system
// temp directory when dir is empty, named ".mdexport-*.<extension>".
// The browser exporter writes next to the target so that relative links in
// raw HTML still resolve. The returned cleanup removes the file.
func WriteTempFile(dir, content, extension string) (string, func(), error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp(dir, ".mdexport-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	_, err = f.WriteString(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write temp file %s: %w", path, err)
	}
	return path, cleanup, nil
}

// ValidateExtension rejects extensions that could move a generated file out
// of its directory.
func ValidateExtension(extension string) error {
	switch {
	case extension == "":
		return ErrExtensionEmpty
	case strings.ContainsAny(extension, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrExtensionPathTraversal, extension)
	}
	return nil
}

// ReplaceExt swaps the extension of path for "."+extension. A path without
// an extension gets one appended.
//
//   - ("/docs/readme.md", "pdf") -> "/docs/readme.pdf"
//   - ("/docs/notes", "png") -> "/docs/notes.png"
//   - ("/docs/v1.2/a.markdown", "html") -> "/docs/v1.2/a.html"
func ReplaceExt(path, extension string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + extension
}

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath reports whether s contains a path separator, which makes it a
// path rather than a bare config name.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// ExpandHome replaces a leading "~" in path with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}
