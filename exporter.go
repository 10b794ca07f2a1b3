package mdexport

import (
	"context"
	"fmt"
	"os"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Artifact is one assembled document ready for export.
type Artifact struct {
	TargetPath string     // where the exported file is written
	Kind       OutputKind // format to produce
	HTML       string     // complete HTML document
	Config     *Config    // export options (pdf, image, browser)
}

// Exporter turns an assembled document into a file.
type Exporter interface {
	Export(ctx context.Context, a Artifact) error
	Close() error
}

// Compile-time interface implementation check.
var _ Exporter = (*BrowserExporter)(nil)

// writeOutput writes an exported file.
func writeOutput(path string, data []byte) error {
	// #nosec G306 -- exported documents are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
