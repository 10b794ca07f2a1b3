package mdexport

import (
	"errors"

	"github.com/alnah/go-mdexport/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrSourceNotFound   = errors.New("source file not found")
	ErrReadSource       = errors.New("failed to read source file")
	ErrUnsupportedKind  = errors.New("unsupported output type")
	ErrOutputDirectory  = errors.New("failed to prepare output directory")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrExport           = errors.New("export failed")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrScreenshot     = errors.New("screenshot failed")
)

// Pipeline errors, re-exported so callers can match them with errors.Is.
var (
	ErrRender        = pipeline.ErrRender
	ErrAssemble      = pipeline.ErrAssemble
	ErrMalformedHref = pipeline.ErrMalformedHref
)
