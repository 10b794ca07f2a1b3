// Package mdexport converts Markdown files to PDF, HTML, PNG and JPEG.
//
// # Quick Start
//
// Create a converter, convert a file, and close when done:
//
//	conv, err := mdexport.NewConverter(mdexport.WithLogOutput(os.Stderr))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	if err := conv.Convert(ctx, "README.md", "pdf", nil); err != nil {
//	    log.Fatal(err)
//	}
//
// The artifact is written next to the source with the extension replaced by
// the kind (README.pdf). Request "all" for every kind, or "settings" for the
// kinds listed in Config.Type.
//
// # Conversion Pipeline
//
// Each kind runs these stages:
//
//  1. Front matter stripping and line normalization
//  2. Markdown to HTML via Goldmark (GFM, TOC, anchors, math, PlantUML,
//     checkboxes, Chroma highlighting) with image paths rewritten for the kind
//  3. Style accumulation (default stylesheets, highlight theme, user styles)
//  4. Document assembly from the HTML template
//  5. Export: HTML is written directly, other kinds are printed or captured
//     by headless Chromium (go-rod)
//
// # Configuration
//
// Per-conversion settings live in Config, loaded from YAML with LoadConfig:
//
//	cfg, err := mdexport.LoadConfig("mdexport.yaml")
//	err = conv.Convert(ctx, "notes.md", "settings", cfg)
//
// Converter-wide settings are functional options:
//
//	conv, err := mdexport.NewConverter(
//	    mdexport.WithTimeout(2 * time.Minute),
//	    mdexport.WithAssetPath("/path/to/custom/assets"),
//	)
//
// # Errors
//
// Failures are written to the log writer as "ERROR: <component>: <detail>"
// and returned. Use errors.Is with the sentinel errors (ErrSourceNotFound,
// ErrUnsupportedKind, ErrExport, ...) to classify them.
package mdexport
