// Package assets provides the stylesheets and the HTML template used to
// assemble exported documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a user can override a single stylesheet (for example
// markdown-pdf.css) and keep the other defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── katex.css            # math containers, always included
//	│   ├── markdown.css         # default theme
//	│   ├── markdown-pdf.css     # document theme
//	│   └── arduino-light.css    # default highlight theme
//	└── templates/
//	    └── template.html        # document skeleton
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
