package mdexport

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/mdext"
	"github.com/alnah/go-mdexport/internal/pipeline"
)

// AssetLoader provides the stylesheets and document templates of a
// conversion.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Converter runs conversions: for each requested kind it renders the
// Markdown source, assembles the HTML document and hands it to an Exporter.
// Kinds are exported one after another. Create with NewConverter and Close
// when done.
type Converter struct {
	log      io.Writer
	exporter Exporter
	host     Host
	loader   AssetLoader
	template string
	timeout  time.Duration

	assetPath string
	loaders   map[string]AssetLoader // per assets.basePath
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogOutput sets where progress and error lines are written.
// Defaults to io.Discard.
func WithLogOutput(w io.Writer) Option {
	return func(c *Converter) {
		c.log = w
	}
}

// WithExporter replaces the headless browser exporter.
func WithExporter(e Exporter) Option {
	return func(c *Converter) {
		c.exporter = e
	}
}

// WithHost replaces the home directory and workspace root lookup.
func WithHost(h Host) Option {
	return func(c *Converter) {
		c.host = h
	}
}

// WithAssetLoader sets a custom loader for styles and templates.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *Converter) {
		c.loader = l
	}
}

// WithAssetPath overrides embedded assets with files from dir. Assets
// missing from dir fall back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.assetPath = dir
	}
}

// WithTemplate selects the document template by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.template = name
	}
}

// WithTimeout sets the default export timeout of the browser exporter.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdexport: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.timeout = d
	}
}

// NewConverter creates a Converter with embedded assets, the system host and
// a headless browser exporter. The browser starts on the first export that
// needs it.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		log:     io.Discard,
		host:    SystemHost{},
		loader:  assets.NewEmbeddedLoader(),
		timeout: defaultTimeout,
		loaders: make(map[string]AssetLoader),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.loader = resolver
	}

	if c.exporter == nil {
		c.exporter = NewBrowserExporter(BrowserOptions{Timeout: c.timeout, Log: c.log})
	}

	return c, nil
}

// Convert exports sourcePath as each kind of the request: a kind name,
// "all", or "settings" for the kinds listed in cfg.Type (pdf when empty).
// Each artifact is written next to the source, or into cfg.OutputDirectory,
// with the extension replaced by the kind.
//
// A missing source or an unsupported requested kind fails before anything
// is exported. An unsupported kind inside cfg.Type or a failed export stops
// the remaining kinds. A kind that fails before export (output directory,
// rendering, template) is skipped and the next kind still runs. Errors are
// returned joined, and every failure is also written to the log as
// "ERROR: <component>: <detail>".
func (c *Converter) Convert(ctx context.Context, sourcePath, requested string, cfg *Config) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
			c.report("convert", err)
		}
	}()

	if cfg == nil {
		cfg = DefaultConfig()
	}

	if !fileutil.FileExists(sourcePath) {
		err := fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
		c.report("convert", err)
		return err
	}

	kinds, err := ResolveKinds(requested, cfg.Type)
	if err != nil {
		c.reportUnsupported(err)
		return err
	}

	var errs []error
	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if !kind.Supported() {
			err := fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
			c.reportUnsupported(err)
			return errors.Join(append(errs, err)...)
		}
		if err := c.convertKind(ctx, sourcePath, kind, cfg); err != nil {
			errs = append(errs, err)
			if errors.Is(err, ErrExport) {
				return errors.Join(errs...)
			}
		}
	}
	return errors.Join(errs...)
}

// convertKind renders, assembles and exports one artifact. The source is
// read again for every kind.
func (c *Converter) convertKind(ctx context.Context, sourcePath string, kind OutputKind, cfg *Config) error {
	target, err := c.targetPath(sourcePath, kind, cfg)
	if err != nil {
		c.report("output directory", err)
		return err
	}

	fmt.Fprintf(c.log, "[mdexport] Converting %s: %s\n", kind, sourcePath)

	raw, err := os.ReadFile(sourcePath) // #nosec G304 -- caller-provided source
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrReadSource, err)
		c.report("convert", err)
		return err
	}

	text, fm, err := pipeline.Preprocess(string(raw))
	c.report("front matter", err)

	report := pipeline.Reporter(c.report)
	image, block := pipeline.Rewriters(string(kind), sourcePath, report)
	renderer := pipeline.NewRenderer(pipeline.RenderOptions{
		Breaks:    cfg.Breaks,
		Image:     image,
		HTMLBlock: block,
		PlantUML: mdext.PlantUMLOptions{
			Server:      cfg.PlantUML.Server,
			Format:      cfg.PlantUML.Format,
			OpenMarker:  cfg.PlantUML.OpenMarker,
			CloseMarker: cfg.PlantUML.CloseMarker,
		},
		Anchor: mdext.AnchorOptions{
			Permalink:       cfg.Anchor.Permalink,
			PermalinkSymbol: cfg.Anchor.PermalinkSymbol,
		},
		Report: report,
	})

	frag, err := renderer.Render(ctx, text)
	if err != nil {
		c.report("markdown", err)
		return err
	}

	loader, err := c.loaderFor(cfg)
	if err != nil {
		c.report("assets", err)
		return err
	}

	html, err := c.assemble(loader, sourcePath, fm, frag, cfg)
	if err != nil {
		c.report("template", err)
		return err
	}

	err = c.exporter.Export(ctx, Artifact{
		TargetPath: target,
		Kind:       kind,
		HTML:       html,
		Config:     cfg,
	})
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrExport, target, err)
		c.report("export", err)
		return err
	}
	return nil
}

// assemble builds the style block and merges it with the rendered fragment
// into the document template.
func (c *Converter) assemble(loader AssetLoader, sourcePath string, fm pipeline.FrontMatter, frag pipeline.Fragment, cfg *Config) (string, error) {
	home, err := c.host.HomeDir()
	if err != nil {
		home = ""
	}
	root, _ := c.workspaceRoot(sourcePath, cfg)

	style := pipeline.NewStyleBuilder(loader, c.report).Build(sourcePath, pipeline.StyleOptions{
		IncludeDefaultStyles: cfg.IncludeDefaultStyles,
		Styles:               cfg.Styles,
		Highlight:            cfg.Highlight,
		HighlightStyle:       cfg.HighlightStyle,
		Href: pipeline.HrefContext{
			Home:                   home,
			WorkspaceRoot:          root,
			StylesRelativePathFile: cfg.StylesRelativePathFile,
		},
	})

	title := filepath.Base(sourcePath)
	if fm.Title != "" {
		title = fm.Title
	}

	doc := pipeline.Document{
		Title:   title,
		Style:   template.HTML(style),     // #nosec G203 -- built from trusted stylesheets
		Content: template.HTML(frag.HTML), // #nosec G203 -- raw HTML is allowed in Markdown
	}
	if frag.HasMath {
		doc.Stylesheets = cfg.Math.Stylesheets
		doc.Scripts = cfg.Math.Scripts
	}

	return pipeline.NewAssembler(loader, c.template).Assemble(doc)
}

// targetPath replaces the extension of sourcePath with the kind and moves
// the file into cfg.OutputDirectory when set. A relative output directory is
// taken from the workspace root, or from the source directory when
// cfg.OutputDirectoryRelativePathFile is set or no workspace is found.
func (c *Converter) targetPath(sourcePath string, kind OutputKind, cfg *Config) (string, error) {
	target := fileutil.ReplaceExt(sourcePath, kind.Extension())
	dir := cfg.OutputDirectory
	if dir == "" {
		return target, nil
	}

	switch {
	case strings.HasPrefix(dir, "~"):
		home, err := c.host.HomeDir()
		if err != nil || home == "" {
			return "", fmt.Errorf("%w: cannot expand %q: no home directory", ErrOutputDirectory, dir)
		}
		dir = fileutil.ExpandHome(dir, home)
	case filepath.IsAbs(dir):
	case cfg.OutputDirectoryRelativePathFile:
		dir = filepath.Join(filepath.Dir(sourcePath), dir)
	default:
		base := filepath.Dir(sourcePath)
		if root, ok := c.workspaceRoot(sourcePath, cfg); ok {
			base = root
		}
		dir = filepath.Join(base, dir)
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutputDirectory, err)
	}
	return filepath.Join(dir, filepath.Base(target)), nil
}

// workspaceRoot prefers cfg.WorkspaceRoot over the host lookup.
func (c *Converter) workspaceRoot(sourcePath string, cfg *Config) (string, bool) {
	if cfg.WorkspaceRoot == "" {
		return c.host.WorkspaceRoot(sourcePath)
	}
	root := cfg.WorkspaceRoot
	if strings.HasPrefix(root, "~") {
		home, err := c.host.HomeDir()
		if err != nil || home == "" {
			return "", false
		}
		root = fileutil.ExpandHome(root, home)
	}
	return root, true
}

// loaderFor returns the asset loader for cfg.Assets.BasePath, falling back
// to the converter's loader.
func (c *Converter) loaderFor(cfg *Config) (AssetLoader, error) {
	base := cfg.Assets.BasePath
	if base == "" {
		return c.loader, nil
	}
	if l, ok := c.loaders[base]; ok {
		return l, nil
	}
	resolver, err := assets.NewAssetResolver(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.loaders[base] = resolver
	return resolver, nil
}

// report writes a failure line to the log.
func (c *Converter) report(component string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(c.log, "ERROR: %s: %v\n", component, err)
}

// reportUnsupported writes an unsupported kind failure with the list of
// supported formats.
func (c *Converter) reportUnsupported(err error) {
	fmt.Fprintf(c.log, "ERROR: convert: %v. %s\n", err, SupportedFormats)
}

// Close releases the exporter (the headless browser).
func (c *Converter) Close() error {
	if c.exporter != nil {
		return c.exporter.Close()
	}
	return nil
}
