package mdexport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/rod/lib/utils"

	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/process"
)

// defaultTimeout bounds one browser export when the config sets none.
const defaultTimeout = 2 * time.Minute

// BrowserOptions configures a BrowserExporter.
type BrowserOptions struct {
	Timeout time.Duration // per export when Config.Timeout is empty; zero = 2m
	Log     io.Writer     // browser download progress; nil = discard
}

// BrowserExporter writes HTML artifacts directly and renders PDF, PNG and
// JPEG artifacts in headless Chrome through go-rod. The browser is started
// on first use and reused until Close.
//
// The browser binary is, in order: Config.ExecutablePath, $ROD_BROWSER_BIN,
// a Chrome found on the system, or a Chromium downloaded by rod. Downloads
// go through Config.Proxy when set.
type BrowserExporter struct {
	opts BrowserOptions

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewBrowserExporter creates a BrowserExporter. No browser is started.
func NewBrowserExporter(opts BrowserOptions) *BrowserExporter {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Log == nil {
		opts.Log = io.Discard
	}
	return &BrowserExporter{opts: opts}
}

// Export writes a.HTML for the html kind; other kinds are rendered from a
// temporary HTML file created next to the target, so relative paths left in
// raw HTML still resolve.
func (e *BrowserExporter) Export(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := a.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if a.Kind == KindHTML {
		return writeOutput(a.TargetPath, []byte(a.HTML))
	}

	timeout, err := e.timeout(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tmpPath, cleanup, err := fileutil.WriteTempFile(filepath.Dir(a.TargetPath), a.HTML, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	defer cleanup()

	data, err := e.render(ctx, tmpPath, a.Kind, cfg)
	if err != nil {
		return err
	}
	return writeOutput(a.TargetPath, data)
}

func (e *BrowserExporter) timeout(cfg *Config) (time.Duration, error) {
	d, err := cfg.TimeoutDuration()
	if err != nil {
		return 0, err
	}
	if d == 0 {
		d = e.opts.Timeout
	}
	return d, nil
}

// render opens filePath in the browser and captures it as kind.
func (e *BrowserExporter) render(ctx context.Context, filePath string, kind OutputKind, cfg *Config) ([]byte, error) {
	browser, err := e.ensureBrowser(cfg)
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageLoad, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	// Math is typeset on DOMContentLoaded; the KaTeX fonts can outlive the load event.
	if _, err := page.Eval(`() => document.fonts.ready.then(() => true)`); err != nil {
		return nil, fmt.Errorf("%w: waiting for fonts: %v", ErrPageLoad, err)
	}

	switch kind {
	case KindPDF:
		return printPDF(page, cfg)
	case KindPNG, KindJPEG:
		return screenshot(page, kind, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

// printPDF prints the page with the options of cfg.PDF.
func printPDF(page *rod.Page, cfg *Config) ([]byte, error) {
	opts, err := pdfOptions(cfg.PDF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	reader, err := page.PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// pdfOptions converts the pdf config block into print parameters. Width and
// height override the paper format; lengths are converted to inches.
func pdfOptions(p config.PDFConfig) (*proto.PagePrintToPDF, error) {
	opts := &proto.PagePrintToPDF{
		Landscape:           strings.EqualFold(p.Orientation, "landscape"),
		DisplayHeaderFooter: p.DisplayHeaderFooter,
		PrintBackground:     p.PrintBackground,
		HeaderTemplate:      p.HeaderTemplate,
		FooterTemplate:      p.FooterTemplate,
		PageRanges:          p.PageRanges,
	}
	if p.Scale > 0 {
		opts.Scale = floatPtr(p.Scale)
	}

	format := p.Format
	if format == "" {
		format = config.DefaultPaperFormat
	}
	size, ok := config.LookupPaperSize(format)
	if !ok {
		return nil, fmt.Errorf("unknown paper format %q", p.Format)
	}
	width, height := size.Width, size.Height

	lengths := []struct {
		value string
		dst   *float64
	}{
		{p.Width, &width},
		{p.Height, &height},
	}
	for _, l := range lengths {
		if l.value == "" {
			continue
		}
		v, err := config.ParseLength(l.value)
		if err != nil {
			return nil, err
		}
		*l.dst = v
	}
	opts.PaperWidth = floatPtr(width)
	opts.PaperHeight = floatPtr(height)

	margins := []struct {
		value string
		dst   **float64
	}{
		{p.Margin.Top, &opts.MarginTop},
		{p.Margin.Right, &opts.MarginRight},
		{p.Margin.Bottom, &opts.MarginBottom},
		{p.Margin.Left, &opts.MarginLeft},
	}
	for _, m := range margins {
		if m.value == "" {
			continue
		}
		v, err := config.ParseLength(m.value)
		if err != nil {
			return nil, err
		}
		*m.dst = floatPtr(v)
	}

	return opts, nil
}

// screenshot captures the full page, or the clip region when configured.
func screenshot(page *rod.Page, kind OutputKind, cfg *Config) ([]byte, error) {
	img := cfg.Image
	if img.OmitBackground {
		transparent := 0.0
		err := proto.EmulationSetDefaultBackgroundColorOverride{
			Color: &proto.DOMRGBA{A: &transparent},
		}.Call(page)
		if err != nil {
			return nil, fmt.Errorf("%w: clearing background: %v", ErrScreenshot, err)
		}
	}

	req := screenshotRequest(kind, img)
	data, err := page.Screenshot(img.Clip == nil, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return data, nil
}

// screenshotRequest builds capture parameters. Quality applies to JPEG only.
func screenshotRequest(kind OutputKind, img config.ImageConfig) *proto.PageCaptureScreenshot {
	req := &proto.PageCaptureScreenshot{Format: proto.PageCaptureScreenshotFormatPng}
	if kind == KindJPEG {
		req.Format = proto.PageCaptureScreenshotFormatJpeg
		quality := img.Quality
		req.Quality = &quality
	}
	if img.Clip != nil {
		req.Clip = &proto.PageViewport{
			X:      img.Clip.X,
			Y:      img.Clip.Y,
			Width:  img.Clip.Width,
			Height: img.Clip.Height,
			Scale:  1,
		}
		req.CaptureBeyondViewport = true
	}
	return req
}

// ensureBrowser lazily launches and connects to the browser.
func (e *BrowserExporter) ensureBrowser(cfg *Config) (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		return e.browser, nil
	}

	bin, err := e.browserBin(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	l := launcher.New().Bin(bin)
	// Sandboxing fails in most containers and CI runners.
	if noSandbox() {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.launcher = l
	e.browser = browser
	return browser, nil
}

// browserBin locates a browser executable, downloading Chromium as a last
// resort.
func (e *BrowserExporter) browserBin(cfg *Config) (string, error) {
	if cfg.ExecutablePath != "" {
		if !fileutil.FileExists(cfg.ExecutablePath) {
			return "", fmt.Errorf("executablePath %q not found", cfg.ExecutablePath)
		}
		return cfg.ExecutablePath, nil
	}
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, nil
	}
	if bin, found := launcher.LookPath(); found {
		return bin, nil
	}

	fmt.Fprintln(e.opts.Log, "[mdexport] Installing Chromium ...")
	b := launcher.NewBrowser()
	b.Logger = utils.LoggerQuiet
	client, err := downloadClient(cfg.Proxy)
	if err != nil {
		return "", err
	}
	b.HTTPClient = client
	bin, err := b.Get()
	if err != nil {
		return "", fmt.Errorf("downloading Chromium: %w", err)
	}
	fmt.Fprintf(e.opts.Log, "[mdexport] Chromium downloaded to %s\n", bin)
	return bin, nil
}

// downloadClient returns the HTTP client used to fetch Chromium. A proxy
// applies to this client only; the process environment is left untouched.
func downloadClient(proxy string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", proxy, err)
		}
		transport.Proxy = http.ProxyURL(u)
	}
	return &http.Client{Transport: transport}, nil
}

func noSandbox() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// Close shuts the browser down and kills its process group.
func (e *BrowserExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	pid := e.launcher.PID()
	e.launcher.Kill()
	if killErr := process.KillTree(pid); killErr != nil {
		err = errors.Join(err, killErr)
	}

	e.browser = nil
	e.launcher = nil
	return err
}

// fileURL returns the file URL of a local path.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	p := filepath.ToSlash(abs)
	if runtime.GOOS == "windows" {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
