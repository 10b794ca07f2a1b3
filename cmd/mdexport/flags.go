package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds stylesheet flags.
type styleFlags struct {
	styles          []string // replaces config styles when given
	noDefaultStyles bool
	noHighlight     bool
	highlightStyle  string
}

// browserFlags holds headless browser flags.
type browserFlags struct {
	executablePath string
	proxy          string
}

// assetFlags holds template and asset directory flags.
type assetFlags struct {
	assetPath string
	template  string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common        commonFlags
	kind          string
	outputDir     string
	workspaceRoot string
	timeout       string
	breaks        bool
	style         styleFlags
	browser       browserFlags
	assets        assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringArrayVar(&f.styles, "style", nil, "stylesheet href, repeatable (path, ~/path or URL)")
	fs.BoolVar(&f.noDefaultStyles, "no-default-styles", false, "omit the built-in stylesheets")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "highlight theme (chroma style or stylesheet name)")
}

// addBrowserFlags adds headless browser flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.executablePath, "executable-path", "", "Chrome or Chromium executable")
	fs.StringVar(&f.proxy, "proxy", "", "proxy URL for the Chromium download")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.template, "template", "", "document template name")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.kind, "type", "t", "", "output type: pdf, html, png, jpeg, all, settings, or a list such as pdf,png")
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "output directory")
	fs.StringVar(&f.workspaceRoot, "workspace-root", "", "workspace root for relative paths")
	fs.StringVar(&f.timeout, "timeout", "", "export timeout per artifact (e.g., 30s, 2m)")
	fs.BoolVar(&f.breaks, "breaks", false, "render soft line breaks as <br>")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addBrowserFlags(fs, &f.browser)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
