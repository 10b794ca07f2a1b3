package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxURLLength      = 2048  // Browser limit
	MaxNameLength     = 100   // Theme and format names
	MaxTemplateLength = 10000 // PDF header/footer markup
	MaxListLength     = 100   // Entries in styles and scripts
	MaxTypeLength     = 10    // "pdf", "settings"
	MaxLengthLength   = 20    // "1.5cm", "210mm"
)

// Defaults applied when a key is absent.
const (
	DefaultType            = "pdf"
	DefaultHighlightStyle  = "arduino-light"
	DefaultPaperFormat     = "A4"
	DefaultOrientation     = "portrait"
	DefaultScale           = 1.0
	DefaultQuality         = 100
	DefaultPlantUMLServer  = "http://www.plantuml.com/plantuml"
	DefaultPlantUMLFormat  = "svg"
	DefaultOpenMarker      = "@startuml"
	DefaultCloseMarker     = "@enduml"
	DefaultPermalinkSymbol = "¶"
	DefaultTimeout         = "2m"

	KaTeXBaseURL = "https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/"

	DefaultHeaderTemplate = `<div style="font-size: 9px; margin-left: 1cm;"> <span class='title'></span></div> <div style="font-size: 9px; margin-left: auto; margin-right: 1cm; "> <span class='date'></span></div>`
	DefaultFooterTemplate = `<div style="font-size: 9px; margin: 0 auto;"> <span class='pageNumber'></span> / <span class='totalPages'></span></div>`
)

// Config holds every option recognized by the converter.
type Config struct {
	Type                   OutputTypes `yaml:"type"`
	Breaks                 bool        `yaml:"breaks"`
	IncludeDefaultStyles   bool        `yaml:"includeDefaultStyles"`
	Styles                 []string    `yaml:"styles"`
	Highlight              bool        `yaml:"highlight"`
	HighlightStyle         string      `yaml:"highlightStyle"`
	StylesRelativePathFile *bool       `yaml:"stylesRelativePathFile"` // nil = unset; only false enables workspace resolution
	Proxy                  string      `yaml:"proxy"`

	ExecutablePath                  string `yaml:"executablePath"`
	Timeout                         string `yaml:"timeout"` // Go duration, e.g. "90s"
	OutputDirectory                 string `yaml:"outputDirectory"`
	OutputDirectoryRelativePathFile bool   `yaml:"outputDirectoryRelativePathFile"`
	WorkspaceRoot                   string `yaml:"workspaceRoot"`

	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
	Image    ImageConfig    `yaml:"image"`
	PlantUML PlantUMLConfig `yaml:"plantuml"`
	Math     MathConfig     `yaml:"math"`
	Anchor   AnchorConfig   `yaml:"anchor"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PDFConfig mirrors the browser's print-to-PDF options.
type PDFConfig struct {
	Format              string       `yaml:"format"`      // Letter, Legal, Tabloid, Ledger, A0-A6
	Orientation         string       `yaml:"orientation"` // "portrait", "landscape"
	Scale               float64      `yaml:"scale"`       // 0.1 to 2
	PrintBackground     bool         `yaml:"printBackground"`
	DisplayHeaderFooter bool         `yaml:"displayHeaderFooter"`
	HeaderTemplate      string       `yaml:"headerTemplate"`
	FooterTemplate      string       `yaml:"footerTemplate"`
	PageRanges          string       `yaml:"pageRanges"` // e.g. "1-5, 8"
	Width               string       `yaml:"width"`      // CSS length, overrides format
	Height              string       `yaml:"height"`     // CSS length, overrides format
	Margin              MarginConfig `yaml:"margin"`
}

// MarginConfig holds page margins as CSS lengths ("1cm", "10mm", "0.5in", "20px").
type MarginConfig struct {
	Top    string `yaml:"top"`
	Right  string `yaml:"right"`
	Bottom string `yaml:"bottom"`
	Left   string `yaml:"left"`
}

// ImageConfig defines PNG and JPEG screenshot options.
type ImageConfig struct {
	Quality        int         `yaml:"quality"` // JPEG only, 0-100
	Clip           *ClipConfig `yaml:"clip"`    // nil = full page
	OmitBackground bool        `yaml:"omitBackground"`
}

// ClipConfig is the page region captured in CSS pixels.
type ClipConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlantUMLConfig configures diagram rendering.
type PlantUMLConfig struct {
	Server      string `yaml:"server"`
	Format      string `yaml:"format"` // "svg" or "png"
	OpenMarker  string `yaml:"openMarker"`
	CloseMarker string `yaml:"closeMarker"`
}

// MathConfig lists the stylesheets and scripts loaded into documents that
// contain math. The defaults load KaTeX and its auto-render extension, which
// typeset the \( \) and \[ \] delimiters in the browser before export.
// Empty lists leave the TeX source as written.
type MathConfig struct {
	Stylesheets []string `yaml:"stylesheets"`
	Scripts     []string `yaml:"scripts"`
}

// DefaultMathStylesheets returns the KaTeX stylesheet URL.
func DefaultMathStylesheets() []string {
	return []string{KaTeXBaseURL + "katex.min.css"}
}

// DefaultMathScripts returns the KaTeX and auto-render script URLs, in load
// order.
func DefaultMathScripts() []string {
	return []string{
		KaTeXBaseURL + "katex.min.js",
		KaTeXBaseURL + "contrib/auto-render.min.js",
	}
}

// AnchorConfig configures heading anchors.
type AnchorConfig struct {
	Permalink       bool   `yaml:"permalink"`
	PermalinkSymbol string `yaml:"permalinkSymbol"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Type:                 OutputTypes{DefaultType},
		IncludeDefaultStyles: true,
		Highlight:            true,
		HighlightStyle:       "",
		Timeout:              DefaultTimeout,
		PDF: PDFConfig{
			Format:              DefaultPaperFormat,
			Orientation:         DefaultOrientation,
			Scale:               DefaultScale,
			PrintBackground:     true,
			DisplayHeaderFooter: true,
			HeaderTemplate:      DefaultHeaderTemplate,
			FooterTemplate:      DefaultFooterTemplate,
			Margin: MarginConfig{
				Top:    "1.5cm",
				Right:  "1cm",
				Bottom: "1cm",
				Left:   "1cm",
			},
		},
		Image: ImageConfig{Quality: DefaultQuality},
		PlantUML: PlantUMLConfig{
			Server:      DefaultPlantUMLServer,
			Format:      DefaultPlantUMLFormat,
			OpenMarker:  DefaultOpenMarker,
			CloseMarker: DefaultCloseMarker,
		},
		Math: MathConfig{
			Stylesheets: DefaultMathStylesheets(),
			Scripts:     DefaultMathScripts(),
		},
		Anchor: AnchorConfig{PermalinkSymbol: DefaultPermalinkSymbol},
	}
}

// TimeoutDuration parses Timeout. An empty value yields zero and the caller
// picks its default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Validate checks enums, ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., library users).
// Output kinds inside Type are not checked here; the converter rejects
// unsupported kinds when it reaches them.
func (c *Config) Validate() error {
	for i, kind := range c.Type {
		if err := validateFieldLength(fmt.Sprintf("type[%d]", i), kind, MaxTypeLength); err != nil {
			return err
		}
	}

	if err := validateList("styles", c.Styles, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlightStyle", c.HighlightStyle, MaxNameLength); err != nil {
		return err
	}
	for field, value := range map[string]string{
		"proxy":           c.Proxy,
		"executablePath":  c.ExecutablePath,
		"outputDirectory": c.OutputDirectory,
		"workspaceRoot":   c.WorkspaceRoot,
		"assets.basePath": c.Assets.BasePath,
		"plantuml.server": c.PlantUML.Server,
	} {
		if err := validateFieldLength(field, value, MaxURLLength); err != nil {
			return err
		}
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if err := c.PDF.validate(); err != nil {
		return err
	}
	if err := c.Image.validate(); err != nil {
		return err
	}

	switch strings.ToLower(c.PlantUML.Format) {
	case "", "svg", "png":
	default:
		return fmt.Errorf("%w: plantuml.format %q (must be svg or png)", ErrInvalidValue, c.PlantUML.Format)
	}

	if err := validateList("math.stylesheets", c.Math.Stylesheets, MaxURLLength); err != nil {
		return err
	}
	return validateList("math.scripts", c.Math.Scripts, MaxURLLength)
}

func (p *PDFConfig) validate() error {
	if p.Format != "" {
		if _, ok := LookupPaperSize(p.Format); !ok {
			return fmt.Errorf("%w: pdf.format %q (must be one of %s)", ErrInvalidValue, p.Format, strings.Join(PaperFormats(), ", "))
		}
	}
	switch strings.ToLower(p.Orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("%w: pdf.orientation %q (must be portrait or landscape)", ErrInvalidValue, p.Orientation)
	}
	if p.Scale != 0 && (p.Scale < 0.1 || p.Scale > 2) {
		return fmt.Errorf("%w: pdf.scale must be between 0.1 and 2, got %.2f", ErrInvalidValue, p.Scale)
	}
	if err := validateFieldLength("pdf.headerTemplate", p.HeaderTemplate, MaxTemplateLength); err != nil {
		return err
	}
	if err := validateFieldLength("pdf.footerTemplate", p.FooterTemplate, MaxTemplateLength); err != nil {
		return err
	}
	if err := validateFieldLength("pdf.pageRanges", p.PageRanges, MaxNameLength); err != nil {
		return err
	}

	lengths := []struct {
		field string
		value string
	}{
		{"pdf.width", p.Width},
		{"pdf.height", p.Height},
		{"pdf.margin.top", p.Margin.Top},
		{"pdf.margin.right", p.Margin.Right},
		{"pdf.margin.bottom", p.Margin.Bottom},
		{"pdf.margin.left", p.Margin.Left},
	}
	for _, l := range lengths {
		if l.value == "" {
			continue
		}
		if err := validateFieldLength(l.field, l.value, MaxLengthLength); err != nil {
			return err
		}
		if _, err := ParseLength(l.value); err != nil {
			return fmt.Errorf("%s: %w", l.field, err)
		}
	}
	return nil
}

func (i *ImageConfig) validate() error {
	if i.Quality < 0 || i.Quality > 100 {
		return fmt.Errorf("%w: image.quality must be between 0 and 100, got %d", ErrInvalidValue, i.Quality)
	}
	if i.Clip != nil {
		if i.Clip.X < 0 || i.Clip.Y < 0 {
			return fmt.Errorf("%w: image.clip origin must not be negative", ErrInvalidValue)
		}
		if i.Clip.Width <= 0 || i.Clip.Height <= 0 {
			return fmt.Errorf("%w: image.clip width and height must be positive", ErrInvalidValue)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateList(fieldName string, values []string, maxLength int) error {
	if len(values) > MaxListLength {
		return fmt.Errorf("%w: %s (%d entries, max %d)", ErrFieldTooLong, fieldName, len(values), MaxListLength)
	}
	for i, v := range values {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", fieldName, i), v, maxLength); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// current directory then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-mdexport", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
