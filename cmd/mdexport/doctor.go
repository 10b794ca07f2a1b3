package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	mdexport "github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/hints"
)

const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorInput is what the checks need from flags and MDEXPORT_* variables.
// Empty fields fall back to the loaded configuration.
type doctorInput struct {
	configName     string
	executablePath string
	assetPath      string
}

type doctorResult struct {
	Status   string      `json:"status"`
	Config   configInfo  `json:"config"`
	Browser  browserInfo `json:"browser"`
	Assets   assetsInfo  `json:"assets"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Formats  []string    `json:"formats"`
	Styles   []string    `json:"styles"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type configInfo struct {
	Name   string `json:"name,omitempty"` // empty when running on defaults
	Loaded bool   `json:"loaded"`
}

type browserInfo struct {
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Source   string `json:"source,omitempty"` // executable-path, ROD_BROWSER_BIN, system
	Version  string `json:"version,omitempty"`
	Sandbox  bool   `json:"sandbox"`
	Download bool   `json:"download"` // fetched on first export
}

type assetsInfo struct {
	BasePath string `json:"base_path,omitempty"`
	Custom   bool   `json:"custom"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd reports whether exports can run here. Warnings still exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var asJSON bool
	var name string
	fs.BoolVar(&asJSON, "json", false, "print the report as JSON")
	fs.StringVarP(&name, "config", "c", "", "config file name or path")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	envCfg := loadEnvConfig()
	result := runDoctor(doctorInput{
		configName:     configName(name),
		executablePath: envCfg.ExecutablePath,
		assetPath:      envCfg.AssetPath,
	})

	if asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor(in doctorInput) *doctorResult {
	result := &doctorResult{
		Formats: mdexport.OutputKinds(mdexport.SupportedKinds()).Strings(),
		Styles:  assets.BuiltinStyles(),
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkConfig(result, &in)
	checkBrowser(result, in.executablePath)
	checkAssets(result, in.assetPath)
	checkEnvironment(result)
	checkSystem(result)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	default:
		result.Status = statusReady
	}
	return result
}

// checkConfig loads the configuration a conversion would use and fills the
// input fields it leaves empty.
func checkConfig(result *doctorResult, in *doctorInput) {
	result.Config.Name = in.configName
	cfg, err := loadConfig(in.configName, "")
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		result.fail("%v", err)
		return
	}
	result.Config.Loaded = true
	if in.executablePath == "" {
		in.executablePath = cfg.ExecutablePath
	}
	if in.assetPath == "" {
		in.assetPath = cfg.Assets.BasePath
	}
}

// checkBrowser locates the browser the exporter would launch. A missing
// browser is a warning because the exporter downloads one.
func checkBrowser(result *doctorResult, executablePath string) {
	path, source := executablePath, "executable-path"
	if path == "" {
		path, source = result.Env.BrowserBin, "ROD_BROWSER_BIN"
	}
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			result.Browser.Download = true
			result.warn("Chrome/Chromium not found; Chromium will be downloaded on first export (use --proxy behind a proxy)")
			return
		}
		source = "system"
	}
	if !fileutil.FileExists(path) {
		result.fail("browser not found at %s (from %s)", path, source)
		return
	}

	result.Browser = browserInfo{
		Found:   true,
		Path:    path,
		Source:  source,
		Sandbox: result.Env.NoSandbox != "1",
	}
	// #nosec G204 -- the binary the exporter would launch anyway
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		result.warn("could not get browser version: %v", err)
		return
	}
	result.Browser.Version = strings.TrimSpace(string(out))
}

// checkAssets opens the custom asset directory the converter would layer
// over the embedded stylesheets.
func checkAssets(result *doctorResult, basePath string) {
	if basePath == "" {
		return
	}
	result.Assets.BasePath = basePath
	if _, err := assets.NewAssetResolver(basePath); err != nil {
		result.fail("%v", err)
		return
	}
	result.Assets.Custom = true
}

func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()
	result.Env.CI = hints.IsInCI()

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.warn("container/CI detected but ROD_NO_SANDBOX not set; set ROD_NO_SANDBOX=1")
	}
}

// isContainer returns the first container signal found, if any.
func isContainer() (bool, string) {
	if os.Getenv("MDEXPORT_CONTAINER") == "1" {
		return true, "MDEXPORT_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem writes a throwaway HTML page where the exporter writes its own.
func checkSystem(result *doctorResult) {
	dir := os.TempDir()
	_, cleanup, err := fileutil.WriteTempFile(dir, "<p>doctor</p>", "html")
	if err != nil {
		result.fail("temp directory not writable: %s", dir)
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// reportLine is one tagged line of the human-readable report.
type reportLine struct {
	tag  string
	text string
}

func okLine(format string, args ...any) reportLine {
	return reportLine{"OK", fmt.Sprintf(format, args...)}
}

func printSection(w io.Writer, title string, lines ...reportLine) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, l := range lines {
		fmt.Fprintf(w, "  [%s] %s\n", l.tag, l.text)
	}
	fmt.Fprintln(w)
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdexport doctor")
	fmt.Fprintln(w)

	var config []reportLine
	switch {
	case r.Config.Loaded && r.Config.Name != "":
		config = append(config, okLine("Loaded %s", r.Config.Name))
	case r.Config.Loaded:
		config = append(config, okLine("Defaults (no config file)"))
	case r.Config.Name != "":
		config = append(config, reportLine{"ERROR", "Could not load " + r.Config.Name})
	}
	printSection(w, "Config", config...)

	var browser []reportLine
	switch {
	case r.Browser.Found:
		browser = append(browser, okLine("Found at %s (%s)", r.Browser.Path, r.Browser.Source))
		if r.Browser.Version != "" {
			browser = append(browser, okLine("Version: %s", r.Browser.Version))
		}
		if r.Browser.Sandbox {
			browser = append(browser, okLine("Sandbox: enabled"))
		} else {
			browser = append(browser, okLine("Sandbox: disabled (ROD_NO_SANDBOX=1)"))
		}
	case r.Browser.Download:
		browser = append(browser, reportLine{"WARN", "Not found, will be downloaded"})
	default:
		browser = append(browser, reportLine{"ERROR", "Not found"})
	}
	printSection(w, "Browser", browser...)

	styles := okLine("Styles: %s", strings.Join(r.Styles, ", "))
	switch {
	case r.Assets.Custom:
		printSection(w, "Assets", okLine("Custom directory: %s", r.Assets.BasePath), styles)
	case r.Assets.BasePath != "":
		printSection(w, "Assets", reportLine{"ERROR", "Custom directory unusable: " + r.Assets.BasePath}, styles)
	default:
		printSection(w, "Assets", styles)
	}

	env := []reportLine{okLine("Platform: %s/%s", r.Env.OS, r.Env.Arch)}
	if r.Env.Container {
		env = append(env, okLine("Container: detected (%s)", r.Env.ContainerHint))
	}
	if r.Env.CI {
		env = append(env, okLine("CI: detected"))
	}
	printSection(w, "Environment", env...)

	temp := okLine("Temp directory: writable")
	if !r.System.TempWritable {
		temp = reportLine{"ERROR", "Temp directory: not writable"}
	}
	printSection(w, "System", temp, okLine("Formats: %s", strings.Join(r.Formats, ", ")))

	warnings := make([]reportLine, 0, len(r.Warnings))
	for _, msg := range r.Warnings {
		warnings = append(warnings, reportLine{"WARN", msg})
	}
	printSection(w, "Warnings:", warnings...)

	errs := make([]reportLine, 0, len(r.Errors))
	for _, msg := range r.Errors {
		errs = append(errs, reportLine{"ERROR", msg})
	}
	printSection(w, "Errors:", errs...)

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
