package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	mdexport "github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
)

// ErrNoInput is returned when no Markdown file matches the arguments.
var ErrNoInput = errors.New("no input specified")

// ConversionResult holds the outcome of converting one file.
type ConversionResult struct {
	InputPath string
	Err       error
	Duration  time.Duration
}

// batchError reports the failed files of a run. It unwraps to every file
// error so exit codes and hints see the causes.
type batchError struct {
	failed int
	errs   []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() []error { return e.errs }

// runConvertCmd parses flags, runs the conversion and prints the error with
// hints. Returns the exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configName(flags.common.config)))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert resolves configuration and inputs, then converts each file in
// turn with one Converter so the browser is started once.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	requested := resolveRequest(flags.kind, envCfg.Type, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := mdexport.ResolveKinds(requested, cfg.Type); err != nil {
		return err
	}

	files, err := discoverFiles(positional)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoInput
	}

	conv, err := newConverter(flags, envCfg, env)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	results := make([]ConversionResult, 0, len(files))
	for _, file := range files {
		if ctx.Err() != nil {
			results = append(results, ConversionResult{InputPath: file, Err: ctx.Err()})
			continue
		}
		start := env.Now()
		err := conv.Convert(ctx, file, requested, cfg)
		results = append(results, ConversionResult{
			InputPath: file,
			Err:       err,
			Duration:  env.Now().Sub(start),
		})
	}

	return printResults(results, flags.common.quiet, flags.common.verbose, env)
}

// loadConfig loads the config named by the flag, then by MDEXPORT_CONFIG,
// falling back to defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configName returns the config name a run uses: the flag, else
// MDEXPORT_CONFIG.
func configName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("MDEXPORT_CONFIG")
}

// resolveRequest picks the requested output type: flag, then MDEXPORT_TYPE,
// then the config "type" setting. A comma list such as "pdf,png" replaces
// cfg.Type and is requested as settings.
func resolveRequest(flagValue, envValue string, cfg *config.Config) string {
	requested := flagValue
	if requested == "" {
		requested = envValue
	}
	if requested == "" {
		return mdexport.RequestSettings
	}
	if strings.Contains(requested, ",") {
		cfg.Type = config.ParseOutputTypes(requested)
		return mdexport.RequestSettings
	}
	return requested
}

// newConverter builds the Converter for a run. Conversion logs go to
// stderr unless --quiet.
func newConverter(flags *convertFlags, envCfg *envConfig, env *Environment) (*mdexport.Converter, error) {
	var log io.Writer = env.Stderr
	if flags.common.quiet {
		log = io.Discard
	}

	opts := []mdexport.Option{mdexport.WithLogOutput(log)}
	assetPath := flags.assets.assetPath
	if assetPath == "" {
		assetPath = envCfg.AssetPath
	}
	if assetPath != "" {
		opts = append(opts, mdexport.WithAssetPath(assetPath))
	}
	if flags.assets.template != "" {
		opts = append(opts, mdexport.WithTemplate(flags.assets.template))
	}
	if env.Exporter != nil {
		opts = append(opts, mdexport.WithExporter(env.Exporter))
	}
	if env.Host != nil {
		opts = append(opts, mdexport.WithHost(env.Host))
	}
	return mdexport.NewConverter(opts...)
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.outputDir != "" {
		cfg.OutputDirectory = flags.outputDir
	}
	if flags.workspaceRoot != "" {
		cfg.WorkspaceRoot = flags.workspaceRoot
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.breaks {
		cfg.Breaks = true
	}

	if len(flags.style.styles) > 0 {
		cfg.Styles = flags.style.styles
	}
	if flags.style.noDefaultStyles {
		cfg.IncludeDefaultStyles = false
	}
	if flags.style.noHighlight {
		cfg.Highlight = false
	}
	if flags.style.highlightStyle != "" {
		cfg.HighlightStyle = flags.style.highlightStyle
	}

	if flags.browser.executablePath != "" {
		cfg.ExecutablePath = flags.browser.executablePath
	}
	if flags.browser.proxy != "" {
		cfg.Proxy = flags.browser.proxy
	}
}

// printResults prints one line per file and a summary for batches. Returns
// a batchError when any file failed.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "Converted %s (%v)\n", r.InputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Converted %s\n", r.InputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-len(errs), len(errs))
	}

	if len(errs) > 0 {
		return &batchError{failed: len(errs), errs: errs}
	}
	return nil
}
