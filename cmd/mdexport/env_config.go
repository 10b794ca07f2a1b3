package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-mdexport/internal/config"
)

// envConfig holds configuration from MDEXPORT_* environment variables.
type envConfig struct {
	ConfigPath     string // MDEXPORT_CONFIG: config file name or path
	Type           string // MDEXPORT_TYPE: requested output type
	OutputDir      string // MDEXPORT_OUTPUT_DIR: output directory
	Timeout        string // MDEXPORT_TIMEOUT: export timeout
	ExecutablePath string // MDEXPORT_EXECUTABLE_PATH: browser executable
	Proxy          string // MDEXPORT_PROXY: proxy for the browser download
	HighlightStyle string // MDEXPORT_HIGHLIGHT_STYLE: highlight theme
	AssetPath      string // MDEXPORT_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid MDEXPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDEXPORT_CONFIG":          true,
	"MDEXPORT_TYPE":            true,
	"MDEXPORT_OUTPUT_DIR":      true,
	"MDEXPORT_TIMEOUT":         true,
	"MDEXPORT_EXECUTABLE_PATH": true,
	"MDEXPORT_PROXY":           true,
	"MDEXPORT_HIGHLIGHT_STYLE": true,
	"MDEXPORT_ASSET_PATH":      true,
	"MDEXPORT_CONTAINER":       true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:     os.Getenv("MDEXPORT_CONFIG"),
		Type:           os.Getenv("MDEXPORT_TYPE"),
		OutputDir:      os.Getenv("MDEXPORT_OUTPUT_DIR"),
		Timeout:        os.Getenv("MDEXPORT_TIMEOUT"),
		ExecutablePath: os.Getenv("MDEXPORT_EXECUTABLE_PATH"),
		Proxy:          os.Getenv("MDEXPORT_PROXY"),
		HighlightStyle: os.Getenv("MDEXPORT_HIGHLIGHT_STYLE"),
		AssetPath:      os.Getenv("MDEXPORT_ASSET_PATH"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MDEXPORT_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDEXPORT_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment values to fields the config file left
// unset, so that CLI flags > env vars > config file > defaults. CLI flags
// are applied afterwards by mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.OutputDirectory == "" {
		cfg.OutputDirectory = env.OutputDir
	}
	if env.Timeout != "" && (cfg.Timeout == "" || cfg.Timeout == config.DefaultTimeout) {
		cfg.Timeout = env.Timeout
	}
	if env.ExecutablePath != "" && cfg.ExecutablePath == "" {
		cfg.ExecutablePath = env.ExecutablePath
	}
	if env.Proxy != "" && cfg.Proxy == "" {
		cfg.Proxy = env.Proxy
	}
	if env.HighlightStyle != "" && cfg.HighlightStyle == "" {
		cfg.HighlightStyle = env.HighlightStyle
	}
}
