package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexport <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert Markdown files to PDF, HTML, PNG or JPEG")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  doctor     Check the browser and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdexport help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexport convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files. Each artifact is written next to its source")
	fmt.Fprintln(w, "with the extension replaced, or into --output-dir.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or quoted glob ('docs/**/*.md')")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -t, --type <s>              pdf, html, png, jpeg, all, settings, or a list (pdf,png)")
	fmt.Fprintln(w, "  -o, --output-dir <path>     Output directory (absolute, ~/..., or workspace-relative)")
	fmt.Fprintln(w, "      --workspace-root <path> Workspace root for relative paths")
	fmt.Fprintln(w, "      --timeout <d>           Export timeout per artifact (default: 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --breaks                Render soft line breaks as <br>")
	fmt.Fprintln(w, "      --style <href>          Extra stylesheet (repeatable)")
	fmt.Fprintln(w, "      --no-default-styles     Omit the built-in stylesheets")
	fmt.Fprintln(w, "      --no-highlight          Disable syntax highlighting")
	fmt.Fprintln(w, "      --highlight-style <s>   Highlight theme (default: arduino-light)")
	fmt.Fprintln(w, "      --template <name>       Document template name")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --executable-path <p>   Chrome or Chromium executable")
	fmt.Fprintln(w, "      --proxy <url>           Proxy for the Chromium download")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show timings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDEXPORT_CONFIG, MDEXPORT_TYPE, MDEXPORT_OUTPUT_DIR, MDEXPORT_TIMEOUT,")
	fmt.Fprintln(w, "  MDEXPORT_EXECUTABLE_PATH, MDEXPORT_PROXY, MDEXPORT_HIGHLIGHT_STYLE,")
	fmt.Fprintln(w, "  MDEXPORT_ASSET_PATH. Flags take precedence over the environment,")
	fmt.Fprintln(w, "  which takes precedence over the config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  mdexport convert README.md")
	fmt.Fprintln(w, "  mdexport convert -t all docs/")
	fmt.Fprintln(w, "  mdexport convert -t png -o build 'docs/**/*.md'")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexport doctor [-c config] [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the configuration, the browser used for PDF, PNG and JPEG")
	fmt.Fprintln(w, "export, the custom asset directory, sandbox settings and temp")
	fmt.Fprintln(w, "directory access.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config string   Config file name or path")
	fmt.Fprintln(w, "      --json            Machine-readable output")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexport config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration convert would use (config file and")
	fmt.Fprintln(w, "MDEXPORT_* variables applied to the defaults) as YAML.")
}

// runHelpCmd prints help for a command, or the main usage.
func runHelpCmd(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version", "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n", args[0])
		return ExitUsage
	}
	return ExitSuccess
}
