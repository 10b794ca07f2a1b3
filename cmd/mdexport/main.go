package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	args := os.Args[1:]

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if slices.Contains(args, "--verbose") || slices.Contains(args, "-v") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
// A first argument that looks like a Markdown file or a glob runs convert.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	switch {
	case isCommand(cmd, "convert"):
		return runConvertCmd(ctx, rest, env)
	case isCommand(cmd, "doctor"):
		return runDoctorCmd(rest, env)
	case isCommand(cmd, "config"):
		return runConfigCmd(rest, env)
	case isCommand(cmd, "version", "--version"):
		fmt.Fprintf(env.Stdout, "mdexport %s\n", Version)
		return ExitSuccess
	case isCommand(cmd, "help", "-h", "--help"):
		return runHelpCmd(rest, env)
	case looksLikeMarkdown(cmd):
		return runConvertCmd(ctx, args, env)
	}

	fmt.Fprintf(env.Stderr, "unknown command %q\n\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// isCommand reports whether arg is one of names.
func isCommand(arg string, names ...string) bool {
	return slices.Contains(names, arg)
}

// looksLikeMarkdown reports whether arg names a Markdown file or a glob.
func looksLikeMarkdown(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return false
	}
	return isMarkdownPath(arg) || hasGlobMeta(arg) || strings.HasSuffix(filepath.ToSlash(arg), "/")
}
