package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	mdexport "github.com/alnah/go-mdexport"
)

// ErrInvalidExtension is returned for an explicit input that is not Markdown.
var ErrInvalidExtension = errors.New("file must have .md or .markdown extension")

// markdownPattern matches Markdown file names.
const markdownPattern = "*.{md,markdown}"

// discoverFiles expands the arguments into Markdown files, in argument
// order without duplicates. Directories are walked recursively and globs
// ("docs/**/*.md") are expanded; matches that are not Markdown are skipped.
func discoverFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := filepath.Clean(path)
		if !seen[key] {
			seen[key] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		if hasGlobMeta(arg) {
			matches, err := expandGlob(arg)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", mdexport.ErrSourceNotFound, arg)
		}
		if !info.IsDir() {
			if !isMarkdownPath(arg) {
				return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(arg))
			}
			add(arg)
			continue
		}

		found, err := walkMarkdown(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

// expandGlob returns the Markdown files matching pattern.
func expandGlob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", pattern, err)
	}

	files := matches[:0]
	for _, m := range matches {
		if isMarkdownPath(m) {
			files = append(files, m)
		}
	}
	slices.Sort(files)
	return files, nil
}

// walkMarkdown finds the Markdown files under dir, skipping hidden
// directories such as .git.
func walkMarkdown(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdownPath(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// isMarkdownPath reports whether the file name has a Markdown extension,
// case-insensitively.
func isMarkdownPath(path string) bool {
	ok, _ := doublestar.Match(markdownPattern, strings.ToLower(filepath.Base(path)))
	return ok
}

// hasGlobMeta reports whether arg contains glob syntax.
func hasGlobMeta(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}
