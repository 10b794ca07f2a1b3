package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mdexport "github.com/alnah/go-mdexport"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// fakeExporter writes the assembled HTML to the target path instead of
// driving a browser, and records every artifact.
type fakeExporter struct {
	mu        sync.Mutex
	artifacts []mdexport.Artifact
	err       error
}

func (f *fakeExporter) Export(_ context.Context, a mdexport.Artifact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.artifacts = append(f.artifacts, a)
	return os.WriteFile(a.TargetPath, []byte(a.HTML), 0o600)
}

func (f *fakeExporter) Close() error { return nil }

func (f *fakeExporter) targets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.artifacts))
	for i, a := range f.artifacts {
		out[i] = a.TargetPath
	}
	return out
}

// noWorkspace is a host without home directory or workspace.
type noWorkspace struct{}

func (noWorkspace) HomeDir() (string, error)            { return "", os.ErrNotExist }
func (noWorkspace) WorkspaceRoot(string) (string, bool) { return "", false }

// testEnv returns an Environment with buffers, a fixed clock and a fake
// exporter.
func testEnv(exp *fakeExporter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &Environment{
		Now:      func() time.Time { return now },
		Stdout:   &stdout,
		Stderr:   &stderr,
		Exporter: exp,
		Host:     noWorkspace{},
	}, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return dir
}
