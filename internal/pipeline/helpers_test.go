package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/alnah/go-mdexport/internal/assets"
)

// fakeLoader serves styles and templates from maps.
type fakeLoader struct {
	styles    map[string]string
	templates map[string]string
	err       error // returned for every style when set
}

func (f *fakeLoader) LoadStyle(name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	css, ok := f.styles[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", assets.ErrStyleNotFound, name)
	}
	return css, nil
}

func (f *fakeLoader) LoadTemplate(name string) (string, error) {
	tmpl, ok := f.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", assets.ErrTemplateNotFound, name)
	}
	return tmpl, nil
}

// recorder collects reported failures.
type recorder struct {
	mu      sync.Mutex
	reports []string
}

func (r *recorder) report(component string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, component+": "+err.Error())
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reports...)
}

// skipOnWindows skips tests written against slash-rooted absolute paths.
func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses Unix absolute paths")
	}
}

const testDoc = "/work/docs/readme.md"
