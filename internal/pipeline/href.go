package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrMalformedHref indicates an href could not be resolved. Callers report
// it and keep the original href.
var ErrMalformedHref = errors.New("malformed href")

// HrefContext carries the host facts a stylesheet href may depend on.
type HrefContext struct {
	Home                   string // user home directory, for "~" hrefs
	WorkspaceRoot          string // empty when the source is outside a workspace
	StylesRelativePathFile *bool  // only an explicit false selects the workspace root
}

// baseDir returns the directory relative hrefs are resolved against.
func (hc HrefContext) baseDir(docPath string) string {
	if hc.StylesRelativePathFile != nil && !*hc.StylesRelativePathFile && hc.WorkspaceRoot != "" {
		return hc.WorkspaceRoot
	}
	return filepath.Dir(docPath)
}

// ResolveHref turns a stylesheet href into a URI the browser can load
// whatever directory it renders from. The first matching rule wins:
//
//   - http(s) URLs are returned unchanged
//   - "~" is replaced by the home directory
//   - absolute paths and file: URIs become file:// URIs
//   - relative paths are resolved against the workspace root or the
//     document directory (see HrefContext)
//
// An empty href is returned as is. On error the original href is returned
// along with an error wrapping ErrMalformedHref.
func ResolveHref(docPath, raw string, hc HrefContext) (string, error) {
	if raw == "" {
		return raw, nil
	}

	u, parseErr := url.Parse(raw)
	if parseErr == nil && (strings.EqualFold(u.Scheme, "http") || strings.EqualFold(u.Scheme, "https")) {
		return raw, nil
	}

	if strings.HasPrefix(raw, "~") {
		if hc.Home == "" {
			return raw, fmt.Errorf("%w: %q: home directory unknown", ErrMalformedHref, raw)
		}
		return pathToFileURL(hc.Home + raw[1:]), nil
	}

	if filepath.IsAbs(raw) {
		return pathToFileURL(raw), nil
	}

	if parseErr != nil {
		return raw, fmt.Errorf("%w: %q: %v", ErrMalformedHref, raw, parseErr)
	}

	if strings.EqualFold(u.Scheme, "file") {
		p := u.Path
		if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
			p = "//" + u.Host + p
		}
		if p == "" {
			return raw, fmt.Errorf("%w: %q: empty file path", ErrMalformedHref, raw)
		}
		return pathToFileURL(p), nil
	}

	return pathToFileURL(filepath.Join(hc.baseDir(docPath), raw)), nil
}

// pathToFileURL converts an absolute path to a file:// URL.
// Handles Unix, Windows drive and UNC (//server/share) paths.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	u := url.URL{Scheme: "file"}
	switch {
	case strings.HasPrefix(p, "//"):
		host, rest, _ := strings.Cut(p[2:], "/")
		u.Host, u.Path = host, "/"+rest
	case strings.HasPrefix(p, "/"):
		u.Path = p
	default:
		u.Path = "/" + p // C:/x -> /C:/x
	}
	return u.String()
}

// stray quotes left by editors that auto-pair quotes inside image links.
var imageQuotes = strings.NewReplacer(`"`, "", "\u201c", "", "\u201d", "")

var schemePattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.\-]*):`)

// DecodeImageSrc percent-decodes src and strips stray quotes. HTML output
// keeps image paths relative to the source file, so nothing else changes.
func DecodeImageSrc(src string) (string, error) {
	decoded, err := url.PathUnescape(src)
	if err != nil {
		return src, fmt.Errorf("%w: %q: %v", ErrMalformedHref, src, err)
	}
	return imageQuotes.Replace(decoded), nil
}

// ResolveImageSrc turns an image src found in a document at docPath into a
// file URI. Non-file schemes (http, data, ...) are returned unchanged.
func ResolveImageSrc(src, docPath string) (string, error) {
	href, err := DecodeImageSrc(src)
	if err != nil {
		return src, err
	}
	href = strings.ReplaceAll(href, `\`, "/")
	href = strings.ReplaceAll(href, "#", "%23")

	scheme, drive := "", false
	if m := schemePattern.FindStringSubmatch(href); m != nil {
		if len(m[1]) == 1 {
			drive = true
		} else {
			scheme = strings.ToLower(m[1])
		}
	}

	switch {
	case drive && !isAbsSlashPath(href):
		return src, nil // a drive path on a host without drives
	case scheme == "file" && !strings.HasPrefix(href, "file:///"):
		if strings.HasPrefix(href, "file://") {
			return "file:///" + strings.TrimPrefix(href, "file://"), nil
		}
		return href, nil
	case scheme == "file":
		return href, nil
	case scheme == "" || filepath.IsAbs(href):
		resolved := href
		if !isAbsSlashPath(href) {
			resolved = filepath.Join(filepath.Dir(docPath), filepath.FromSlash(href))
		}
		resolved = strings.ReplaceAll(filepath.ToSlash(filepath.Clean(filepath.FromSlash(resolved))), "#", "%23")
		switch {
		case strings.HasPrefix(resolved, "//"):
			return "file:" + resolved, nil
		case strings.HasPrefix(resolved, "/"):
			return "file://" + resolved, nil
		default:
			return "file:///" + resolved, nil
		}
	default:
		return src, nil
	}
}

// isAbsSlashPath reports whether a slash-separated path is absolute on this
// platform, including Windows drive paths written with forward slashes.
func isAbsSlashPath(p string) bool {
	return filepath.IsAbs(filepath.FromSlash(p)) || strings.HasPrefix(p, "/")
}
