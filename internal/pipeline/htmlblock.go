package pipeline

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteImageSources rewrites the src attribute of every <img> tag in a
// raw HTML fragment. Everything else is copied byte for byte, so fragments
// with unbalanced tags (an opening <div> whose closing tag lives in a later
// block) survive untouched.
//
// Does NOT rewrite:
//   - srcset attributes
//   - CSS url() references
//   - <source>, <video> or <a> elements
func RewriteImageSources(fragment string, rewrite func(src string) string) (string, error) {
	if !strings.Contains(strings.ToLower(fragment), "<img") {
		return fragment, nil
	}

	var out strings.Builder
	out.Grow(len(fragment))

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return fragment, err
			}
			return out.String(), nil
		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			tok := z.Token()
			if tok.DataAtom != atom.Img || !rewriteSrc(&tok, rewrite) {
				out.WriteString(raw)
				continue
			}
			out.WriteString(tok.String())
		default:
			out.Write(z.Raw())
		}
	}
}

// rewriteSrc applies rewrite to the src attribute, reporting whether it
// changed.
func rewriteSrc(tok *html.Token, rewrite func(string) string) bool {
	for i, attr := range tok.Attr {
		if attr.Key != "src" || attr.Val == "" {
			continue
		}
		next := rewrite(attr.Val)
		if next == attr.Val {
			return false
		}
		tok.Attr[i].Val = next
		return true
	}
	return false
}
