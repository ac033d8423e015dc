package engine

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// hrefs returns the href of every anchor in document order.
func hrefs(r io.Reader) ([]string, error) {
	z := html.NewTokenizer(r)
	var out []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return out, nil
			}
			return out, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if atom.Lookup(name) != atom.A || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" {
					out = append(out, string(val))
				}
				if !more {
					break
				}
			}
		}
	}
}

// unwrap extracts the destination from a redirect-wrapper href.
// param is the query key carrying the destination; path, when set, must match the wrapper path.
func unwrap(href, path, param string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if path != "" && u.Path != path {
		return "", false
	}
	dest := u.Query().Get(param)
	if dest == "" {
		return "", false
	}
	return dest, true
}

// appendUnique appends s unless it is already present.
func appendUnique(list []string, seen map[string]struct{}, s string) []string {
	if _, ok := seen[s]; ok {
		return list
	}
	seen[s] = struct{}{}
	return append(list, s)
}
