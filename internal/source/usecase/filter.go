package usecase

import (
	"net/url"
	"path"
	"strings"
)

// filterCandidates keeps http(s) HTML pages on allowed hosts, one per host, in engine order.
// Malformed URLs are dropped.
func filterCandidates(links []string, excluded []string) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, raw := range links {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
			continue
		}
		if isDocumentPath(u.Path) {
			continue
		}
		host := strings.ToLower(u.Hostname())
		if isExcludedHost(host, excluded) {
			continue
		}
		if _, dup := seen[host]; dup {
			continue
		}
		seen[host] = struct{}{}
		out = append(out, u.String())
	}
	return out
}

func isDocumentPath(p string) bool {
	return documentExtensions[strings.ToLower(path.Ext(p))]
}

func isExcludedHost(host string, excluded []string) bool {
	for _, term := range excluded {
		if term != "" && strings.Contains(host, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
