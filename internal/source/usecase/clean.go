package usecase

import (
	"regexp"
	"strings"
)

var (
	reNewlineFlood = regexp.MustCompile(`\n{4,}`)
	reSpaceRun     = regexp.MustCompile(` {3,}`)
	reNewlineRun   = regexp.MustCompile(`\n+(\s*\n)*`)
)

// cleanText normalizes extracted page text.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	s = reNewlineFlood.ReplaceAllString(s, "\n\n\n")
	s = strings.ReplaceAll(s, "\n\n", " ")
	s = reSpaceRun.ReplaceAllString(s, "  ")
	s = strings.ReplaceAll(s, "\t", "")
	s = reNewlineRun.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// truncate cuts s to at most max runes.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
