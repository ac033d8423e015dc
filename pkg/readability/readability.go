package readability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoContent is returned when no readable text could be found.
var ErrNoContent = errors.New("readability: no readable content")

// Article is the extracted main content of a page.
type Article struct {
	Title string
	Text  string
}

// minCandidateText is the amount of paragraph text a container needs
// before it beats falling back to <body>.
const minCandidateText = 140

var stripped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Iframe:   true,
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
	atom.Aside:    true,
	atom.Form:     true,
	atom.Svg:      true,
	atom.Button:   true,
	atom.Select:   true,
	atom.Template: true,
}

var boilerplateHints = []string{"nav", "menu", "footer", "sidebar", "comment", "advert", "cookie", "banner", "share", "related"}

var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true, atom.Main: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Tr: true, atom.Table: true,
	atom.Blockquote: true, atom.Pre: true, atom.Br: true, atom.Dd: true, atom.Dt: true,
}

// Parse reads an HTML document and returns its main readable text.
func Parse(r io.Reader) (Article, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Article{}, fmt.Errorf("readability: parse html: %w", err)
	}

	title := strings.TrimSpace(textOf(find(doc, atom.Title)))
	prune(doc)

	root := pickRoot(doc)
	if root == nil {
		return Article{}, ErrNoContent
	}

	var sb strings.Builder
	render(&sb, root)
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Article{}, ErrNoContent
	}

	return Article{Title: title, Text: text}, nil
}

// pickRoot prefers <article>/<main>/role=main, then the container with the
// most paragraph text, then <body>.
func pickRoot(doc *html.Node) *html.Node {
	var best *html.Node
	bestScore := 0

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch {
		case n.DataAtom == atom.Article, n.DataAtom == atom.Main, attr(n, "role") == "main":
			if score := len(strings.TrimSpace(textOf(n))); score > bestScore {
				best, bestScore = n, score
			}
		}
	})
	if best != nil {
		return best
	}

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || (n.DataAtom != atom.Div && n.DataAtom != atom.Section && n.DataAtom != atom.Td) {
			return
		}
		score := paragraphScore(n)
		if score > bestScore {
			best, bestScore = n, score
		}
	})
	if best != nil && bestScore >= minCandidateText {
		return best
	}

	return find(doc, atom.Body)
}

// paragraphScore sums the text of direct <p> children.
func paragraphScore(n *html.Node) int {
	score := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.P {
			score += len(strings.TrimSpace(textOf(c)))
		}
	}
	return score
}

func prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode || (c.Type == html.ElementNode && isBoilerplate(c)) {
			n.RemoveChild(c)
		} else {
			prune(c)
		}
		c = next
	}
}

func isBoilerplate(n *html.Node) bool {
	if stripped[n.DataAtom] {
		return true
	}
	if attr(n, "aria-hidden") == "true" || attr(n, "role") == "navigation" {
		return true
	}
	if n.DataAtom == atom.Body || n.DataAtom == atom.Html || n.DataAtom == atom.Main || n.DataAtom == atom.Article {
		return false
	}
	hint := strings.ToLower(attr(n, "class") + " " + attr(n, "id"))
	for _, h := range boilerplateHints {
		if strings.Contains(hint, h) {
			return true
		}
	}
	return false
}

func render(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if blocks[n.DataAtom] {
			sb.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		render(sb, c)
	}
	if n.Type == html.ElementNode && blocks[n.DataAtom] {
		sb.WriteString("\n")
	}
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

func find(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) {
		if found == nil && c.Type == html.ElementNode && c.DataAtom == a {
			found = c
		}
	})
	return found
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
