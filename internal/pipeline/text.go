package pipeline

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultWordsPerMinute is the reading speed behind EstimateReadTime.
const DefaultWordsPerMinute = 200

// ellipsis ends truncated excerpts.
const ellipsis = "…"

// blockElements end a run of text when extracting plain text.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Blockquote: true, atom.Pre: true,
	atom.Table: true, atom.Tr: true, atom.Td: true, atom.Th: true,
}

// parseFragment parses an HTML fragment in a <body> context and returns a
// document node holding the parsed nodes.
func parseFragment(content string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

func renderFragment(root *html.Node) (string, error) {
	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// PlainText returns the visible text of an HTML fragment with entities
// decoded. Block elements are separated by a newline; script and style
// content is dropped.
func PlainText(fragment string) (string, error) {
	root, err := parseFragment(fragment)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var buf strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.DataAtom] {
			buf.WriteByte('\n')
		}
	}
	walk(root)

	lines := strings.Split(buf.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}

// FirstParagraph returns the text of the first non-empty <p> element, or
// "" when there is none. Excerpts start there rather than at a heading.
func FirstParagraph(fragment string) (string, error) {
	root, err := parseFragment(fragment)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var find func(n *html.Node) string
	find = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			if text := strings.Join(strings.Fields(nodeText(n)), " "); text != "" {
				return text
			}
			return ""
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if text := find(c); text != "" {
				return text
			}
		}
		return ""
	}
	return find(root), nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimateReadTime formats the reading time of words at wpm words per
// minute as "N min", rounding up, with a minimum of 1. A non-positive wpm
// uses DefaultWordsPerMinute.
func EstimateReadTime(words, wpm int) string {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

// Excerpt returns the first line of text cut to at most limit runes on a word
// boundary, with an ellipsis when shortened. A word longer than limit is
// cut mid-word.
func Excerpt(text string, limit int) string {
	first, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	runes := []rune(first)
	if limit <= 0 || len(runes) <= limit {
		return first
	}

	cut := runes[:limit]
	if !unicode.IsSpace(runes[limit]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + ellipsis
}

// ResolveLocalPaths rewrites relative img[src] and a[href] values in an HTML
// fragment to file:// URLs under baseDir, so a page printed from a temp file
// still finds the article's images. Paths escaping baseDir are left alone.
// An empty baseDir returns the fragment unchanged.
func ResolveLocalPaths(fragment, baseDir string) (string, error) {
	if baseDir == "" {
		return fragment, nil
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, err := parseFragment(fragment)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Img:
				resolveAttr(n, "src", absBase)
			case atom.A:
				resolveAttr(n, "href", absBase)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return renderFragment(root)
}

func resolveAttr(n *html.Node, key, base string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isLocalRelative(attr.Val) {
			continue
		}
		abs := filepath.Join(base, attr.Val)
		if !isUnder(abs, base) {
			continue
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
		n.Attr[i].Val = u.String()
	}
}

func isLocalRelative(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") || filepath.IsAbs(p) {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
