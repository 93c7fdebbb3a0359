package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasID(n *html.Node, id string) bool {
	return n.Type == html.ElementNode && attrValue(n, "id") == id
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findNode returns the first node in depth-first document order for which
// match reports true.
func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAllNodes returns every node in depth-first document order for which
// match reports true. Matched nodes are not descended into.
func findAllNodes(n *html.Node, match func(*html.Node) bool) []*html.Node {
	if match(n) {
		return []*html.Node{n}
	}
	var found []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		found = append(found, findAllNodes(c, match)...)
	}
	return found
}

// collectText appends the text content of n in document order, one token
// per text node. Script and style bodies are skipped; when skip matches a
// node its whole subtree is skipped; when stop matches, collection halts
// for the rest of the document.
func collectText(n *html.Node, parts *[]string, skip, stop func(*html.Node) bool) bool {
	if stop != nil && stop(n) {
		return false
	}
	if skip != nil && skip(n) {
		return true
	}
	if isElement(n, "script") || isElement(n, "style") {
		return true
	}
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*parts = append(*parts, text)
		}
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !collectText(c, parts, skip, stop) {
			return false
		}
	}
	return true
}
