package goquery

import (
	"strings"

	"github.com/hricks/onpage"
	"golang.org/x/net/html"
)

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasAttr reports whether the attribute is present, regardless of value.
func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// findFirst returns the first descendant element with the given tag in
// document order, or nil.
func findFirst(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == tag {
			return c
		}
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects descendant elements matching any of the given tags, in
// document order. Hidden elements are excluded along with their subtrees.
func findAll(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || isHidden(c) {
				continue
			}
			matched := false
			for _, tag := range tags {
				if c.Data == tag {
					out = append(out, c)
					matched = true
					break
				}
			}
			if !matched {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// findAllByRole collects descendant elements carrying the given ARIA role,
// in document order, skipping hidden subtrees.
func findAllByRole(n *html.Node, role string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || isHidden(c) {
				continue
			}
			if attr(c, "role") == role {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// visibleText collects the visible text content of a subtree: text nodes
// outside script/style/noscript and outside hidden elements, space-joined
// and whitespace-normalized.
func visibleText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				parts = append(parts, c.Data)
			case html.ElementNode:
				if neverVisibleTags[c.Data] || isHidden(c) {
					continue
				}
				walk(c)
			}
		}
	}
	walk(n)

	return onpage.Normalize(strings.Join(parts, " "))
}
