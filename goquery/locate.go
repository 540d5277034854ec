package goquery

import (
	"bytes"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// findMainContent selects the single subtree root to walk. Priority, first
// match wins: an explicit main landmark, then the densest container element
// outside chrome regions, then the body. A document with no body yields nil
// and the caller emits an empty block list.
func findMainContent(doc *goquery.Document) *html.Node {
	if sel := doc.Find("main, [role=main]").First(); sel.Length() > 0 {
		return sel.Get(0)
	}

	if n := densestContainer(doc); n != nil {
		return n
	}

	if sel := doc.Find("body").First(); sel.Length() > 0 {
		return sel.Get(0)
	}

	return nil
}

// densestContainer scores every div/article/section whose ancestor chain is
// free of chrome landmarks by the ratio of visible text length to serialized
// markup length, both measured on the candidate's own subtree with
// script/style/noscript stripped. Selection is deterministic: highest
// density, then highest absolute text length, then earliest in document
// order (only strictly better candidates displace the incumbent).
func densestContainer(doc *goquery.Document) *html.Node {
	var (
		best        *html.Node
		bestDensity float64
		bestTextLen int
	)

	doc.Find("div, article, section").Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		if inChromeRegion(n) {
			return
		}

		textLen := utf8.RuneCountInString(visibleText(n))
		if textLen == 0 {
			return
		}
		markupLen := serializedLength(n)
		if markupLen == 0 {
			return
		}

		density := float64(textLen) / float64(markupLen)
		if best == nil || density > bestDensity ||
			(density == bestDensity && textLen > bestTextLen) {
			best = n
			bestDensity = density
			bestTextLen = textLen
		}
	})

	return best
}

// inChromeRegion reports whether the node or any ancestor is a chrome
// landmark (header/nav/footer/aside tag or the equivalent ARIA role).
func inChromeRegion(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if chromeTags[p.Data] || chromeRoles[attr(p, "role")] {
			return true
		}
	}
	return false
}

// serializedLength measures the candidate's own markup length after
// stripping never-visible script/style/noscript subtrees, matching what
// visibleText measures in the numerator.
func serializedLength(n *html.Node) int {
	var buf bytes.Buffer
	if err := html.Render(&buf, cloneStripped(n)); err != nil {
		return 0
	}
	return utf8.RuneCount(buf.Bytes())
}

// cloneStripped deep-copies a subtree without script/style/noscript elements.
// The copy is detached so rendering it never touches the live document.
func cloneStripped(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && neverVisibleTags[c.Data] {
			continue
		}
		clone.AppendChild(cloneStripped(c))
	}
	return clone
}
