package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// hiddenClasses are common screen-reader-only class names. Elements carrying
// one are visually hidden and excluded from extraction.
var hiddenClasses = map[string]bool{
	"sr-only":            true,
	"screen-reader-text": true,
	"screen-reader":      true,
	"visually-hidden":    true,
	"visuallyhidden":     true,
	"skip-link":          true,
	"a11y-hidden":        true,
}

// isHidden reports whether an element is hidden from sighted users: the
// hidden attribute, aria-hidden="true", inline display:none or
// visibility:hidden, or a screen-reader-only class.
func isHidden(n *html.Node) bool {
	if hasAttr(n, "hidden") {
		return true
	}
	if attr(n, "aria-hidden") == "true" {
		return true
	}

	if style := attr(n, "style"); style != "" {
		s := strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(s, "display:none") || strings.Contains(s, "visibility:hidden") {
			return true
		}
	}

	for _, class := range strings.Fields(attr(n, "class")) {
		if hiddenClasses[strings.ToLower(class)] {
			return true
		}
	}

	return false
}
