package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hricks/onpage"
)

// extractMetadata reads page-level source metadata from the document head.
// Every field is best-effort: a missing element yields an absent value,
// never an error.
func extractMetadata(doc *goquery.Document) onpage.SourceMetadata {
	var source onpage.SourceMetadata

	source.Title = onpage.Normalize(doc.Find("title").First().Text())

	if href, ok := doc.Find("link[rel=canonical]").First().Attr("href"); ok {
		source.Canonical = strings.TrimSpace(href)
	}

	// url: canonical target first, og:url as fallback.
	source.URL = source.Canonical
	if source.URL == "" {
		if content, ok := doc.Find("meta[property='og:url']").First().Attr("content"); ok {
			source.URL = strings.TrimSpace(content)
		}
	}

	if content, ok := doc.Find("meta[name=description]").First().Attr("content"); ok {
		source.MetaDescription = onpage.Normalize(content)
	}
	if source.MetaDescription == "" {
		if content, ok := doc.Find("meta[property='og:description']").First().Attr("content"); ok {
			source.MetaDescription = onpage.Normalize(content)
		}
	}

	return source
}
