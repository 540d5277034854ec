// Package goquery implements the content-extraction engine on top of
// PuerkitoBio/goquery. It locates the main content region of a rendered HTML
// page, walks it in reading order classifying typed blocks, deduplicates
// repeated content, and enforces the single-top-heading invariant.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hricks/onpage"
)

// Ensure Extractor implements onpage.Extractor at compile time.
var _ onpage.Extractor = (*Extractor)(nil)

// Extractor converts rendered HTML into a structured onpage.Document.
// The zero value is usable; options tune href resolution.
type Extractor struct {
	baseURL string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBaseURL sets the base used to resolve relative CTA hrefs when the page
// declares no canonical URL of its own.
func WithBaseURL(raw string) Option {
	return func(e *Extractor) {
		e.baseURL = raw
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes rendered HTML and returns the structured document.
// The pipeline is a single forward pass (locate, walk/classify) followed by
// two linear post-passes (deduplicate, enforce single H1). It is pure and
// deterministic: no I/O, no clock, no state across calls.
func (e *Extractor) Extract(rawHTML string) (*onpage.Document, error) {
	if rawHTML == "" {
		return nil, onpage.Errorf(onpage.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, onpage.Errorf(onpage.EINVALID, "failed to parse HTML: %v", err)
	}

	source := extractMetadata(doc)

	blocks := []onpage.Block{}
	if root := findMainContent(doc); root != nil {
		w := newWalker(root, e.resolveBase(source))
		blocks = w.run()
	}

	blocks = onpage.DeduplicateBlocks(blocks)
	blocks, validation := onpage.EnforceSingleH1(blocks)

	return &onpage.Document{
		Source:     source,
		Blocks:     blocks,
		Validation: validation,
	}, nil
}

// resolveBase picks the URL relative hrefs resolve against: the page's own
// canonical URL first, then the configured base. Returns nil when neither
// parses; hrefs are then kept as written.
func (e *Extractor) resolveBase(source onpage.SourceMetadata) *url.URL {
	for _, candidate := range []string{source.Canonical, source.URL, e.baseURL} {
		if candidate == "" {
			continue
		}
		if base, err := url.Parse(candidate); err == nil && base.IsAbs() {
			return base
		}
	}
	return nil
}
