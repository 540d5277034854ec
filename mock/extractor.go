// Package mock provides function-field mock implementations of the onpage
// service interfaces for use in tests.
package mock

import "github.com/hricks/onpage"

var _ onpage.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of onpage.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*onpage.Document, error)
}

func (e *Extractor) Extract(html string) (*onpage.Document, error) {
	return e.ExtractFn(html)
}
