package mock

import (
	"context"

	"github.com/hricks/onpage"
)

var _ onpage.ExtractionWriter = (*ExtractionWriter)(nil)

// ExtractionWriter is a mock implementation of onpage.ExtractionWriter.
type ExtractionWriter struct {
	WriteExtractionFn func(ctx context.Context, ext *onpage.Extraction) error
}

func (w *ExtractionWriter) WriteExtraction(ctx context.Context, ext *onpage.Extraction) error {
	return w.WriteExtractionFn(ctx, ext)
}
