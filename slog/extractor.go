package slog

import (
	"log/slog"
	"time"

	"github.com/hricks/onpage"
)

// Ensure LoggingExtractor implements onpage.Extractor.
var _ onpage.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   onpage.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next onpage.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (doc *onpage.Document, err error) {
	defer func(begin time.Time) {
		var blocks int
		var status string
		if doc != nil {
			blocks = len(doc.Blocks)
			status = doc.Validation.Status
		}
		e.logger.Info("extract",
			"bytes", len(html),
			"blocks", blocks,
			"validation", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
