package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagelens"
)

// Ensure LoggingContentExtractor implements pagelens.ContentExtractor.
var _ pagelens.ContentExtractor = (*LoggingContentExtractor)(nil)

// LoggingContentExtractor wraps a ContentExtractor with logging.
type LoggingContentExtractor struct {
	next   pagelens.ContentExtractor
	logger *slog.Logger
}

// NewLoggingContentExtractor creates a new LoggingContentExtractor.
func NewLoggingContentExtractor(next pagelens.ContentExtractor, logger *slog.Logger) *LoggingContentExtractor {
	return &LoggingContentExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingContentExtractor) Extract(ctx context.Context, url string) (content *pagelens.ExtractedContent, err error) {
	defer func(begin time.Time) {
		var chars, links int
		if content != nil {
			chars = len([]rune(content.TextContent))
			links = len(content.ExistingLinks)
		}
		e.logger.Info("extract",
			"url", url,
			"chars", chars,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, url)
}
