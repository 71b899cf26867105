package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagelens"
)

// Ensure LoggingAnalyzer implements pagelens.Analyzer.
var _ pagelens.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging.
type LoggingAnalyzer struct {
	next   pagelens.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next pagelens.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the operation.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, content *pagelens.ExtractedContent) (result *pagelens.AnalysisResult, err error) {
	defer func(begin time.Time) {
		var links, stats int
		if result != nil {
			links = len(result.SiblingLinks)
			stats = len(result.StatsAndKeyFacts)
		}
		a.logger.Info("analyze",
			"sibling_links", links,
			"stats", stats,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Analyze(ctx, content)
}
