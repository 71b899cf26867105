package mock

import (
	"context"

	"github.com/fwojciec/pagelens"
)

var _ pagelens.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of pagelens.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, content *pagelens.ExtractedContent) (*pagelens.AnalysisResult, error)
}

func (a *Analyzer) Analyze(ctx context.Context, content *pagelens.ExtractedContent) (*pagelens.AnalysisResult, error) {
	return a.AnalyzeFn(ctx, content)
}
