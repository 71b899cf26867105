package pagelens

import "context"

// Analyzer produces a structured analysis of extracted page content.
type Analyzer interface {
	// Analyze returns EEMPTY without contacting the model when the text is
	// blank. Any model, parse or schema failure is returned as EANALYSIS.
	Analyze(ctx context.Context, content *ExtractedContent) (*AnalysisResult, error)
}
