package mock

import (
	"context"

	"github.com/fwojciec/pagelens"
)

var (
	_ pagelens.ContentExtractor     = (*ContentExtractor)(nil)
	_ pagelens.MainContentExtractor = (*MainContentExtractor)(nil)
)

// ContentExtractor is a mock implementation of pagelens.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(ctx context.Context, url string) (*pagelens.ExtractedContent, error)
}

func (e *ContentExtractor) Extract(ctx context.Context, url string) (*pagelens.ExtractedContent, error) {
	return e.ExtractFn(ctx, url)
}

// MainContentExtractor is a mock implementation of pagelens.MainContentExtractor.
type MainContentExtractor struct {
	ExtractMainFn func(html, pageURL string) (*pagelens.MainContent, error)
}

func (e *MainContentExtractor) ExtractMain(html, pageURL string) (*pagelens.MainContent, error) {
	return e.ExtractMainFn(html, pageURL)
}
