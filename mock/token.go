package mock

import (
	"context"

	"github.com/fwojciec/pagelens"
)

var _ pagelens.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of pagelens.TokenCounter.
type TokenCounter struct {
	CountTokensFn       func(ctx context.Context, text string) (int, error)
	CountPromptTokensFn func(ctx context.Context, content *pagelens.ExtractedContent) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}

func (tc *TokenCounter) CountPromptTokens(ctx context.Context, content *pagelens.ExtractedContent) (int, error) {
	return tc.CountPromptTokensFn(ctx, content)
}
