package pagelens

import "context"

// TokenCounter counts model tokens.
type TokenCounter interface {
	// CountTokens counts the tokens in text.
	CountTokens(ctx context.Context, text string) (int, error)

	// CountPromptTokens counts the tokens of the analysis request that
	// would be sent for content.
	CountPromptTokens(ctx context.Context, content *ExtractedContent) (int, error)
}
