package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/pagelens"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ pagelens.TokenCounter = (*TokenCounter)(nil)

// ContentTokenizer counts tokens in request contents.
// *tokenizer.LocalTokenizer satisfies it.
type ContentTokenizer interface {
	CountTokens(contents []*genai.Content, config *genai.CountTokensConfig) (*genai.CountTokensResult, error)
}

// TokenCounter sizes analysis requests locally, without an API call.
type TokenCounter struct {
	tok ContentTokenizer
}

// NewTokenCounter loads the local tokenizer for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return NewTokenCounterWithTokenizer(tok), nil
}

// NewTokenCounterWithTokenizer wraps an existing tokenizer.
func NewTokenCounterWithTokenizer(tok ContentTokenizer) *TokenCounter {
	return &TokenCounter{tok: tok}
}

// CountTokens counts the tokens of text sent as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return tc.count([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)})
}

// CountPromptTokens counts the request contents Analyze would send for
// content. Blank content is never sent, so it counts as zero.
func (tc *TokenCounter) CountPromptTokens(ctx context.Context, content *pagelens.ExtractedContent) (int, error) {
	if content == nil || strings.TrimSpace(content.TextContent) == "" {
		return 0, nil
	}
	return tc.count(PromptContents(content))
}

func (tc *TokenCounter) count(contents []*genai.Content) (int, error) {
	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, pagelens.WrapError(pagelens.EINTERNAL, "token count failed", err)
	}
	return int(result.TotalTokens), nil
}
