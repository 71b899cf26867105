// Package gemini implements pagelens.Analyzer with Google Gemini.
package gemini

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/pagelens"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Generation parameters. The seed and low temperature keep repeated runs
// on the same page close to each other.
const (
	Temperature     = 0.2
	TopP            = 0.95
	Seed            = 42
	MaxOutputTokens = 2048
	ThinkingBudget  = 1024
)

// Ensure Analyzer implements pagelens.Analyzer at compile time.
var _ pagelens.Analyzer = (*Analyzer)(nil)

// ContentGenerator is the part of the Gemini client the Analyzer uses.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Analyzer implements pagelens.Analyzer using Google Gemini.
type Analyzer struct {
	models ContentGenerator
	model  string
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer calling model through client.
func NewAnalyzer(client *genai.Client, model string) *Analyzer {
	return NewAnalyzerWithGenerator(client.Models, model)
}

// NewAnalyzerWithGenerator creates a new Analyzer on top of any
// ContentGenerator.
func NewAnalyzerWithGenerator(models ContentGenerator, model string) *Analyzer {
	if model == "" {
		model = DefaultModel
	}
	return &Analyzer{models: models, model: model, logger: slog.New(slog.DiscardHandler)}
}

// SetLogger sets the logger that receives diagnostic causes of failed
// analyses. They are never part of the returned error message.
func (a *Analyzer) SetLogger(logger *slog.Logger) {
	a.logger = logger
}

// Analyze asks the model for a structured analysis of content.
func (a *Analyzer) Analyze(ctx context.Context, content *pagelens.ExtractedContent) (*pagelens.AnalysisResult, error) {
	if content == nil || strings.TrimSpace(content.TextContent) == "" {
		return nil, pagelens.Errorf(pagelens.EEMPTY, pagelens.MsgEmptyContent)
	}

	resp, err := a.models.GenerateContent(ctx, a.model, PromptContents(content), BuildConfig())
	if err != nil {
		return nil, a.fail("generate content", err)
	}
	if resp == nil {
		return nil, a.fail("generate content", pagelens.Errorf(pagelens.EINTERNAL, "gemini returned nil result"))
	}

	result, err := pagelens.DecodeAnalysisResult([]byte(strings.TrimSpace(resp.Text())))
	if err != nil {
		return nil, a.fail("decode response", err)
	}

	if dropped := result.ExcludeLinks(content.ExistingLinks); dropped > 0 {
		a.logger.Warn("dropped sibling links", "count", dropped)
	}

	return result, nil
}

func (a *Analyzer) fail(stage string, err error) error {
	a.logger.Error("gemini analysis failed", "stage", stage, "model", a.model, "err", err)
	return pagelens.WrapError(pagelens.EANALYSIS, pagelens.MsgAnalysisFailed, err)
}

// BuildConfig returns the GenerateContentConfig for analysis calls: JSON
// output constrained to Schema with fixed sampling parameters.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(Temperature)
	topP := float32(TopP)
	seed := int32(Seed)
	budget := int32(ThinkingBudget)
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   Schema(),
		Temperature:      &temp,
		TopP:             &topP,
		Seed:             &seed,
		MaxOutputTokens:  MaxOutputTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: &budget,
		},
	}
}
