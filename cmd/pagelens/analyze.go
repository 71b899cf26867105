package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pagelens"
	"github.com/fwojciec/pagelens/session"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	if deps.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deps.Timeout)
		defer cancel()
	}

	analyzer := deps.Analyzer
	if c.CountTokens {
		analyzer = &tokenReporter{next: analyzer, deps: deps}
	}

	sess := session.New(deps.Extractor, analyzer)
	if deps.Logger != nil {
		sess.Logger = deps.Logger
	}

	state, err := sess.Submit(ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}
	if state.Error != "" {
		fmt.Fprintf(deps.Stderr, "error: %s\n", state.Error)
		return &pagelens.Error{Code: state.Code, Message: state.Error}
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state.Analysis); err != nil {
			return err
		}
	default:
		fmt.Fprint(deps.Stdout, pagelens.ToMarkdown(state.Analysis))
	}

	if c.Copy {
		copier := pagelens.NewCopier(deps.Clipboard)
		if err := copier.Copy(state.Analysis); err != nil {
			fmt.Fprintf(deps.Stderr, "error: copy failed: %v\n", err)
			return err
		}
		fmt.Fprintln(deps.Stderr, copier.Label())
	}

	return nil
}

// tokenReporter prints the prompt size before delegating to next.
type tokenReporter struct {
	next pagelens.Analyzer
	deps *Dependencies
}

func (r *tokenReporter) Analyze(ctx context.Context, content *pagelens.ExtractedContent) (*pagelens.AnalysisResult, error) {
	if content != nil {
		n, err := r.deps.TokenCounter.CountPromptTokens(ctx, content)
		if err != nil {
			fmt.Fprintf(r.deps.Stderr, "warning: token count failed: %v\n", err)
		} else {
			fmt.Fprintf(r.deps.Stderr, "prompt tokens: %d\n", n)
		}
	}
	return r.next.Analyze(ctx, content)
}
