package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pagelens"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	req := pagelens.AnalysisRequest{URL: c.URL}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, req.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	switch c.Format {
	case "markdown":
		cleaned, err := deps.Pages.CleanHTML(html, req.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
			return err
		}
		md, err := deps.Converter.Convert(cleaned, req.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, strings.TrimSpace(md))
		return nil
	}

	content, err := deps.Pages.ExtractHTML(html, req.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if c.Format == "links" {
		for _, link := range content.ExistingLinks {
			fmt.Fprintln(deps.Stdout, link)
		}
		fmt.Fprintf(deps.Stderr, "%d links\n", len(content.ExistingLinks))
		return nil
	}

	if content.Title != "" {
		fmt.Fprintf(deps.Stdout, "Title: %s\n", content.Title)
	}
	if content.Excerpt != "" {
		fmt.Fprintf(deps.Stdout, "Excerpt: %s\n", content.Excerpt)
	}
	if content.Title != "" || content.Excerpt != "" {
		fmt.Fprintln(deps.Stdout)
	}
	fmt.Fprintln(deps.Stdout, content.TextContent)
	fmt.Fprintf(deps.Stderr, "%d characters, %d links\n", len([]rune(content.TextContent)), len(content.ExistingLinks))
	return nil
}
