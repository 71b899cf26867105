package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagelens"
	"github.com/fwojciec/pagelens/gemini"
	"github.com/fwojciec/pagelens/goquery"
	pagehttp "github.com/fwojciec/pagelens/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Timeout bounds a whole analysis. Zero means no timeout.
	Timeout time.Duration

	Fetcher      pagelens.Fetcher
	Pages        *goquery.Extractor
	Extractor    pagelens.ContentExtractor
	Analyzer     pagelens.Analyzer
	Converter    pagelens.Converter
	TokenCounter pagelens.TokenCounter
	Clipboard    pagelens.Clipboard
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Model     string        `default:"${model}" help:"Gemini model used for analysis"`
	Proxy     string        `default:"${proxy}" help:"Fetch proxy; the page URL is sent in its url query parameter"`
	Fetcher   string        `enum:"proxy,direct,browser" default:"proxy" help:"How pages are fetched (proxy, direct, browser)"`
	Extractor string        `enum:"boilerplate,readability,trafilatura" default:"boilerplate" help:"Main content extraction (boilerplate, readability, trafilatura)"`
	Timeout   time.Duration `short:"t" default:"0s" help:"Timeout for fetching and analysis (0 for none)"`
	HostRate  float64       `default:"0" help:"Most page fetches per second to one host (0 for no limit)"`
	Verbose   bool          `short:"v" help:"Enable debug logging"`

	Serve   ServeCmd   `cmd:"" help:"Serve the web analyzer"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze a page and print the result"`
	Preview PreviewCmd `cmd:"" help:"Show what would be sent for analysis without calling the model"`
}

// vars are the kong interpolation variables for CLI defaults.
var vars = map[string]string{
	"model": gemini.DefaultModel,
	"proxy": pagehttp.DefaultProxyURL,
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (default :$PORT, or :8080)"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL         string `arg:"" help:"Page URL to analyze"`
	Format      string `short:"f" enum:"markdown,json" default:"markdown" help:"Output format (markdown, json)"`
	Copy        bool   `short:"c" help:"Copy the Markdown analysis to the terminal clipboard"`
	CountTokens bool   `help:"Report the prompt size in tokens"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL    string `arg:"" help:"Page URL to preview"`
	Format string `short:"f" enum:"text,links,markdown" default:"text" help:"What to show (text, links, markdown)"`
}
