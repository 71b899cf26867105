package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagelens"
	"github.com/fwojciec/pagelens/gemini"
	"github.com/fwojciec/pagelens/goquery"
	"github.com/fwojciec/pagelens/htmltomarkdown"
	pagehttp "github.com/fwojciec/pagelens/http"
	"github.com/fwojciec/pagelens/readability"
	"github.com/fwojciec/pagelens/rod"
	plslog "github.com/fwojciec/pagelens/slog"
	"github.com/fwojciec/pagelens/trafilatura"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads configuration from the environment.
	Getenv func(string) string

	// LoadEnv loads a .env file into the environment before Run reads it.
	LoadEnv func() error

	// Services for end-to-end testing. Nil fields are built from flags.
	Fetcher      pagelens.Fetcher
	Analyzer     pagelens.Analyzer
	TokenCounter pagelens.TokenCounter
	Clipboard    pagelens.Clipboard
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv:  os.Getenv,
		LoadEnv: func() error { return godotenv.Load() },
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagelens"),
		kong.Description("AI content and SEO analysis of web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars(vars),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagelens --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	// A missing .env file is fine; the environment may carry everything.
	_ = m.LoadEnv()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Timeout = cli.Timeout

	var apiKey string
	if cmd == "serve" || cmd == "analyze" {
		apiKey = m.apiKey()
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		f, err := newFetcher(cli)
		if err != nil {
			return err
		}
		defer f.Close()
		fetcher = f
	}
	deps.Fetcher = plslog.NewLoggingFetcher(fetcher, deps.Logger)

	var extractorOpts []goquery.Option
	switch cli.Extractor {
	case "readability":
		extractorOpts = append(extractorOpts, goquery.WithMainContent(readability.NewExtractor()))
	case "trafilatura":
		extractorOpts = append(extractorOpts, goquery.WithMainContent(trafilatura.NewExtractor()))
	}
	deps.Pages = goquery.NewExtractor(deps.Fetcher, extractorOpts...)
	deps.Extractor = plslog.NewLoggingContentExtractor(deps.Pages, deps.Logger)
	deps.Converter = htmltomarkdown.NewConverter()

	if cmd == "serve" || cmd == "analyze" {
		analyzer, err := m.analyzer(ctx, apiKey, cli.Model, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		deps.Analyzer = plslog.NewLoggingAnalyzer(analyzer, deps.Logger)
	}

	if cmd == "analyze" {
		deps.Clipboard = m.Clipboard
		if deps.Clipboard == nil {
			deps.Clipboard = NewOSC52Clipboard(stderr)
		}
		if cli.Analyze.CountTokens {
			deps.TokenCounter = m.TokenCounter
			if deps.TokenCounter == nil {
				tc, err := gemini.NewTokenCounter(tokenizerModel)
				if err != nil {
					return fmt.Errorf("failed to create token counter: %w", err)
				}
				deps.TokenCounter = tc
			}
		}
	}

	if cmd == "serve" {
		if cli.Serve.Addr == "" {
			cli.Serve.Addr = defaultAddr(m.Getenv("PORT"))
		}
		if mode := m.Getenv(gin.EnvGinMode); mode != "" {
			gin.SetMode(mode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting. The local tokenizer only
// knows a fixed set of models, so it does not follow --model.
const tokenizerModel = "gemini-2.5-flash"

func (m *Main) apiKey() string {
	if key := m.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return m.Getenv("API_KEY")
}

func newFetcher(cli *CLI) (pagelens.Fetcher, error) {
	limiter := hostLimiter(cli.HostRate)
	switch cli.Fetcher {
	case "browser":
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout), rod.WithLimiter(limiter))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	case "direct":
		return pagehttp.NewFetcher(pagehttp.WithProxy(""), pagehttp.WithTimeout(cli.Timeout), pagehttp.WithLimiter(limiter)), nil
	default:
		return pagehttp.NewFetcher(pagehttp.WithProxy(cli.Proxy), pagehttp.WithTimeout(cli.Timeout), pagehttp.WithLimiter(limiter)), nil
	}
}

// hostLimiter returns nil when rps is not positive, leaving fetches unlimited.
func hostLimiter(rps float64) pagelens.DomainLimiter {
	if rps <= 0 {
		return nil
	}
	return pagehttp.NewDomainLimiter(rps)
}

func (m *Main) analyzer(ctx context.Context, apiKey, model string, logger *slog.Logger) (pagelens.Analyzer, error) {
	if m.Analyzer != nil {
		return m.Analyzer, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	a := gemini.NewAnalyzer(client, model)
	a.SetLogger(logger)
	return a, nil
}

func defaultAddr(port string) string {
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
