// Package gin serves the analysis session over HTTP using the gin router:
// an HTML page that renders the current analysis, a JSON API, and the
// Markdown export.
package gin

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pagelens"
	"github.com/fwojciec/pagelens/session"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page text.
const (
	Title          = "AI Webpage Analyzer"
	Tagline        = "Get instant content insights with Gemini"
	LoadingMessage = "AI is analyzing the webpage..."
	WelcomeTitle   = "Welcome to the AI Webpage Analyzer"
	WelcomeText    = "Paste a URL above to get an instant, AI-powered content and SEO analysis. The tool will provide the page's core intent, suggest internal links, find relevant stats, and generate a ready-to-use AI summary."
)

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 5 * time.Second

// Server exposes a Session over HTTP.
type Server struct {
	session *session.Session
	logger  *slog.Logger
	engine  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server for sess.
func NewServer(sess *session.Session, opts ...Option) *Server {
	s := &Server{
		session: sess,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"hasPrefix": strings.HasPrefix,
	}).ParseFS(templateFS, "templates/*.html"))

	engine := gin.New()
	engine.Use(Recovery(s.logger), RequestLogger(s.logger))
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.handleIndex)
	engine.POST("/analyze", s.handleAnalyzeForm)
	engine.GET("/analysis.md", s.handleMarkdown)

	api := engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/state", s.handleState)
		api.POST("/analyze", s.handleAnalyze)
	}

	s.engine = engine
	return s
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type pageData struct {
	State          session.State
	Welcome        bool
	Title          string
	Tagline        string
	LoadingMessage string
	WelcomeTitle   string
	WelcomeText    string
	NoSiblingLinks string
	NoStats        string
	CapsuleHint    string
	CopyLabel      string
	CopiedLabel    string
	CopiedMillis   int64
}

func newPageData(state session.State) pageData {
	return pageData{
		State:          state,
		Welcome:        !state.IsLoading && state.Error == "" && state.Analysis == nil,
		Title:          Title,
		Tagline:        Tagline,
		LoadingMessage: LoadingMessage,
		WelcomeTitle:   WelcomeTitle,
		WelcomeText:    WelcomeText,
		NoSiblingLinks: pagelens.NoSiblingLinksMessage,
		NoStats:        pagelens.NoStatsMessage,
		CapsuleHint:    pagelens.CapsuleHint,
		CopyLabel:      pagelens.CopyLabel,
		CopiedLabel:    pagelens.CopiedLabel,
		CopiedMillis:   pagelens.CopiedDuration.Milliseconds(),
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageData(s.session.State()))
}

func (s *Server) handleAnalyzeForm(c *gin.Context) {
	// The analysis outlives a client that navigates away mid-request.
	ctx := context.WithoutCancel(c.Request.Context())
	if _, err := s.session.Submit(ctx, c.PostForm("url")); err != nil {
		s.logger.Warn("submission rejected", "err", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pagelens.MsgInvalidURL, "code": pagelens.EINVALID})
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	state, err := s.session.Submit(ctx, req.URL)
	if err != nil {
		c.JSON(StatusCode(pagelens.ErrorCode(err)), gin.H{
			"error": pagelens.ErrorMessage(err),
			"code":  pagelens.ErrorCode(err),
		})
		return
	}
	if state.Code != "" {
		c.JSON(StatusCode(state.Code), state)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.State())
}

func (s *Server) handleMarkdown(c *gin.Context) {
	state := s.session.State()
	if state.Analysis == nil {
		c.String(http.StatusNotFound, "no analysis yet\n")
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(pagelens.ToMarkdown(state.Analysis)))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StatusCode maps an application error code to an HTTP status.
func StatusCode(code string) int {
	switch code {
	case pagelens.EINVALID:
		return http.StatusBadRequest
	case pagelens.EBUSY:
		return http.StatusConflict
	case pagelens.EFETCH, pagelens.EANALYSIS:
		return http.StatusBadGateway
	case pagelens.EEMPTY:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
