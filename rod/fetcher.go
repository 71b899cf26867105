// Package rod implements pagelens.Fetcher with a headless Chrome browser,
// for pages whose content is rendered by JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagelens"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements pagelens.Fetcher at compile time.
var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	limiter  pagelens.DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call. Zero, the default, means no
// timeout beyond the caller's context.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLimiter spaces out fetches to the same page host.
func WithLimiter(l pagelens.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// A main document answered with a non-2xx status is a fetch error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := pagelens.WaitForHost(ctx, f.limiter, url); err != nil {
		return "", err
	}

	html, status, err := f.fetch(ctx, url)
	if err != nil {
		return "", pagelens.WrapError(pagelens.EFETCH, pagelens.MsgFetchFailed, err)
	}
	// Zero means no response was seen for the document (e.g. a data: URL).
	if status != 0 {
		if err := pagelens.FetchStatusError(status, url); err != nil {
			return "", err
		}
	}
	return html, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, int, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", 0, err
	}
	defer page.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	page = page.Context(ctx)

	// Subscribe before navigating so the document response is not missed.
	// The last document response for the main frame wins, which follows
	// redirects to the final page.
	var status atomic.Int64
	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) {
		if e.Type == proto.NetworkResourceTypeDocument && e.FrameID == page.FrameID {
			status.Store(int64(e.Response.Status))
		}
	})
	go wait()

	if err := page.Navigate(url); err != nil {
		return "", 0, err
	}
	if err := page.WaitLoad(); err != nil {
		return "", 0, err
	}

	html, err := page.HTML()
	if err != nil {
		return "", 0, err
	}
	return html, int(status.Load()), nil
}

// Close releases browser resources and stops the browser process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
