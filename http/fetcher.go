// Package http provides an HTTP-based implementation of pagelens.Fetcher.
// Pages are retrieved through a fetch proxy by default, or directly when
// no proxy is configured.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pagelens"
)

// DefaultProxyURL is the fetch proxy used when none is configured.
// The target page URL is passed in its "url" query parameter.
const DefaultProxyURL = "https://api.allorigins.win/raw"

// Ensure Fetcher implements pagelens.Fetcher at compile time.
var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content through a fetch proxy.
type Fetcher struct {
	client   *http.Client
	proxyURL string
	timeout  time.Duration
	limiter  pagelens.DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithProxy sets the fetch proxy base URL. An empty string disables the
// proxy and fetches pages directly.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) {
		f.proxyURL = proxyURL
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
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

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		proxyURL: DefaultProxyURL,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// RequestURL returns the URL actually requested for pageURL.
func (f *Fetcher) RequestURL(pageURL string) string {
	if f.proxyURL == "" {
		return pageURL
	}
	return f.proxyURL + "?url=" + url.QueryEscape(pageURL)
}

// Fetch retrieves the HTML content of pageURL. Any 2xx status is success.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := pagelens.WaitForHost(ctx, f.limiter, pageURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.RequestURL(pageURL), nil)
	if err != nil {
		return "", pagelens.WrapError(pagelens.EFETCH, pagelens.MsgFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", pagelens.WrapError(pagelens.EFETCH, pagelens.MsgFetchFailed, err)
	}
	defer resp.Body.Close()

	if err := pagelens.FetchStatusError(resp.StatusCode, pageURL); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pagelens.WrapError(pagelens.EFETCH, pagelens.MsgFetchFailed, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
