package pagelens

import (
	"context"
	"fmt"
	"net/url"
)

// Fetcher retrieves raw HTML for a page URL.
// Implementations may go through a fetch proxy or drive a browser.
type Fetcher interface {
	// Fetch returns the HTML of the page at url.
	// Failures are reported as EFETCH.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any held resources.
	Close() error
}

// DomainLimiter spaces out requests to the same host.
type DomainLimiter interface {
	// Wait blocks until a request to host may proceed, or ctx is done.
	Wait(ctx context.Context, host string) error
}

// FetchStatusError returns nil for a 2xx status and an EFETCH error
// naming the status otherwise.
func FetchStatusError(status int, pageURL string) error {
	if status >= 200 && status <= 299 {
		return nil
	}
	return WrapError(EFETCH,
		fmt.Sprintf("%s Status: %d", MsgFetchFailed, status),
		fmt.Errorf("HTTP %d for %s", status, pageURL))
}

// WaitForHost waits on limiter for the host of pageURL. A nil limiter
// never waits.
func WaitForHost(ctx context.Context, limiter DomainLimiter, pageURL string) error {
	if limiter == nil {
		return nil
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return WrapError(EFETCH, MsgFetchFailed, err)
	}
	if err := limiter.Wait(ctx, u.Hostname()); err != nil {
		return WrapError(EFETCH, MsgFetchFailed, err)
	}
	return nil
}
