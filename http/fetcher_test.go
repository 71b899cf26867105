package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pagelens"
	pagehttp "github.com/fwojciec/pagelens/http"
	"github.com/fwojciec/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("passes target URL to proxy as query parameter", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.Query().Get("url")
			assert.Equal(t, "/raw", r.URL.Path)
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(server.URL + "/raw"))
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), "https://example.com/a?x=1&y=2")
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
		assert.Equal(t, "https://example.com/a?x=1&y=2", gotURL)
	})

	t.Run("fetches directly without proxy", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/page", r.URL.Path)
			_, _ = w.Write([]byte("direct"))
		}))
		defer server.Close()

		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(""))

		html, err := fetcher.Fetch(context.Background(), server.URL+"/page")
		require.NoError(t, err)
		assert.Equal(t, "direct", html)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("cached copy"))
		}))
		defer server.Close()

		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(server.URL))

		html, err := fetcher.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "cached copy", html)
	})

	t.Run("returns fetch error with status for non-2xx", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("upstream down"))
		}))
		defer server.Close()

		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(server.URL))

		_, err := fetcher.Fetch(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
		assert.Equal(t, "Failed to fetch URL. Status: 503", pagelens.ErrorMessage(err))
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(server.URL), pagehttp.WithTimeout(10*time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
		assert.Equal(t, pagelens.MsgFetchFailed, pagelens.ErrorMessage(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(server.URL))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, "https://example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("waits on the limiter for the page host before fetching", func(t *testing.T) {
		t.Parallel()

		var requested bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested = true
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer server.Close()

		var hosts []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				assert.False(t, requested)
				hosts = append(hosts, host)
				return nil
			},
		}
		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(server.URL), pagehttp.WithLimiter(limiter))

		_, err := fetcher.Fetch(context.Background(), "https://shop.example.com/item")
		require.NoError(t, err)
		assert.Equal(t, []string{"shop.example.com"}, hosts)
		assert.True(t, requested)
	})

	t.Run("does not fetch when the limiter wait fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		defer server.Close()

		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				return context.DeadlineExceeded
			},
		}
		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(server.URL), pagehttp.WithLimiter(limiter))

		_, err := fetcher.Fetch(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := pagehttp.NewFetcher(pagehttp.WithProxy(""), pagehttp.WithTimeout(100*time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
	})
}

func TestFetcher_RequestURL(t *testing.T) {
	t.Parallel()

	fetcher := pagehttp.NewFetcher()

	assert.Equal(t,
		"https://api.allorigins.win/raw?url=https%3A%2F%2Fexample.com%2Fa",
		fetcher.RequestURL("https://example.com/a"))
}

// Compile-time verification that Fetcher implements pagelens.Fetcher
var _ pagelens.Fetcher = (*pagehttp.Fetcher)(nil)
