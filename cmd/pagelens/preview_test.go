package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/pagelens"
	main "github.com/fwojciec/pagelens/cmd/pagelens"
	"github.com/fwojciec/pagelens/goquery"
	"github.com/fwojciec/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCmd_Run(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return pageHTML, nil
		},
	}

	t.Run("converts the cleaned body", func(t *testing.T) {
		t.Parallel()

		var gotHTML, gotURL string
		converter := &mock.Converter{
			ConvertFn: func(html, pageURL string) (string, error) {
				gotHTML, gotURL = html, pageURL
				return "\nTrail shoes need grip.\n\n", nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Fetcher:   fetcher,
			Pages:     goquery.NewExtractor(fetcher),
			Converter: converter,
		}

		cmd := &main.PreviewCmd{URL: "https://example.com/a", Format: "markdown"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Trail shoes need grip.\n", stdout.String())
		assert.Equal(t, "https://example.com/a", gotURL)
		assert.NotContains(t, gotHTML, "<nav>")
		assert.NotContains(t, gotHTML, "Copyright")
	})

	t.Run("shows the excerpt found by the main-content stage", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Fetcher: fetcher,
			Pages: goquery.NewExtractor(fetcher, goquery.WithMainContent(&mock.MainContentExtractor{
				ExtractMainFn: func(html, pageURL string) (*pagelens.MainContent, error) {
					return &pagelens.MainContent{Excerpt: "Why grip matters.", HTML: "<p>Trail shoes need grip.</p>"}, nil
				},
			})),
		}

		cmd := &main.PreviewCmd{URL: "https://example.com/a", Format: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Title: Trail Shoes\nExcerpt: Why grip matters.\n\nTrail shoes need grip.\n", stdout.String())
	})

	t.Run("reports converter failures", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Fetcher: fetcher,
			Pages:   goquery.NewExtractor(fetcher),
			Converter: &mock.Converter{
				ConvertFn: func(html, pageURL string) (string, error) {
					return "", errors.New("boom")
				},
			},
		}

		cmd := &main.PreviewCmd{URL: "https://example.com/a", Format: "markdown"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: "+pagelens.MsgUnknown)
	})

	t.Run("rejects an invalid URL without fetching", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("unexpected fetch")
				return "", nil
			}},
		}

		cmd := &main.PreviewCmd{URL: "", Format: "text"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), pagelens.MsgInvalidURL)
	})
}
