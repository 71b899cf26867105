package goquery_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/fwojciec/pagelens"
	"github.com/fwojciec/pagelens/goquery"
	"github.com/fwojciec/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Running Shoes Guide</title><style>body { color: red; }</style></head>
<body>
  <nav><a href="/home">Home</a> <a href="https://example.com/blog">Blog</a> Site navigation text</nav>
  <header class="header">Header banner</header>
  <main>
    <h2>Choosing   a shoe</h2>
    <p>Fit matters
       most when you run.</p><p>Replace shoes every 500 miles.</p>
    <div class="ad">Buy now!</div>
    <div role="complementary">Related widgets</div>
    <script>var tracking = true;</script>
  </main>
  <footer><a href="https://partner.example.org/deal">Partner deal</a> Footer text</footer>
</body>
</html>`

func newExtractor(html string) *goquery.Extractor {
	return goquery.NewExtractor(&mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return html, nil
		},
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("removes boilerplate but keeps its links", func(t *testing.T) {
		t.Parallel()

		content, err := newExtractor(articleHTML).Extract(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Choosing a shoe Fit matters most when you run. Replace shoes every 500 miles.", content.TextContent)
		assert.NotContains(t, content.TextContent, "Site navigation text")
		assert.NotContains(t, content.TextContent, "Footer text")
		assert.NotContains(t, content.TextContent, "Header banner")
		assert.NotContains(t, content.TextContent, "Buy now!")
		assert.NotContains(t, content.TextContent, "Related widgets")
		assert.NotContains(t, content.TextContent, "tracking")
		assert.Contains(t, content.ExistingLinks, "https://partner.example.org/deal")
		assert.Contains(t, content.ExistingLinks, "https://example.com/home")
		assert.Contains(t, content.ExistingLinks, "https://example.com/blog")
		assert.Equal(t, "Running Shoes Guide", content.Title)
	})

	t.Run("wraps fetcher errors as fetch errors", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("browser crashed")
			},
		})

		_, err := e.Extract(context.Background(), "https://example.com/a")

		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
		assert.Equal(t, pagelens.MsgFetchFailed, pagelens.ErrorMessage(err))
	})

	t.Run("passes fetch errors through unchanged", func(t *testing.T) {
		t.Parallel()

		fetchErr := pagelens.Errorf(pagelens.EFETCH, "Failed to fetch URL. Status: 503")
		e := goquery.NewExtractor(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", fetchErr
			},
		})

		_, err := e.Extract(context.Background(), "https://example.com/a")

		assert.Equal(t, fetchErr, err)
	})

	t.Run("blank page yields empty text without error", func(t *testing.T) {
		t.Parallel()

		content, err := newExtractor("<html><body><nav>only nav</nav>   </body></html>").Extract(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Empty(t, content.TextContent)
		assert.NotNil(t, content.ExistingLinks)
	})
}

func TestExtractor_ExtractHTML(t *testing.T) {
	t.Parallel()

	t.Run("truncates text to the maximum length", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("word ", 5000)
		content, err := newExtractor("").ExtractHTML("<p>"+body+"</p>", "https://example.com")

		require.NoError(t, err)
		assert.LessOrEqual(t, len([]rune(content.TextContent)), pagelens.MaxTextLength)
		assert.True(t, strings.HasPrefix(content.TextContent, "word word"))
	})

	t.Run("text never holds consecutive whitespace", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			articleHTML,
			"<p>a\t\t b</p>\n\n<p> c  d </p>",
			"<div>x<br>y</div><ul><li>1</li><li>2</li></ul>",
			"",
		}
		for _, in := range inputs {
			content, err := newExtractor("").ExtractHTML(in, "https://example.com")
			require.NoError(t, err)

			prevSpace := false
			for _, r := range content.TextContent {
				isSpace := unicode.IsSpace(r)
				assert.False(t, isSpace && prevSpace, "consecutive whitespace in %q", content.TextContent)
				prevSpace = isSpace
			}
			assert.Equal(t, strings.TrimSpace(content.TextContent), content.TextContent)
		}
	})

	t.Run("links are deduplicated absolute or root-relative", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<a href="https://example.com/x">x</a>
			<a href="/x">x again</a>
			<a href="y">relative</a>
			<a href="mailto:me@example.com">mail</a>
			<a href="javascript:void(0)">js</a>
			<a href="#top">top</a>
			<a href="">empty</a>
			<a>no href</a>
		</body>`

		content, err := newExtractor("").ExtractHTML(html, "https://example.com/docs/page")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/x",
			"https://example.com/docs/y",
			"https://example.com/docs/page#top",
		}, content.ExistingLinks)
	})

	t.Run("keeps root-relative links when page URL is unusable", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/a">a</a><a href="/a">a</a><a href="b">b</a><a href="http://x.test/">x</a>`

		content, err := newExtractor("").ExtractHTML(html, "")

		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "http://x.test/"}, content.ExistingLinks)
	})

	t.Run("narrows text to main content", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		e := goquery.NewExtractor(nil, goquery.WithMainContent(&mock.MainContentExtractor{
			ExtractMainFn: func(html, pageURL string) (*pagelens.MainContent, error) {
				gotURL = pageURL
				return &pagelens.MainContent{Title: "Article Title", Excerpt: " Only the article, briefly. ", HTML: "<article><p>Only the article.</p><nav>inner nav</nav></article>"}, nil
			},
		}))

		content, err := e.ExtractHTML(articleHTML, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", gotURL)
		assert.Equal(t, "Only the article.", content.TextContent)
		assert.Equal(t, "Article Title", content.Title)
		assert.Equal(t, "Only the article, briefly.", content.Excerpt)
		assert.Contains(t, content.ExistingLinks, "https://partner.example.org/deal")
	})

	t.Run("leaves excerpt empty without a main-content stage", func(t *testing.T) {
		t.Parallel()

		content, err := newExtractor("").ExtractHTML(articleHTML, "https://example.com/a")

		require.NoError(t, err)
		assert.Empty(t, content.Excerpt)
	})

	t.Run("parses noscript content as markup, not text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><noscript><iframe src="https://www.googletagmanager.com/ns.html?id=GTM-X" height="0" width="0"></iframe></noscript>` +
			`<p>Real article text.</p></body></html>`

		content, err := newExtractor("").ExtractHTML(html, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Real article text.", content.TextContent)
		assert.NotContains(t, content.TextContent, "iframe")
	})
}

func TestExtractor_CleanHTML(t *testing.T) {
	t.Parallel()

	html, err := newExtractor("").CleanHTML(articleHTML, "https://example.com/a")

	require.NoError(t, err)
	assert.Contains(t, html, "<h2>Choosing   a shoe</h2>")
	assert.NotContains(t, html, "<nav>")
	assert.NotContains(t, html, "<footer>")
	assert.NotContains(t, html, "<script>")
}

func TestExtractor_CleanHTML_Noscript(t *testing.T) {
	t.Parallel()

	html, err := newExtractor("").CleanHTML(`<body><noscript><img src="/pixel.gif"></noscript><p>Body.</p></body>`, "https://example.com/a")

	require.NoError(t, err)
	assert.Contains(t, html, `<img src="/pixel.gif"/>`)
	assert.NotContains(t, html, "&lt;img")
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", goquery.CleanText("  a \n\n b\t\tc  "))
	assert.Equal(t, "", goquery.CleanText(" \n\t "))

	long := strings.Repeat("é", pagelens.MaxTextLength+10)
	assert.Equal(t, pagelens.MaxTextLength, len([]rune(goquery.CleanText(long))))
}
