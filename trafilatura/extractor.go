// Package trafilatura implements pagelens.MainContentExtractor with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/pagelens"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagelens.MainContentExtractor at compile time.
var _ pagelens.MainContentExtractor = (*Extractor)(nil)

// Extractor isolates the article region of a page with go-trafilatura.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMain returns the article region of rawHTML. Comment sections are
// left out.
func (e *Extractor) ExtractMain(rawHTML, pageURL string) (*pagelens.MainContent, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &pagelens.MainContent{
		Title:   result.Metadata.Title,
		Excerpt: result.Metadata.Description,
		HTML:    contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
