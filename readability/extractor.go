// Package readability implements pagelens.MainContentExtractor with
// go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pagelens"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagelens.MainContentExtractor at compile time.
var _ pagelens.MainContentExtractor = (*Extractor)(nil)

// Extractor isolates the article region of a page with go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMain returns the article region of rawHTML. pageURL, when valid,
// lets readability resolve relative links and images.
func (e *Extractor) ExtractMain(rawHTML, pageURL string) (*pagelens.MainContent, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	return &pagelens.MainContent{
		Title:   article.Title,
		Excerpt: article.Excerpt,
		HTML:    article.Content,
	}, nil
}
