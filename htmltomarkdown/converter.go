// Package htmltomarkdown implements pagelens.Converter with
// html-to-markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagelens"
)

// Ensure Converter implements pagelens.Converter at compile time.
var _ pagelens.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert cleaned page HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Relative links and images
// are made absolute against the origin of pageURL.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		return c.conv.ConvertString(html, converter.WithDomain(u.Scheme+"://"+u.Host))
	}
	return c.conv.ConvertString(html)
}
