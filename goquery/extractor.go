// Package goquery implements pagelens.ContentExtractor on top of goquery.
// It collects a page's links, removes boilerplate regions and returns the
// remaining text.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagelens"
	"golang.org/x/net/html"
)

// BoilerplateSelectors match regions that are removed before text
// extraction.
var BoilerplateSelectors = []string{
	"script", "style", "nav", "footer", "header", "aside", "form",
	`[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`, `[role="complementary"]`,
	".header", ".footer", "#header", "#footer",
	".sidebar", "#sidebar", ".nav", "#nav", ".menu", "#menu",
	".ad", ".ads", ".advertisement", ".popup", ".modal",
}

var boilerplate = strings.Join(BoilerplateSelectors, ", ")

// Ensure Extractor implements pagelens.ContentExtractor at compile time.
var _ pagelens.ContentExtractor = (*Extractor)(nil)

// Extractor fetches a page and extracts its text and existing links.
type Extractor struct {
	fetcher pagelens.Fetcher
	main    pagelens.MainContentExtractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMainContent narrows text extraction to the article region found by
// m. Links are still collected from the whole page.
func WithMainContent(m pagelens.MainContentExtractor) Option {
	return func(e *Extractor) {
		e.main = m
	}
}

// NewExtractor creates a new Extractor that retrieves pages with fetcher.
func NewExtractor(fetcher pagelens.Fetcher, opts ...Option) *Extractor {
	e := &Extractor{fetcher: fetcher}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches pageURL and returns its cleaned content.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*pagelens.ExtractedContent, error) {
	rawHTML, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if pagelens.ErrorCode(err) == pagelens.EFETCH {
			return nil, err
		}
		return nil, pagelens.WrapError(pagelens.EFETCH, pagelens.MsgFetchFailed, err)
	}
	return e.ExtractHTML(rawHTML, pageURL)
}

// ExtractHTML extracts content from already fetched HTML.
func (e *Extractor) ExtractHTML(rawHTML, pageURL string) (*pagelens.ExtractedContent, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	// Links must be collected before boilerplate removal: nav and footer
	// links still count as links the page already has.
	links := ExistingLinks(doc, pageURL)

	content, main, err := e.contentDocument(doc, rawHTML, pageURL)
	if err != nil {
		return nil, err
	}
	content.Find(boilerplate).Remove()

	out := &pagelens.ExtractedContent{
		Title:         strings.TrimSpace(doc.Find("title").First().Text()),
		TextContent:   CleanText(TextContent(content.Find("body").Nodes)),
		ExistingLinks: links,
	}
	if main != nil {
		if main.Title != "" {
			out.Title = main.Title
		}
		out.Excerpt = strings.TrimSpace(main.Excerpt)
	}
	return out, nil
}

// CleanHTML returns the page body HTML with boilerplate removed.
func (e *Extractor) CleanHTML(rawHTML, pageURL string) (string, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return "", err
	}

	content, _, err := e.contentDocument(doc, rawHTML, pageURL)
	if err != nil {
		return "", err
	}
	content.Find(boilerplate).Remove()

	return content.Find("body").Html()
}

// contentDocument returns the document text is taken from: the article
// region when a main-content extractor is set, the whole page otherwise.
func (e *Extractor) contentDocument(doc *goquery.Document, rawHTML, pageURL string) (*goquery.Document, *pagelens.MainContent, error) {
	if e.main == nil {
		return doc, nil, nil
	}

	mc, err := e.main.ExtractMain(rawHTML, pageURL)
	if err != nil {
		return nil, nil, pagelens.WrapError(pagelens.EEMPTY, pagelens.MsgEmptyContent, err)
	}

	content, err := parseDocument(mc.HTML)
	if err != nil {
		return nil, nil, err
	}
	return content, mc, nil
}

// parseDocument parses rawHTML the way a browser does with scripting
// disabled, so <noscript> content is markup rather than raw text.
func parseDocument(rawHTML string) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(rawHTML), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, pagelens.WrapError(pagelens.EEMPTY, pagelens.MsgEmptyContent, err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// ExistingLinks returns the href of every anchor in doc, resolved against
// pageURL, that is absolute http(s) or root-relative. Duplicates are
// dropped, first occurrence wins.
func ExistingLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		base = nil
	}

	seen := make(map[string]struct{})
	links := []string{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return
		}

		link := resolveURL(base, href)
		if !strings.HasPrefix(link, "http") && !strings.HasPrefix(link, "/") {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links
}

// resolveURL resolves href against base. Without a base, or when href
// cannot be parsed, href is returned unchanged.
func resolveURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// blockElements separate their text from neighboring text.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true, "dd": true,
	"div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "main": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// TextContent concatenates the text nodes under nodes in document order.
// Block elements are separated by a space so that adjacent paragraphs do
// not run together.
func TextContent(nodes []*html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte(' ')
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return sb.String()
}

// CleanText collapses every run of whitespace to a single space, trims
// the ends and truncates to pagelens.MaxTextLength characters.
func CleanText(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > pagelens.MaxTextLength {
		text = strings.TrimRight(string(runes[:pagelens.MaxTextLength]), " ")
	}
	return text
}
