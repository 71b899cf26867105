package pagelens

import "context"

// MaxTextLength caps the number of characters of page text sent to the
// model. Longer text is truncated silently.
const MaxTextLength = 15000

// ExtractedContent is the cleaned text of a page and the links it already
// carries.
type ExtractedContent struct {
	// Title is the page title, when one could be found.
	Title string `json:"title,omitempty"`

	// Excerpt is the page summary found by a main-content extractor.
	Excerpt string `json:"excerpt,omitempty"`

	// TextContent is the page text with boilerplate removed, whitespace
	// collapsed to single spaces and at most MaxTextLength characters.
	TextContent string `json:"textContent"`

	// ExistingLinks holds every outbound link found on the page, absolute
	// or root-relative, deduplicated in document order.
	ExistingLinks []string `json:"existingLinks"`
}

// ContentExtractor turns a page URL into ExtractedContent.
type ContentExtractor interface {
	// Extract fetches the page and returns its cleaned content.
	// Fetch failures are returned as EFETCH. Blank text is not an error.
	Extract(ctx context.Context, url string) (*ExtractedContent, error)
}

// MainContent is the region of a page a main-content extractor considers
// the article.
type MainContent struct {
	Title   string
	Excerpt string

	// HTML is the article markup with site chrome removed.
	HTML string
}

// MainContentExtractor isolates the article region of an HTML page.
type MainContentExtractor interface {
	ExtractMain(html, pageURL string) (*MainContent, error)
}
