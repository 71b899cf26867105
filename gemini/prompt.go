package gemini

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pagelens"
	"google.golang.org/genai"
)

// NoLinksPlaceholder stands in for the existing-links list when the page
// has no links.
const NoLinksPlaceholder = "No links found."

// BuildPrompt builds the analysis instructions for the page text and the
// links it already carries.
func BuildPrompt(text string, existingLinks []string) string {
	links := NoLinksPlaceholder
	if len(existingLinks) > 0 {
		links = strings.Join(existingLinks, "\n")
	}

	var sb strings.Builder
	sb.WriteString("As a Senior Content Strategist, your task is to perform a deep analysis of the provided webpage content. ")
	sb.WriteString("Your output must be a structured JSON object and all fields must be deeply rooted in the provided text, demonstrating a comprehensive understanding of its nuances, arguments, and key takeaways. ")
	sb.WriteString("The provided content has been programmatically cleaned to remove headers, footers, navigation, and other non-essential blocks.\n\n")

	sb.WriteString("**Webpage Content:**\n")
	fmt.Fprintf(&sb, "\"\"\"\n%s\n\"\"\"\n\n", text)

	sb.WriteString("**Existing Links on the Page (to be excluded from suggestions):**\n")
	fmt.Fprintf(&sb, "\"\"\"\n%s\n\"\"\"\n\n", links)

	sb.WriteString("**Analysis Instructions & Formatting Rules (Strictly Enforced):**\n\n")
	sb.WriteString("You must return a single, valid JSON object that conforms to the provided schema. Do not include any commentary, markdown formatting, or text outside of the JSON object.\n\n")
	for i, rule := range rules {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, rule)
	}
	return sb.String()
}

// PromptContents returns the request contents Analyze sends for content.
func PromptContents(content *pagelens.ExtractedContent) []*genai.Content {
	prompt := BuildPrompt(content.TextContent, content.ExistingLinks)
	return []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
}

var rules = []string{
	"**Page Intent**: Identify the primary goal of this page from the perspective of its publisher. What action or understanding are they trying to drive? Summarize this in one concise sentence.",
	"**Key Takeaways**: Distill the article into its 3-5 most critical points. These should be the essential arguments or conclusions a reader must not miss.",
	"**Up to 3 Sibling Links**: Recommend up to 3 relevant sibling pages from the same domain. The chosen placement sentence must create a logical and smooth transition to the linked page's topic. Enforce a balanced mix: at least one product page if relevant, plus a blog/guide/case study. **Crucially, you must NOT suggest any URLs that are already present in the \"Existing Links on the Page\" list provided above.**",
	"**Stats & Key Facts**: Extract 3-5 of the most impactful data points. Strongly prioritize recent stats (post-2023) from authoritative sources. However, if the article presents data directly (e.g., '55% of users...'), extract it. **For every stat, you MUST provide a 'sourceCitation'. If an external source is cited, use it. If no source is cited, you MUST write '" + pagelens.CitationFallback + "'. This field cannot be empty.**",
	"**Pro Tips**: Based *only* on the advice within the article, formulate 2-3 actionable 'pro tips'. For each tip, identify the exact sentence from the article that inspires it and the nearest heading above it to provide context.",
	"**Conclusion**: Write a powerful conclusion of 2-3 sentences that synthesizes the article's core message and gives the reader a definitive final thought.",
	"**AI/SEO Capsule**: Write a 40-55 word direct-answer capsule suitable for a featured snippet. It should be helpful, concise, and written in an expert tone.",
	"**Strict Enforcement**: If strong, contextually relevant items for links, stats, or tips don't exist, return empty arrays. No filler content.",
}

func str(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func placement(quote string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"quote":          str(quote),
			"nearestHeading": str("The nearest H2/H3 heading above the placement sentence."),
		},
		PropertyOrdering: []string{"quote", "nearestHeading"},
		Required:         []string{"quote", "nearestHeading"},
	}
}

// Schema returns the response schema the model output must conform to.
// Every object declares all of its fields as required.
func Schema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"pageIntent": str("A concise, one-sentence summary of the page's core purpose from the publisher's perspective."),
			"keyTakeaways": {
				Type:        genai.TypeArray,
				Description: "3-5 essential bullet points that summarize the article's main arguments and conclusions.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"siblingLinks": {
				Type:        genai.TypeArray,
				Description: "Up to 3 recommended sibling pages from the same domain. The placement sentence must logically lead into the topic of the suggested link.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"anchorText": str("3-6 words, verb-driven, unique anchor text."),
						"placement":  placement("The exact sentence from the page where the link should be inserted."),
						"url":        str("Direct URL to the sibling page."),
					},
					PropertyOrdering: []string{"anchorText", "placement", "url"},
					Required:         []string{"anchorText", "placement", "url"},
				},
			},
			"statsAndKeyFacts": {
				Type:        genai.TypeArray,
				Description: "3-5 authoritative data points. Prioritize stats from post-2023 from high-authority sources, but also extract key figures presented in the article itself.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"metricAndValue":   str("The data point or key fact."),
						"yearAndGeography": str("Year and geography (e.g., '2024, US'). If not available, state 'Not specified'."),
						"sourceCitation":   str("Full source citation. This field is MANDATORY. If cited in-text, use that. Otherwise, state '" + pagelens.CitationFallback + "'."),
					},
					PropertyOrdering: []string{"metricAndValue", "yearAndGeography", "sourceCitation"},
					Required:         []string{"metricAndValue", "yearAndGeography", "sourceCitation"},
				},
			},
			"proTips": {
				Type:        genai.TypeArray,
				Description: "2-3 actionable 'pro tips' for the reader, derived from the webpage's core advice, including a contextual placement for each tip.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"tip":       str("The actionable advice or pro tip."),
						"placement": placement("The exact sentence from the article that inspires the tip, providing context."),
					},
					PropertyOrdering: []string{"tip", "placement"},
					Required:         []string{"tip", "placement"},
				},
			},
			"conclusion":   str("A brief, powerful conclusion (2-3 sentences) that synthesizes the article's main arguments and gives the reader a clear final thought."),
			"aiSEOCapsule": str("A 40-55 word direct-answer capsule suitable for a featured snippet, written in a helpful, expert tone."),
		},
		PropertyOrdering: append([]string(nil), requiredFields...),
		Required:         append([]string(nil), requiredFields...),
	}
}

var requiredFields = []string{
	"pageIntent", "keyTakeaways", "siblingLinks", "statsAndKeyFacts", "proTips", "conclusion", "aiSEOCapsule",
}
