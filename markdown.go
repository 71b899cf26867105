package pagelens

import (
	"fmt"
	"strings"
)

// ToMarkdown serializes r as a Markdown document with one "##" heading per
// rendered section, in the order given by Sections.
func ToMarkdown(r *AnalysisResult) string {
	var sb strings.Builder
	sb.WriteString("# Webpage Analysis\n\n")

	for _, section := range r.Sections() {
		fmt.Fprintf(&sb, "## %s\n", section)

		switch section {
		case SectionPageIntent:
			fmt.Fprintf(&sb, "> %s\n\n", r.PageIntent)

		case SectionKeyTakeaways:
			for _, item := range r.KeyTakeaways {
				fmt.Fprintf(&sb, "* %s\n", item)
			}
			sb.WriteString("\n")

		case SectionSiblingLinks:
			if len(r.SiblingLinks) == 0 {
				fmt.Fprintf(&sb, "%s\n\n", NoSiblingLinksMessage)
			}
			for _, link := range r.SiblingLinks {
				fmt.Fprintf(&sb, "* **Anchor:** [%s](%s)\n", link.AnchorText, link.URL)
				fmt.Fprintf(&sb, "  * **Nearest Heading:** %s\n", link.Placement.NearestHeading)
				fmt.Fprintf(&sb, "  * **Placement Sentence:** \"%s\"\n\n", link.Placement.Quote)
			}

		case SectionStats:
			if len(r.StatsAndKeyFacts) == 0 {
				fmt.Fprintf(&sb, "%s\n\n", NoStatsMessage)
			}
			for _, stat := range r.StatsAndKeyFacts {
				fmt.Fprintf(&sb, "* **%s** (%s)\n", stat.MetricAndValue, stat.YearAndGeography)
				fmt.Fprintf(&sb, "  * **Source:** %s\n\n", stat.SourceCitation)
			}

		case SectionProTips:
			for _, tip := range r.ProTips {
				fmt.Fprintf(&sb, "* **Tip:** %s\n", tip.Tip)
				fmt.Fprintf(&sb, "  * **Nearest Heading:** %s\n", tip.Placement.NearestHeading)
				fmt.Fprintf(&sb, "  * **Context:** \"%s\"\n\n", tip.Placement.Quote)
			}

		case SectionConclusion:
			fmt.Fprintf(&sb, "%s\n\n", r.Conclusion)

		case SectionCapsule:
			fmt.Fprintf(&sb, "%s\n\n", r.AISEOCapsule)
		}
	}

	return sb.String()
}
