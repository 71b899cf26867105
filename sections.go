package pagelens

// Section is a labeled part of a rendered analysis.
type Section string

// Sections in display order.
const (
	SectionPageIntent   Section = "Page Intent"
	SectionKeyTakeaways Section = "Key Takeaways"
	SectionSiblingLinks Section = "Sibling Link Opportunities"
	SectionStats        Section = "Stats & Key Facts"
	SectionProTips      Section = "Pro Tips"
	SectionConclusion   Section = "Conclusion"
	SectionCapsule      Section = "AI/SEO Capsule"
)

// Messages shown in place of an empty always-visible section.
const (
	NoSiblingLinksMessage = "No strong sibling link opportunities found."
	NoStatsMessage        = "No citable statistics were found in the provided content."
)

// CapsuleHint explains how to use the AI/SEO capsule.
const CapsuleHint = "This is a concise, direct answer to a user's potential question, optimized for search engines. Use it as a 'featured snippet', a meta description, or at the top of a blog post for a quick summary."

// Sections returns the sections to render for r, in display order.
// Page Intent, Sibling Links and Stats always render; the others are
// hidden when empty.
func (r *AnalysisResult) Sections() []Section {
	sections := []Section{SectionPageIntent}
	if len(r.KeyTakeaways) > 0 {
		sections = append(sections, SectionKeyTakeaways)
	}
	sections = append(sections, SectionSiblingLinks, SectionStats)
	if len(r.ProTips) > 0 {
		sections = append(sections, SectionProTips)
	}
	if r.Conclusion != "" {
		sections = append(sections, SectionConclusion)
	}
	if r.AISEOCapsule != "" {
		sections = append(sections, SectionCapsule)
	}
	return sections
}
