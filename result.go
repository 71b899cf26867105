package pagelens

import (
	"encoding/json"
	"strings"
)

// CitationFallback is the citation used for a stat that names no source.
const CitationFallback = "Source: The analyzed article"

// MaxSiblingLinks is the most sibling links a result may carry.
const MaxSiblingLinks = 3

// Placement locates a sentence in the analyzed page.
type Placement struct {
	Quote          string `json:"quote"`
	NearestHeading string `json:"nearestHeading"`
}

// SiblingLink is a suggested internal link to another page on the same site.
type SiblingLink struct {
	AnchorText string    `json:"anchorText"`
	URL        string    `json:"url"`
	Placement  Placement `json:"placement"`
}

// StatAndFact is a data point cited by or relevant to the page.
type StatAndFact struct {
	MetricAndValue   string `json:"metricAndValue"`
	YearAndGeography string `json:"yearAndGeography"`
	SourceCitation   string `json:"sourceCitation"`
}

// ProTip is actionable advice drawn from the page.
type ProTip struct {
	Tip       string    `json:"tip"`
	Placement Placement `json:"placement"`
}

// AnalysisResult is the structured analysis of a page.
type AnalysisResult struct {
	PageIntent       string        `json:"pageIntent"`
	KeyTakeaways     []string      `json:"keyTakeaways"`
	SiblingLinks     []SiblingLink `json:"siblingLinks"`
	StatsAndKeyFacts []StatAndFact `json:"statsAndKeyFacts"`
	ProTips          []ProTip      `json:"proTips"`
	Conclusion       string        `json:"conclusion"`
	AISEOCapsule     string        `json:"aiSEOCapsule"`
}

// ExcludeLinks drops sibling links whose URL is already present on the
// page and keeps at most MaxSiblingLinks. It returns the number dropped.
func (r *AnalysisResult) ExcludeLinks(existing []string) int {
	seen := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		seen[l] = struct{}{}
	}

	kept := make([]SiblingLink, 0, len(r.SiblingLinks))
	for _, link := range r.SiblingLinks {
		if _, ok := seen[link.URL]; ok {
			continue
		}
		if len(kept) == MaxSiblingLinks {
			continue
		}
		kept = append(kept, link)
	}

	dropped := len(r.SiblingLinks) - len(kept)
	r.SiblingLinks = kept
	return dropped
}

// The wire types use pointers so that a missing key can be told apart
// from an empty value.
type wirePlacement struct {
	Quote          *string `json:"quote"`
	NearestHeading *string `json:"nearestHeading"`
}

type wireSiblingLink struct {
	AnchorText *string        `json:"anchorText"`
	URL        *string        `json:"url"`
	Placement  *wirePlacement `json:"placement"`
}

type wireStat struct {
	MetricAndValue   *string `json:"metricAndValue"`
	YearAndGeography *string `json:"yearAndGeography"`
	SourceCitation   *string `json:"sourceCitation"`
}

type wireProTip struct {
	Tip       *string        `json:"tip"`
	Placement *wirePlacement `json:"placement"`
}

type wireResult struct {
	PageIntent       *string            `json:"pageIntent"`
	KeyTakeaways     *[]string          `json:"keyTakeaways"`
	SiblingLinks     *[]wireSiblingLink `json:"siblingLinks"`
	StatsAndKeyFacts *[]wireStat        `json:"statsAndKeyFacts"`
	ProTips          *[]wireProTip      `json:"proTips"`
	Conclusion       *string            `json:"conclusion"`
	AISEOCapsule     *string            `json:"aiSEOCapsule"`
}

// DecodeAnalysisResult parses a model response into an AnalysisResult.
// Every field is required: a missing or null key is rejected with EINVALID
// rather than left at its zero value. Arrays may be empty. A stat with a
// missing or blank citation gets CitationFallback.
func DecodeAnalysisResult(data []byte) (*AnalysisResult, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, WrapError(EINVALID, "malformed analysis JSON", err)
	}

	switch {
	case w.PageIntent == nil:
		return nil, missingField("pageIntent")
	case w.KeyTakeaways == nil:
		return nil, missingField("keyTakeaways")
	case w.SiblingLinks == nil:
		return nil, missingField("siblingLinks")
	case w.StatsAndKeyFacts == nil:
		return nil, missingField("statsAndKeyFacts")
	case w.ProTips == nil:
		return nil, missingField("proTips")
	case w.Conclusion == nil:
		return nil, missingField("conclusion")
	case w.AISEOCapsule == nil:
		return nil, missingField("aiSEOCapsule")
	}

	r := &AnalysisResult{
		PageIntent:       *w.PageIntent,
		KeyTakeaways:     *w.KeyTakeaways,
		SiblingLinks:     make([]SiblingLink, 0, len(*w.SiblingLinks)),
		StatsAndKeyFacts: make([]StatAndFact, 0, len(*w.StatsAndKeyFacts)),
		ProTips:          make([]ProTip, 0, len(*w.ProTips)),
		Conclusion:       *w.Conclusion,
		AISEOCapsule:     *w.AISEOCapsule,
	}

	for _, l := range *w.SiblingLinks {
		if l.AnchorText == nil {
			return nil, missingField("siblingLinks.anchorText")
		}
		if l.URL == nil {
			return nil, missingField("siblingLinks.url")
		}
		p, err := decodePlacement(l.Placement, "siblingLinks")
		if err != nil {
			return nil, err
		}
		r.SiblingLinks = append(r.SiblingLinks, SiblingLink{AnchorText: *l.AnchorText, URL: *l.URL, Placement: p})
	}

	for _, s := range *w.StatsAndKeyFacts {
		if s.MetricAndValue == nil {
			return nil, missingField("statsAndKeyFacts.metricAndValue")
		}
		if s.YearAndGeography == nil {
			return nil, missingField("statsAndKeyFacts.yearAndGeography")
		}
		citation := CitationFallback
		if s.SourceCitation != nil && strings.TrimSpace(*s.SourceCitation) != "" {
			citation = *s.SourceCitation
		}
		r.StatsAndKeyFacts = append(r.StatsAndKeyFacts, StatAndFact{
			MetricAndValue:   *s.MetricAndValue,
			YearAndGeography: *s.YearAndGeography,
			SourceCitation:   citation,
		})
	}

	for _, t := range *w.ProTips {
		if t.Tip == nil {
			return nil, missingField("proTips.tip")
		}
		p, err := decodePlacement(t.Placement, "proTips")
		if err != nil {
			return nil, err
		}
		r.ProTips = append(r.ProTips, ProTip{Tip: *t.Tip, Placement: p})
	}

	return r, nil
}

func decodePlacement(p *wirePlacement, parent string) (Placement, error) {
	if p == nil {
		return Placement{}, missingField(parent + ".placement")
	}
	if p.Quote == nil {
		return Placement{}, missingField(parent + ".placement.quote")
	}
	if p.NearestHeading == nil {
		return Placement{}, missingField(parent + ".placement.nearestHeading")
	}
	return Placement{Quote: *p.Quote, NearestHeading: *p.NearestHeading}, nil
}

func missingField(name string) *Error {
	return Errorf(EINVALID, "analysis is missing required field %q", name)
}
