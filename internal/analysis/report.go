package analysis

import (
	"fmt"
	"strings"
)

// Section labels of one clause card, in render order.
const (
	SectionOriginal       = "원문"
	SectionRelatedLaw     = "관련 법률"
	SectionCommentary     = "해설"
	SectionRecommendation = "수정 제안"
)

// CardSection is one labeled block of a clause card.
type CardSection struct {
	Label string `json:"label"`
	Body  string `json:"body"`
}

// ClauseCard is the render-ready form of one finding.
type ClauseCard struct {
	Index     int           `json:"index"`
	RiskLabel string        `json:"riskLabel"`
	Sentence  string        `json:"sentence"`
	Sections  []CardSection `json:"sections"`
}

// ReportDocument is the document model handed to the rendering collaborator.
// The highlights section is rendered only when Highlights is non-empty.
type ReportDocument struct {
	Title      string       `json:"title"`
	Highlights []string     `json:"highlights"`
	Cards      []ClauseCard `json:"cards"`
}

// AssembleReport maps an analysis result into a render-ready document model.
// Cards are 1-indexed and keep the original finding order.
func AssembleReport(title string, result Result) ReportDocument {
	cards := make([]ClauseCard, 0, len(result.Findings))
	for i, f := range result.Findings {
		cards = append(cards, ClauseCard{
			Index:     i + 1,
			RiskLabel: strings.ToUpper(string(f.Risk)),
			Sentence:  fmt.Sprintf("“%s”", f.Sentence),
			Sections: []CardSection{
				{Label: SectionOriginal, Body: f.Sentence},
				{Label: SectionRelatedLaw, Body: f.Law},
				{Label: SectionCommentary, Body: f.Description},
				{Label: SectionRecommendation, Body: f.Recommend},
			},
		})
	}
	return ReportDocument{
		Title:      title,
		Highlights: result.Highlights,
		Cards:      cards,
	}
}
