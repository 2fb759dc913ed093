package documents

import (
	"time"

	"contract-backend/internal/analysis"
)

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	ReportURL  string    `json:"reportUrl,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// AnalysisResponse is returned from an upload: the stored document plus the
// analysis summary the client renders immediately.
type AnalysisResponse struct {
	DocumentID string                   `json:"documentId"`
	Title      string                   `json:"title"`
	Stats      analysis.Stats           `json:"stats"`
	Highlights []string                 `json:"highlights"`
	Findings   []analysis.ClauseFinding `json:"findings"`
	ReportURL  string                   `json:"reportUrl"`
	UploadedAt time.Time                `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: doc.ID,
		Title:      doc.Title,
		ReportURL:  reportURL(doc),
		UploadedAt: doc.CreatedAt,
	}
}

func toAnalysisResponse(res UploadResult) AnalysisResponse {
	highlights := res.Analysis.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	findings := res.Analysis.Findings
	if findings == nil {
		findings = []analysis.ClauseFinding{}
	}
	return AnalysisResponse{
		DocumentID: res.Document.ID,
		Title:      res.Document.Title,
		Stats:      res.Analysis.Stats,
		Highlights: highlights,
		Findings:   findings,
		ReportURL:  reportURL(res.Document),
		UploadedAt: res.Document.CreatedAt,
	}
}

func reportURL(doc Document) string {
	if doc.ReportKey == "" {
		return ""
	}
	return "/api/v1/documents/" + doc.ID + "/report"
}
