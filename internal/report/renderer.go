package report

import (
	"context"
	"errors"

	"contract-backend/internal/analysis"
)

var (
	// ErrRender wraps failures while turning a report document into bytes.
	ErrRender = errors.New("report render failed")
	// ErrChromeMissing is returned when the PDF renderer cannot find a
	// Chromium binary on the host.
	ErrChromeMissing = errors.New("chromium not installed")
)

// Renderer turns an assembled report document into downloadable bytes.
type Renderer interface {
	Render(ctx context.Context, doc analysis.ReportDocument) (data []byte, contentType string, err error)
}

// FileExtension maps a renderer content type to the storage key suffix.
func FileExtension(contentType string) string {
	if contentType == "application/pdf" {
		return ".pdf"
	}
	return ".html"
}
