package report

import (
	"bytes"
	"context"
	"fmt"

	"contract-backend/internal/analysis"
)

// HTMLRenderer renders report documents with the embedded template. It is the
// default renderer and the input stage for the PDF renderer.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{} }

func (r *HTMLRenderer) Render(ctx context.Context, doc analysis.ReportDocument) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, doc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), "text/html; charset=utf-8", nil
}

var _ Renderer = (*HTMLRenderer)(nil)
