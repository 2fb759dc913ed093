package report

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"contract-backend/internal/analysis"
)

const pdfRenderTimeout = 30 * time.Second

// PDFRenderer prints the HTML rendition to PDF through headless Chromium.
type PDFRenderer struct {
	html *HTMLRenderer
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{html: NewHTMLRenderer()}
}

func (r *PDFRenderer) Render(ctx context.Context, doc analysis.ReportDocument) ([]byte, string, error) {
	if _, err := exec.LookPath("chromium-browser"); err != nil {
		if _, fallbackErr := exec.LookPath("chromium"); fallbackErr != nil {
			return nil, "", ErrChromeMissing
		}
	}

	htmlBytes, _, err := r.html.Render(ctx, doc)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, pdfRenderTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	// url.QueryEscape encodes spaces as +, which data URLs do not accept.
	dataURL := "data:text/html;charset=utf-8," + percentEncodeForDataURL(string(htmlBytes))

	var pdfData []byte
	err = chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27). // A4
				WithPaperHeight(11.69).
				WithMarginTop(0.6).
				WithMarginBottom(0.6).
				WithMarginLeft(0.6).
				WithMarginRight(0.6).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	return pdfData, "application/pdf", nil
}

func percentEncodeForDataURL(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_', r == '.', r == '~':
			b.WriteRune(r)
		case r == ' ':
			b.WriteString("%20")
		default:
			for _, c := range []byte(string(r)) {
				fmt.Fprintf(&b, "%%%02X", c)
			}
		}
	}
	return b.String()
}

var _ Renderer = (*PDFRenderer)(nil)
