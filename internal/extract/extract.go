package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"contract-backend/internal/shared/telemetry"
)

// ErrUnreadable is returned when the payload cannot be opened as a PDF container.
var ErrUnreadable = errors.New("unreadable pdf")

// Text extracts plain text from an in-memory PDF payload.
// Pages are concatenated in page order; a page that yields no text (or whose
// extraction fails) contributes an empty string and extraction continues.
// Library used: github.com/ledongthuc/pdf.
func Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrUnreadable)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var buf strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := pageText(page)
		if err != nil {
			telemetry.Warn("extract.page_failed", map[string]any{"page": i, "error": err.Error()})
			continue
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func pageText(page pdf.Page) (text string, err error) {
	// The pdf library panics on some malformed content streams; a bad page
	// must not abort the whole document.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page text panic: %v", rec)
		}
	}()
	return page.GetPlainText(nil)
}
