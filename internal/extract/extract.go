package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"resume-builder/internal/shared/storage/object"
)

// ErrNotPDF is returned when the payload is not a PDF document.
var ErrNotPDF = errors.New("not a pdf document")

// PageTexts opens a stored PDF and returns the plain text of each page.
// Library used: github.com/ledongthuc/pdf.
func PageTexts(ctx context.Context, store object.ObjectStore, storageKey string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("extract text key=%s: %w", storageKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("extract text key=%s: read: %w", storageKey, err)
	}

	pages, err := PageTextsFromBytes(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("extract text key=%s: %w", storageKey, err)
	}
	return pages, nil
}

// PageTextsFromBytes extracts per-page text from an in-memory PDF.
func PageTextsFromBytes(ctx context.Context, data []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsPDF(data) {
		return nil, ErrNotPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	n := reader.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return pages, nil
}

// PageCount returns the number of pages in an in-memory PDF.
func PageCount(data []byte) (int, error) {
	if !IsPDF(data) {
		return 0, ErrNotPDF
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

// IsPDF sniffs the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
