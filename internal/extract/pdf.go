package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfStrategy pulls text from a parsed PDF. Different producers embed text
// differently, so neither strategy is strictly superior to the other.
type pdfStrategy func(data []byte) (string, error)

var pdfStrategies = []pdfStrategy{pdfTextByRows, pdfPlainText}

// extractPDF tries the layout-aware row extractor first and falls back to the
// simpler plain-text stream when it yields nothing but whitespace. Only when
// both come back empty does the extraction fail.
func extractPDF(data []byte) (string, error) {
	var lastErr error
	for _, strategy := range pdfStrategies {
		text, err := strategy(data)
		if err != nil {
			lastErr = err
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrNoText, lastErr)
	}
	return "", ErrNoText
}

// pdfTextByRows walks each page and reconstructs text row by row, which keeps
// column layouts readable.
func pdfTextByRows(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf row extraction: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				buf.WriteString(word.S)
			}
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

// pdfPlainText streams the whole document's text layer in one pass.
func pdfPlainText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf plain text extraction: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
