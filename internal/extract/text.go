// Package extract turns raw PDF statements into validated transactions.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"fintrack/internal/errors"
)

// ExtractText produces best-effort plain text from raw PDF bytes. The
// row-grouped method runs first because it keeps tabular statements
// readable; the linear reader is the fallback. Pages yielding no text are
// skipped. Pure transform, no retries beyond the primary-fallback chain.
func ExtractText(data []byte) (string, error) {
	text, primaryErr := extractByRows(data)
	if primaryErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	text, fallbackErr := extractLinear(data)
	if fallbackErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	cause := fallbackErr
	if cause == nil {
		cause = primaryErr
	}
	return "", errors.NewExtractionError(errors.EmptyOrUnreadable, "text extraction failed", cause)
}

// extractByRows reads each page's text grouped into rows.
func extractByRows(data []byte) (text string, err error) {
	// The pdf library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf row extraction panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue // skip unreadable pages
		}
		for _, row := range rows {
			var words []string
			for _, word := range row.Content {
				if word.S != "" {
					words = append(words, word.S)
				}
			}
			if len(words) > 0 {
				sb.WriteString(strings.Join(words, " "))
				sb.WriteString("\n")
			}
		}
	}

	return sb.String(), nil
}

// extractLinear reads the document as one plain-text stream.
func extractLinear(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf linear extraction panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	r, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading plain text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("reading plain text: %w", err)
	}
	return buf.String(), nil
}
