// Package ingest turns uploaded PDF bytes into embeddable text chunks.
package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ExtractText reads the document page by page and concatenates the extracted
// text in page order. Pages without extractable text (scanned images) contribute
// an empty string. An empty result is not an error; a malformed PDF is.
func ExtractText(data []byte) (string, error) {
	if err := validatePDF(data); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func validatePDF(data []byte) error {
	conf := api.LoadConfiguration()
	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("malformed PDF document: %w", err)
	}
	return nil
}
