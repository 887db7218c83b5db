// Package pdftext pulls plain text out of bill PDFs. Some chambers
// only publish introduced bill text as PDF, keyword matching still
// has to work on those.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

var NotPDF = errors.New("payload does not have a pdf header")

// Extract returns the concatenated text content of every page.
func Extract(data []byte) (string, error) {
	if !IsPDF(data) {
		return "", NotPDF
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	return plainText(reader)
}

func plainText(reader *pdf.Reader) (string, error) {
	text, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, text)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// IsPDF reports whether the payload looks like a PDF. Portals
// sometimes serve an HTML error page with a .pdf url.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
