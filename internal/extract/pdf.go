package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/gen2brain/go-fitz"
)

const (
	// Below this many characters the structure-aware extractor is assumed
	// to have missed the text layer and the fallback runs.
	pdfFallbackThreshold = 50
	// Below this many characters after both attempts the document is
	// probably image-based or encrypted.
	pdfNearEmptyThreshold = 10
)

// extractPDF tries the structure-aware extractor first and falls back to a
// simpler one on poor yield. Warnings from both attempts are merged; a
// near-empty final text is returned with a warning rather than an error.
func extractPDF(data []byte) ExtractionResult {
	text, pages, warnings := extractPDFFitz(data)

	if len(strings.TrimSpace(text)) < pdfFallbackThreshold {
		fbText, fbPages, fbWarnings := extractPDFFallback(data)
		warnings = append(warnings, fbWarnings...)
		if len(strings.TrimSpace(fbText)) > len(strings.TrimSpace(text)) {
			text = fbText
			pages = fbPages
		}
	}

	if len(strings.TrimSpace(text)) < pdfNearEmptyThreshold {
		warnings = append(warnings, "very little text extracted; PDF may be image-based or encrypted")
	}
	if pages < 1 {
		pages = 1
	}

	return ExtractionResult{
		Text:      text,
		PageCount: pages,
		Metadata:  map[string]any{"extractor": "pdf"},
		Warnings:  warnings,
		Success:   true,
	}
}

func extractPDFFitz(data []byte) (string, int, []string) {
	var warnings []string

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", 0, []string{fmt.Sprintf("fitz open failed: %v", err)}
	}
	defer doc.Close()

	pages := doc.NumPage()
	var sb strings.Builder
	for i := 0; i < pages; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("fitz failed on page %d: %v", i+1, err))
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), pages, warnings
}

func extractPDFFallback(data []byte) (string, int, []string) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, []string{fmt.Sprintf("fallback pdf open failed: %v", err)}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, []string{fmt.Sprintf("fallback pdf text failed: %v", err)}
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", 0, []string{fmt.Sprintf("fallback pdf read failed: %v", err)}
	}
	return sb.String(), reader.NumPage(), nil
}
