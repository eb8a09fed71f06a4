package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// extractDOCX reads word/document.xml out of the zip container and renders
// paragraphs as lines and tables as pipe-joined rows.
func extractDOCX(data []byte) ExtractionResult {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return failure(fmt.Sprintf("not a valid docx container: %v", err))
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return failure(fmt.Sprintf("cannot open document.xml: %v", err))
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return failure(fmt.Sprintf("cannot read document.xml: %v", err))
			}
			break
		}
	}
	if docXML == nil {
		return failure("docx container has no word/document.xml")
	}

	text, err := renderDocumentXML(docXML)
	if err != nil {
		return failure(fmt.Sprintf("cannot parse document.xml: %v", err))
	}

	return ExtractionResult{
		Text:      text,
		PageCount: estimatePages(text),
		Metadata:  map[string]any{"extractor": "docx"},
		Success:   true,
	}
}

func renderDocumentXML(docXML []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))

	var out []string
	var paragraph strings.Builder
	var cell strings.Builder
	var rowCells []string
	var tableRows []string
	tableDepth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					rowCells = rowCells[:0]
				}
			case "tc":
				if tableDepth > 0 {
					cell.Reset()
				}
			}
		case xml.CharData:
			if tableDepth > 0 {
				cell.Write(t)
			} else {
				paragraph.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if tableDepth > 0 {
					// Paragraph breaks inside a cell become spaces.
					cell.WriteString(" ")
				} else {
					line := strings.TrimSpace(paragraph.String())
					paragraph.Reset()
					if line != "" {
						out = append(out, line)
					}
				}
			case "tc":
				if tableDepth > 0 {
					rowCells = append(rowCells, strings.TrimSpace(cell.String()))
					cell.Reset()
				}
			case "tr":
				if tableDepth > 0 && len(rowCells) > 0 {
					tableRows = append(tableRows, strings.Join(rowCells, " | "))
					rowCells = nil
				}
			case "tbl":
				tableDepth--
				if tableDepth == 0 && len(tableRows) > 0 {
					out = append(out, "")
					out = append(out, tableRows...)
					out = append(out, "")
					tableRows = nil
				}
			}
		}
	}

	return strings.Join(out, "\n"), nil
}

// extractDOC scrapes readable text out of the legacy binary format. The
// result is best effort and always carries a warning.
func extractDOC(data []byte) ExtractionResult {
	var runs []string
	var current strings.Builder
	hasLetter := false

	flush := func() {
		if current.Len() >= 4 && hasLetter {
			runs = append(runs, strings.TrimSpace(current.String()))
		}
		current.Reset()
		hasLetter = false
	}

	for _, b := range data {
		switch {
		case b >= 0x20 && b <= 0x7e:
			current.WriteByte(b)
			if unicode.IsLetter(rune(b)) {
				hasLetter = true
			}
		case b == '\r' || b == '\n' || b == '\t':
			flush()
		default:
			flush()
		}
	}
	flush()

	text := strings.Join(runs, "\n")
	return ExtractionResult{
		Text:      text,
		PageCount: estimatePages(text),
		Metadata:  map[string]any{"extractor": "doc-scrape"},
		Warnings:  []string{"legacy .doc extracted via byte scrape; results may be incomplete"},
		Success:   true,
	}
}
