package extract

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// extractPlainText decodes text files through an encoding ladder: UTF-8,
// UTF-16 (BOM), Latin-1/CP1252, then lossy UTF-8 as the last resort.
func extractPlainText(data []byte) ExtractionResult {
	text, encodingName, warnings := decodeText(data)
	return ExtractionResult{
		Text:      text,
		PageCount: estimatePages(text),
		Metadata:  map[string]any{"extractor": "text", "encoding": encodingName},
		Warnings:  warnings,
		Success:   true,
	}
}

func decodeText(data []byte) (string, string, []string) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), "utf-8", nil
	}

	if hasUTF16BOM(data) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if decoded, err := dec.Bytes(data); err == nil {
			return string(decoded), "utf-16", nil
		}
	}

	// Bytes in the 0x80-0x9F range are C1 controls in Latin-1 but printable
	// punctuation in CP1252, so prefer CP1252 when they appear.
	cm := charmap.ISO8859_1
	name := "latin-1"
	for _, b := range data {
		if b >= 0x80 && b <= 0x9f {
			cm = charmap.Windows1252
			name = "cp1252"
			break
		}
	}
	if decoded, err := cm.NewDecoder().Bytes(data); err == nil {
		return string(decoded), name, nil
	}

	return strings.ToValidUTF8(string(data), ""), "utf-8-lossy",
		[]string{"text decoded lossily; some characters were dropped"}
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 &&
		((data[0] == 0xff && data[1] == 0xfe) || (data[0] == 0xfe && data[1] == 0xff))
}

// extractRTF strips RTF control words and groups down to plain text.
func extractRTF(data []byte) ExtractionResult {
	text, _, _ := decodeText(data)
	plain := stripRTF(text)
	return ExtractionResult{
		Text:      plain,
		PageCount: estimatePages(plain),
		Metadata:  map[string]any{"extractor": "rtf"},
		Success:   true,
	}
}

func stripRTF(src string) string {
	var out strings.Builder
	i := 0
	n := len(src)
	skipGroupDepth := 0
	depth := 0

	for i < n {
		c := src[i]
		switch c {
		case '{':
			depth++
			// Destination groups like {\fonttbl ...} contribute no text.
			if strings.HasPrefix(src[i:], "{\\*") ||
				hasAnyPrefix(src[i:], "{\\fonttbl", "{\\colortbl", "{\\stylesheet", "{\\info", "{\\pict") {
				if skipGroupDepth == 0 {
					skipGroupDepth = depth
				}
			}
			i++
		case '}':
			if skipGroupDepth != 0 && depth == skipGroupDepth {
				skipGroupDepth = 0
			}
			depth--
			i++
		case '\\':
			i++
			if i >= n {
				break
			}
			switch {
			case src[i] == '\'' && i+2 < n:
				if skipGroupDepth == 0 {
					if v, err := strconv.ParseUint(src[i+1:i+3], 16, 8); err == nil {
						out.WriteByte(byte(v))
					}
				}
				i += 3
			case src[i] == '\\' || src[i] == '{' || src[i] == '}':
				if skipGroupDepth == 0 {
					out.WriteByte(src[i])
				}
				i++
			default:
				word := i
				for i < n && isRTFLetter(src[i]) {
					i++
				}
				name := src[word:i]
				for i < n && (src[i] == '-' || (src[i] >= '0' && src[i] <= '9')) {
					i++
				}
				if i < n && src[i] == ' ' {
					i++
				}
				if skipGroupDepth == 0 {
					switch name {
					case "par", "line":
						out.WriteByte('\n')
					case "tab":
						out.WriteByte('\t')
					}
				}
			}
		case '\r', '\n':
			i++
		default:
			if skipGroupDepth == 0 {
				out.WriteByte(c)
			}
			i++
		}
	}

	return strings.TrimSpace(out.String())
}

func isRTFLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
