package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExtractionResult is the outcome of turning document bytes into plain text.
// A failed extraction carries an empty Text and an ErrorMessage; it is a
// value, never a propagated error, so callers always receive a result.
type ExtractionResult struct {
	Text         string         `json:"text"`
	PageCount    int            `json:"page_count"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

func failure(msg string) ExtractionResult {
	return ExtractionResult{PageCount: 1, Success: false, ErrorMessage: msg}
}

type extractFunc func(data []byte) ExtractionResult

// Extractor dispatches to a format capability by file extension. The
// capability set is closed; construct once and reuse across parses.
type Extractor struct {
	byExtension map[string]extractFunc
}

// NewExtractor builds the extension dispatch table.
func NewExtractor() *Extractor {
	e := &Extractor{byExtension: make(map[string]extractFunc)}
	e.byExtension[".pdf"] = extractPDF
	e.byExtension[".docx"] = extractDOCX
	e.byExtension[".doc"] = extractDOC
	e.byExtension[".txt"] = extractPlainText
	e.byExtension[".text"] = extractPlainText
	e.byExtension[".md"] = extractPlainText
	e.byExtension[".rtf"] = extractRTF
	return e
}

// SupportedExtensions lists the extensions the dispatch table accepts.
func (e *Extractor) SupportedExtensions() []string {
	exts := make([]string, 0, len(e.byExtension))
	for ext := range e.byExtension {
		exts = append(exts, ext)
	}
	return exts
}

// Supports reports whether the filename's extension has a capability.
func (e *Extractor) Supports(filename string) bool {
	_, ok := e.byExtension[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ExtractFile reads and extracts a document from disk.
func (e *Extractor) ExtractFile(path string) ExtractionResult {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return failure(fmt.Sprintf("file not found: %s", path))
		}
		return failure(fmt.Sprintf("cannot stat file %s: %v", path, err))
	}
	if !info.Mode().IsRegular() {
		return failure(fmt.Sprintf("not a regular file: %s", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return failure(fmt.Sprintf("cannot read file %s: %v", path, err))
	}
	return e.ExtractBytes(data, path)
}

// ExtractBytes extracts a document held in memory. The filename is used
// only for extension sniffing.
func (e *Extractor) ExtractBytes(data []byte, filename string) ExtractionResult {
	ext := strings.ToLower(filepath.Ext(filename))
	fn, ok := e.byExtension[ext]
	if !ok {
		return failure(fmt.Sprintf("unsupported file extension: %q", ext))
	}

	result := safeExtract(fn, data)
	if result.Metadata == nil {
		result.Metadata = map[string]any{}
	}
	result.Metadata["extension"] = ext
	result.Metadata["size_bytes"] = len(data)
	return result
}

// safeExtract converts any capability panic into a failure result so that
// a corrupt document can never take down a batch.
func safeExtract(fn extractFunc, data []byte) (result ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(fmt.Sprintf("extraction error: %v", r))
		}
	}()
	return fn(data)
}

// estimatePages approximates page count for text-like formats.
func estimatePages(text string) int {
	pages := len(text) / 3000
	if pages < 1 {
		return 1
	}
	return pages
}
