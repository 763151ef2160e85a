// Package extract converts uploaded file bytes into plain text.
// Only PDF and DOCX are supported; everything else is rejected before the
// ingestion pipeline runs.
package extract

import (
	"errors"
	"strings"
)

// ErrUnsupportedFormat is returned for any extension outside the accepted set.
var ErrUnsupportedFormat = errors.New("unsupported file format: only PDF and DOCX are supported")

// Extractor dispatches to a format-specific text extractor by file extension.
type Extractor struct{}

// New creates an extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supported reports whether the extension (with or without leading dot,
// any case) can be extracted.
func (e *Extractor) Supported(ext string) bool {
	switch normalizeExt(ext) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

// Extract converts file bytes into plain text based on the file extension.
// Returns ErrUnsupportedFormat for anything other than .pdf or .docx.
func (e *Extractor) Extract(data []byte, ext string) (string, error) {
	switch normalizeExt(ext) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	}
	return "", ErrUnsupportedFormat
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
