// Package format provides format tags and file format detection for the
// fileio library.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Format represents a supported file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// CSV indicates comma-separated text.
	CSV
	// JSON indicates a JSON text document.
	JSON
	// XML indicates an XML document.
	XML
	// Excel indicates an Office Open XML workbook (.xlsx).
	Excel
	// PDF indicates a PDF document.
	PDF
	// Binary indicates a serialized object blob.
	Binary
)

// BlobMagic is the header written at the start of every binary object file.
var BlobMagic = []byte("FIOB\x01")

// String returns the format tag ("csv", "json", "xml", "excel", "pdf",
// "bin" or "unknown").
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case JSON:
		return "json"
	case XML:
		return "xml"
	case Excel:
		return "excel"
	case PDF:
		return "pdf"
	case Binary:
		return "bin"
	default:
		return "unknown"
	}
}

// Extension returns the canonical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case JSON:
		return ".json"
	case XML:
		return ".xml"
	case Excel:
		return ".xlsx"
	case PDF:
		return ".pdf"
	case Binary:
		return ".bin"
	default:
		return ""
	}
}

// Parse resolves a format tag. Tags are matched case-insensitively.
func Parse(tag string) (Format, error) {
	switch strings.ToLower(tag) {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "xml":
		return XML, nil
	case "excel":
		return Excel, nil
	case "pdf":
		return PDF, nil
	case "bin":
		return Binary, nil
	default:
		return Unknown, fmt.Errorf("unsupported format: %s", tag)
	}
}

// Detect determines the format from the text after the last '.' in path.
// A path without a '.' is looked up as a whole. Unrecognized extensions
// yield Unknown; Detect never fails.
func Detect(path string) Format {
	ext := strings.ToLower(path[strings.LastIndex(path, ".")+1:])
	switch ext {
	case "csv":
		return CSV
	case "json":
		return JSON
	case "xml":
		return XML
	case "xlsx", "xls":
		return Excel
	case "pdf":
		return PDF
	case "bin", "ser":
		return Binary
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format.
// ZIP archives and CSV text cannot be told apart from a prefix alone and
// yield Unknown.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}
	if bytes.HasPrefix(data, BlobMagic) {
		return Binary
	}

	// Skip a UTF-8 byte order mark and leading whitespace
	text := bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	text = bytes.TrimLeft(text, " \t\r\n")
	if len(text) == 0 {
		return Unknown
	}

	switch text[0] {
	case '<':
		return XML
	case '{', '[':
		return JSON
	}

	return Unknown
}

// DetectFromReader inspects the content to determine format. Unlike
// DetectFromMagic it can recognize workbooks by looking inside ZIP archives.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	// ZIP magic: PK\x03\x04
	if bytes.HasPrefix(magic, []byte{0x50, 0x4B, 0x03, 0x04}) {
		return detectZIPFormat(r, size)
	}

	return DetectFromMagic(magic), nil
}

// detectZIPFormat reports Excel for archives carrying a SpreadsheetML part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return Excel, nil
		}
	}

	return Unknown, nil
}
