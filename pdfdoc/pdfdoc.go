// Package pdfdoc writes single-page printable PDF documents.
//
// A document has a centered bold title, a blank line and a body paragraph
// in a smaller regular font. The format is write-only; there is no import.
package pdfdoc

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/tsawler/fileio/model"
)

const (
	fontFamily    = "Helvetica"
	titleSize     = 16
	bodySize      = 12
	titleLeading  = 8
	bodyLeading   = 6
	creatorString = "fileio"
)

// Option configures rendering.
type Option func(*options)

type options struct {
	compress bool
}

// WithCompression enables or disables stream compression. Compression is
// on by default.
func WithCompression(on bool) Option {
	return func(o *options) {
		o.compress = on
	}
}

// Render writes doc as PDF to w.
func Render(doc model.Printable, w io.Writer, opts ...Option) error {
	o := options{compress: true}
	for _, opt := range opts {
		opt(&o)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(o.compress)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(creatorString, false)

	// Core fonts use a single-byte code page
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.MultiCell(0, titleLeading, tr(doc.Title), "", "C", false)
	pdf.Ln(bodyLeading)

	if doc.Content != "" {
		pdf.SetFont(fontFamily, "", bodySize)
		pdf.MultiCell(0, bodyLeading, tr(doc.Content), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}

// Export writes doc to path, replacing any existing file.
func Export(doc model.Printable, path string, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating PDF file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing PDF file: %w", cerr)
		}
	}()

	return Render(doc, f, opts...)
}
