package fileio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tsawler/fileio/blob"
	"github.com/tsawler/fileio/csvdoc"
	"github.com/tsawler/fileio/format"
	"github.com/tsawler/fileio/internal/logging"
	"github.com/tsawler/fileio/jsondoc"
	"github.com/tsawler/fileio/model"
	"github.com/tsawler/fileio/pdfdoc"
	"github.com/tsawler/fileio/xlsx"
	"github.com/tsawler/fileio/xmldoc"
)

// Porter exports and imports files with a fixed configuration.
// Each configuration method returns a new Porter, so a Porter is safe for
// concurrent use and can be shared as a base for variations.
type Porter struct {
	options porterOptions
}

// New returns a Porter with the default configuration: confirmations to
// standard output, no logging, comma-separated CSV, 4-space XML indent,
// blob.DefaultRegistry and compressed PDF.
func New() *Porter {
	return &Porter{options: defaultOptions()}
}

// clone creates a copy of the Porter with its own options.
func (p *Porter) clone() *Porter {
	return &Porter{options: p.options.clone()}
}

// ============================================================================
// Configuration Methods (return new Porter instance)
// ============================================================================

// Output sets where confirmation lines go. A nil writer discards them.
func (p *Porter) Output(w io.Writer) *Porter {
	newP := p.clone()
	if w == nil {
		w = io.Discard
	}
	newP.options.output = w
	return newP
}

// Logger sets the structured logger. A nil logger disables logging.
func (p *Porter) Logger(l *slog.Logger) *Porter {
	newP := p.clone()
	if l == nil {
		l = logging.Nop()
	}
	newP.options.logger = l
	return newP
}

// Comma sets the CSV field delimiter.
func (p *Porter) Comma(r rune) *Porter {
	newP := p.clone()
	newP.options.comma = r
	return newP
}

// Indent sets the number of spaces per XML nesting level. A negative value
// writes XML without line breaks.
func (p *Porter) Indent(spaces int) *Porter {
	newP := p.clone()
	newP.options.indent = spaces
	return newP
}

// Registry sets the type registry for binary objects.
func (p *Porter) Registry(r *blob.Registry) *Porter {
	newP := p.clone()
	if r == nil {
		r = blob.DefaultRegistry
	}
	newP.options.registry = r
	return newP
}

// Compress enables or disables PDF stream compression.
func (p *Porter) Compress(on bool) *Porter {
	newP := p.clone()
	newP.options.compress = on
	return newP
}

// ============================================================================
// Operations
// ============================================================================

// ExportData writes data to path in the format named by tag.
// See the package-level ExportData.
func (p *Porter) ExportData(data model.Payload, path, tag string) error {
	f, err := format.Parse(tag)
	if err != nil {
		p.options.logger.Error("export rejected", "tag", tag, "path", path, "error", err)
		return &FormatError{Op: "export", Tag: tag}
	}
	if data == nil || data.Format() != f {
		err := &ShapeError{Tag: f.String(), Want: shapeOf(f), Got: data}
		p.options.logger.Error("export rejected", "format", f.String(), "path", path, "error", err)
		return err
	}
	return p.export(data, path)
}

// Export writes data to path in the format its shape belongs to.
func (p *Porter) Export(path string, data model.Payload) error {
	if data == nil {
		return &ShapeError{Tag: format.Unknown.String(), Want: "a payload", Got: nil}
	}
	return p.export(data, path)
}

func (p *Porter) export(data model.Payload, path string) error {
	f := data.Format()
	log := p.options.logger.With("format", f.String(), "path", path)

	var err error
	switch d := data.(type) {
	case model.Table:
		log = log.With("rows", d.RowCount())
		err = csvdoc.Export(d, path, csvdoc.WithComma(p.options.comma))
	case model.Document:
		log = log.With("keys", len(d))
		err = jsondoc.Export(d, path)
	case model.Elements:
		log = log.With("root", d.Root, "elements", len(d.Elements))
		err = xmldoc.Export(d, path, xmldoc.WithIndent(p.options.indent))
		if errors.Is(err, xmldoc.ErrInvalidName) {
			err = invalid(err)
		}
	case model.Sheet:
		log = log.With("sheet", d.Name, "rows", len(d.Rows))
		err = xlsx.Export(d, path)
	case model.Printable:
		err = pdfdoc.Export(d, path, pdfdoc.WithCompression(p.options.compress))
	case model.Object:
		log = log.With("type", fmt.Sprintf("%T", d.Value))
		err = blob.Export(d, path, blob.WithRegistry(p.options.registry))
		if errors.Is(err, blob.ErrNotSerializable) {
			err = invalid(err)
		}
	}

	if err != nil {
		log.Error("export failed", "error", err)
		return err
	}

	log.Debug("exported")
	fmt.Fprintln(p.options.output, confirmation(f, path))
	return nil
}

// ImportData reads path in the format named by tag.
// See the package-level ImportData.
func (p *Porter) ImportData(path, tag string) (any, error) {
	f, err := format.Parse(tag)
	if err != nil || f == format.PDF {
		p.options.logger.Error("import rejected", "tag", tag, "path", path)
		return nil, &FormatError{Op: "import", Tag: tag}
	}
	return p.importAs(path, f)
}

// ImportAuto reads path in the format detected from its extension, falling
// back to the file content. It also reports the format used.
func (p *Porter) ImportAuto(path string) (any, format.Format, error) {
	f := format.Detect(path)
	if f == format.Unknown {
		sniffed, err := sniff(path)
		if err != nil {
			p.options.logger.Error("import failed", "path", path, "error", err)
			return nil, format.Unknown, err
		}
		f = sniffed
	}
	if f == format.Unknown || f == format.PDF {
		p.options.logger.Error("import rejected", "format", f.String(), "path", path)
		return nil, f, &FormatError{Op: "import", Tag: f.String()}
	}

	data, err := p.importAs(path, f)
	return data, f, err
}

func (p *Porter) importAs(path string, f format.Format) (any, error) {
	log := p.options.logger.With("format", f.String(), "path", path)

	var (
		data any
		err  error
	)
	switch f {
	case format.CSV:
		var t model.Table
		t, err = csvdoc.Import(path, csvdoc.WithComma(p.options.comma))
		data = t
		log = log.With("rows", t.RowCount())
	case format.JSON:
		var d model.Document
		d, err = jsondoc.Import(path)
		data = d
		log = log.With("keys", len(d))
	case format.XML:
		data, err = xmldoc.Import(path)
	case format.Excel:
		var rows [][]model.Value
		rows, err = xlsx.Import(path)
		data = rows
		log = log.With("rows", len(rows))
	case format.Binary:
		data, err = blob.Import(path, blob.WithRegistry(p.options.registry))
	}

	if err != nil {
		log.Error("import failed", "error", err)
		return nil, err
	}

	log.Debug("imported")
	return data, nil
}

// sniff detects the format of the file at path from its content.
func sniff(path string) (format.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return format.Unknown, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, err
	}
	return format.DetectFromReader(file, info.Size())
}

// shapeOf describes the data shape format f accepts.
func shapeOf(f format.Format) string {
	switch f {
	case format.CSV:
		return model.Table(nil).Shape()
	case format.JSON:
		return model.Document(nil).Shape()
	case format.XML:
		return model.Elements{}.Shape()
	case format.Excel:
		return model.Sheet{}.Shape()
	case format.PDF:
		return model.Printable{}.Shape()
	case format.Binary:
		return model.Object{}.Shape()
	default:
		return "nothing"
	}
}

// confirmation is the line printed after a successful export.
func confirmation(f format.Format, path string) string {
	switch f {
	case format.Binary:
		return "Object exported successfully: " + path
	case format.Excel:
		return "Excel file exported successfully: " + path
	default:
		return fmt.Sprintf("%s file exported successfully: %s", strings.ToUpper(f.String()), path)
	}
}
