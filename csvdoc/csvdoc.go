// Package csvdoc reads and writes comma-separated text files.
//
// Fields that contain the delimiter, a double quote, a line break or a
// leading space are wrapped in double quotes, with embedded quotes doubled.
// Rows may differ in width. A row holding a single empty field is written
// as "" so it is not mistaken for a blank line. A row with no fields has no
// text form; it is written the same way and reads back as one empty field.
// Otherwise reading reverses writing exactly for printable text:
//
//	err := csvdoc.Export(model.Table{{"name", "age"}, {"Ada", "36"}}, "people.csv")
//	rows, err := csvdoc.Import("people.csv")
package csvdoc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/fileio/model"
)

const (
	bom        = "\uFEFF"
	emptyField = `""` + "\n"
)

// Option configures reading and writing.
type Option func(*options)

type options struct {
	comma rune
}

func defaultOptions() options {
	return options{comma: ','}
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.comma = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Export writes rows to path, replacing any existing file.
func Export(rows model.Table, path string, opts ...Option) (err error) {
	o := buildOptions(opts)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing CSV file: %w", cerr)
		}
	}()

	if err := writeRows(f, rows, o.comma); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	return nil
}

func writeRows(out io.Writer, rows model.Table, comma rune) error {
	// Import drops one leading BOM, so a first field starting with one
	// needs another in front of it.
	if len(rows) > 0 && len(rows[0]) > 0 && strings.HasPrefix(rows[0][0], bom) {
		if _, err := io.WriteString(out, bom); err != nil {
			return err
		}
	}

	w := csv.NewWriter(out)
	w.Comma = comma
	for _, row := range rows {
		if len(row) > 1 || (len(row) == 1 && row[0] != "") {
			if err := w.Write(row); err != nil {
				return err
			}
			continue
		}

		// csv.Writer renders this row as a blank line, which readers skip.
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		if _, err := io.WriteString(out, emptyField); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Import reads all rows from path. A leading UTF-8 byte order mark is
// always dropped, so a file written elsewhere with a BOM reads the same as
// one without. Export adds a second mark when the first field itself starts
// with U+FEFF. An empty file yields an empty table.
func Import(path string, opts ...Option) (model.Table, error) {
	o := buildOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	// BOMOverride strips a UTF-8 BOM and passes everything else through.
	src := transform.NewReader(f, unicode.BOMOverride(transform.Nop))

	r := csv.NewReader(src)
	r.Comma = o.comma
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if rows == nil {
		rows = [][]string{}
	}

	return rows, nil
}
