package model

import "github.com/tsawler/fileio/format"

// Payload is data ready to be exported. Each implementation pairs with one
// format.
type Payload interface {
	// Format returns the format this payload is written as.
	Format() format.Format
	// Shape describes the payload's shape for error messages.
	Shape() string

	payload()
}

// Table is a tabular record set: an ordered sequence of rows of text.
type Table [][]string

func (Table) Format() format.Format { return format.CSV }
func (Table) Shape() string         { return "a table of text rows" }
func (Table) payload()              {}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t)
}

// Document is a key-value document. Values are scalars, []any or nested
// map[string]any.
type Document map[string]any

func (Document) Format() format.Format { return format.JSON }
func (Document) Shape() string         { return "a key-value document" }
func (Document) payload()              {}

// Elements is a flat element set rendered under a single root element.
type Elements struct {
	Root     string
	Elements map[string]string
}

func (Elements) Format() format.Format { return format.XML }
func (Elements) Shape() string         { return "a root element name with a flat element set" }
func (Elements) payload()              {}

// Sheet is a named worksheet with a header row and typed data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]Value
}

func (Sheet) Format() format.Format { return format.Excel }
func (Sheet) Shape() string         { return "a sheet name with headers and rows" }
func (Sheet) payload()              {}

// Printable is the title and body of a single printable page.
type Printable struct {
	Title   string
	Content string
}

func (Printable) Format() format.Format { return format.PDF }
func (Printable) Shape() string         { return "a title and content" }
func (Printable) payload()              {}

// Object wraps an opaque value for the binary object format.
type Object struct {
	Value any
}

func (Object) Format() format.Format { return format.Binary }
func (Object) Shape() string         { return "a serializable object" }
func (Object) payload()              {}
