// Package fileio exports and imports data in CSV, JSON, XML, Excel, PDF and
// binary object files, and detects a file's format from its name or
// content.
//
// Basic usage:
//
//	err := fileio.ExportData(model.Table{{"name", "age"}, {"Ada", "36"}}, "people.csv", "csv")
//	if err != nil {
//	    // handle error
//	}
//
//	data, err := fileio.ImportData("people.csv", fileio.DetectFormat("people.csv"))
//
// Each data shape belongs to exactly one format, so Export can pick the
// format from the payload:
//
//	err := fileio.Export("report.pdf", model.Printable{Title: "Report", Content: "..."})
//
// With options:
//
//	p := fileio.New().
//	    Output(io.Discard).
//	    Comma(';').
//	    Logger(logger)
//	err := p.Export("people.csv", rows)
//
// The codec packages (csvdoc, jsondoc, xmldoc, xlsx, pdfdoc and blob) can
// also be used directly.
package fileio

import (
	"github.com/tsawler/fileio/format"
	"github.com/tsawler/fileio/model"
)

// std backs the package-level functions.
var std = New()

// ExportData writes data to path in the format named by tag ("csv", "json",
// "xml", "excel", "pdf" or "bin", in any case). An unsupported tag yields a
// *FormatError and data of the wrong shape a *ShapeError; both wrap
// ErrInvalidArgument. On success a confirmation line naming path is printed
// to standard output.
func ExportData(data model.Payload, path, tag string) error {
	return std.ExportData(data, path, tag)
}

// Export writes data to path in the format its shape belongs to.
func Export(path string, data model.Payload) error {
	return std.Export(path, data)
}

// ImportData reads path in the format named by tag. The result is a
// model.Table for csv, a model.Document for json, an *etree.Document for
// xml, a [][]model.Value for excel and the stored value for bin. PDF cannot
// be imported.
func ImportData(path, tag string) (any, error) {
	return std.ImportData(path, tag)
}

// ImportAuto reads path in the format detected from its extension, or
// from its content when the extension is not recognized.
func ImportAuto(path string) (any, format.Format, error) {
	return std.ImportAuto(path)
}

// DetectFormat returns the format tag for path's extension, or "unknown".
func DetectFormat(path string) string {
	return format.Detect(path).String()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	rows := fileio.Must(fileio.ImportData("people.csv", "csv")).(model.Table)
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
