// Package model provides the data shapes exchanged with the fileio codecs.
//
// Every shape that can be exported implements the [Payload] interface. The
// set of implementations is closed, so a Payload always pairs with exactly
// one format:
//
//   - [Table] - rows of text for CSV
//   - [Document] - a key-value mapping for JSON
//   - [Elements] - a root name and a flat name/text mapping for XML
//   - [Sheet] - a named sheet with headers and typed rows for workbooks
//   - [Printable] - a title and body for PDF
//   - [Object] - an opaque value for the binary object format
//
// # Cell Values
//
// Workbook cells carry a [Value]. Values written by a caller are one of
// [Text], [Int], [Real], [Bool] or [Date]. Values read back from a file are
// inferred from the file's own type information and may additionally be
// [Formula] or [Empty]; integers come back as [Real].
//
//	sheet := model.Sheet{
//	    Name:    "Employees",
//	    Headers: []string{"Name", "Age", "Hired"},
//	    Rows: [][]model.Value{
//	        {model.Text("Ada"), model.Int(36), model.Date(hired)},
//	    },
//	}
package model
