// Package jsondoc reads and writes JSON object documents.
//
// Documents are written as compact JSON text with keys in sorted order.
// Reading parses a top-level object into a map[string]any in which integers
// are int64, decimals float64, arrays []any and objects map[string]any.
package jsondoc

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/tsawler/fileio/model"
)

// ParseError is returned when a file does not hold a well-formed JSON object.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := "json: " + e.Path + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Export writes doc to path as JSON text, replacing any existing file.
func Export(doc model.Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing JSON file: %w", err)
	}
	return nil
}

// Marshal encodes doc as compact JSON with sorted keys.
func Marshal(doc model.Document) ([]byte, error) {
	if doc == nil {
		doc = model.Document{}
	}
	opts := ojg.DefaultOptions
	opts.Sort = true
	data, err := oj.Marshal(map[string]any(doc), &opts)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return data, nil
}

// Import parses the JSON object stored at path.
func Import(path string) (model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening JSON file: %w", err)
	}
	defer f.Close()

	data, err := oj.Load(f)
	if err != nil {
		return nil, &ParseError{Path: path, Message: "malformed JSON", Cause: err}
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("top-level value is %s, not an object", describe(data))}
	}

	return obj, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
