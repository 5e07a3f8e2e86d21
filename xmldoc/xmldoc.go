// Package xmldoc reads and writes XML documents.
//
// Export renders a flat element set as a single root element with one child
// per name, in sorted order. Import returns the parsed element tree; it does
// not flatten the tree back into an element set.
package xmldoc

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"unicode"

	"github.com/beevik/etree"

	"github.com/tsawler/fileio/model"
)

// DefaultIndent is the number of spaces used per nesting level.
const DefaultIndent = 4

// ErrInvalidName is returned when a root or element name is not a valid
// XML name.
var ErrInvalidName = errors.New("xml: invalid element name")

// ParseError is returned when a file does not hold a well-formed XML document.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause == nil {
		return "xml: " + e.Path + ": no root element"
	}
	return "xml: " + e.Path + ": " + e.Cause.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Option configures writing.
type Option func(*options)

type options struct {
	indent int
}

// WithIndent sets the number of spaces per nesting level. A negative value
// disables indentation.
func WithIndent(spaces int) Option {
	return func(o *options) {
		o.indent = spaces
	}
}

// Build creates the document for an element set.
func Build(set model.Elements, opts ...Option) (*etree.Document, error) {
	o := options{indent: DefaultIndent}
	for _, opt := range opts {
		opt(&o)
	}

	if !validName(set.Root) {
		return nil, fmt.Errorf("%w: root %q", ErrInvalidName, set.Root)
	}

	names := make([]string, 0, len(set.Elements))
	for name := range set.Elements {
		if !validName(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="no"`)
	root := doc.CreateElement(set.Root)
	for _, name := range names {
		root.CreateElement(name).SetText(set.Elements[name])
	}

	if o.indent < 0 {
		doc.Indent(etree.NoIndent)
	} else {
		doc.Indent(o.indent)
	}

	return doc, nil
}

// Export writes set to path, replacing any existing file.
func Export(set model.Elements, path string, opts ...Option) error {
	doc, err := Build(set, opts...)
	if err != nil {
		return err
	}
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing XML file: %w", err)
	}
	return nil
}

// Import parses the XML document stored at path.
func Import(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		if isPathError(err) {
			return nil, fmt.Errorf("opening XML file: %w", err)
		}
		return nil, &ParseError{Path: path, Cause: err}
	}
	if doc.Root() == nil {
		return nil, &ParseError{Path: path}
	}
	return doc, nil
}

// validName reports whether s is usable as an element name: a letter or
// underscore followed by letters, digits, '-', '_' or '.'.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func isPathError(err error) bool {
	var perr *fs.PathError
	return errors.As(err, &perr)
}
