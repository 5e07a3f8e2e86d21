package fileio

import (
	"errors"
	"fmt"

	"github.com/tsawler/fileio/model"
)

// ErrInvalidArgument is the root of every caller error: an unsupported
// format tag, data of the wrong shape for its format, or data the codec
// cannot represent.
var ErrInvalidArgument = errors.New("fileio: invalid argument")

// FormatError reports a format tag that cannot be used for the operation.
type FormatError struct {
	Op  string // "export" or "import"
	Tag string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("fileio: %s: unsupported format: %s", e.Op, e.Tag)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidArgument
}

// ShapeError reports data whose shape does not match the requested format.
type ShapeError struct {
	Tag  string
	Want string        // shape the format requires
	Got  model.Payload // nil if no data was given
}

func (e *ShapeError) Error() string {
	got := "no data"
	if e.Got != nil {
		got = e.Got.Shape()
	}
	return fmt.Sprintf("fileio: data for %s must be %s, got %s", e.Tag, e.Want, got)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidArgument
}

// invalid marks a codec error as a caller error while keeping the cause
// reachable through errors.Is and errors.As.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
