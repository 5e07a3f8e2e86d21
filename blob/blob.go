// Package blob reads and writes arbitrary Go values as self-describing
// binary files.
//
// A file is the format.BlobMagic header followed by a msgpack envelope
// holding the registered type name and the encoded value. Reading decodes
// the payload into a fresh value of the type the name resolves to.
//
// A value comes back with the registered type it was written with. Inside
// []any and map[string]any, msgpack keeps no Go width: signed integers read
// back as int64, unsigned ones as uint64 and floats as float64. Times read
// back in UTC, at top level and inside those containers.
package blob

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tsawler/fileio/format"
	"github.com/tsawler/fileio/model"
)

// nilName tags a nil value. It cannot be registered.
const nilName = "nil"

var (
	// ErrNotSerializable is returned when a value's type is not registered
	// or the value cannot be encoded.
	ErrNotSerializable = errors.New("blob: value is not serializable")

	// ErrUnresolvedType is wrapped by UnresolvedTypeError.
	ErrUnresolvedType = errors.New("blob: unresolved type")

	// ErrNotBlob is returned when a file does not start with the blob header.
	ErrNotBlob = errors.New("blob: not a blob file")
)

// UnresolvedTypeError reports a type name the reading registry does not know.
type UnresolvedTypeError struct {
	Name string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("blob: unresolved type %q", e.Name)
}

func (e *UnresolvedTypeError) Unwrap() error {
	return ErrUnresolvedType
}

type envelope struct {
	Type    string             `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// Option configures encoding and decoding.
type Option func(*options)

type options struct {
	registry *Registry
}

// WithRegistry selects the type registry. The default is DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{registry: DefaultRegistry}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Encode writes v to w.
func Encode(w io.Writer, v any, opts ...Option) error {
	o := buildOptions(opts)

	env := envelope{Type: nilName}
	if v != nil {
		name, ok := o.registry.nameOf(reflect.TypeOf(v))
		if !ok {
			return fmt.Errorf("%w: type %T is not registered", ErrNotSerializable, v)
		}
		payload, err := msgpack.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotSerializable, err)
		}
		env.Type = name
		env.Payload = payload
	}

	if _, err := w.Write(format.BlobMagic); err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(&env)
}

// Decode reads a value from r.
func Decode(r io.Reader, opts ...Option) (any, error) {
	o := buildOptions(opts)

	magic := make([]byte, len(format.BlobMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrNotBlob
		}
		return nil, err
	}
	if !bytes.Equal(magic, format.BlobMagic) {
		return nil, ErrNotBlob
	}

	var env envelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding blob envelope: %w", err)
	}
	if env.Type == nilName {
		return nil, nil
	}

	t, ok := o.registry.typeOf(env.Type)
	if !ok {
		return nil, &UnresolvedTypeError{Name: env.Type}
	}

	dec := msgpack.NewDecoder(bytes.NewReader(env.Payload))
	// Dynamic values get int64/uint64/float64 instead of the narrowest type.
	dec.UseLooseInterfaceDecoding(true)

	rv := reflect.New(t)
	if err := dec.Decode(rv.Interface()); err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", env.Type, err)
	}
	return inUTC(rv.Elem().Interface()), nil
}

// inUTC moves decoded times, which msgpack returns in time.Local, to UTC.
// Lists and maps are updated in place.
func inUTC(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.UTC()
	case []any:
		for i, el := range x {
			x[i] = inUTC(el)
		}
	case map[string]any:
		for k, el := range x {
			x[k] = inUTC(el)
		}
	}
	return v
}

// Export writes obj.Value to path, replacing any existing file. Nothing is
// created when the value is not serializable.
func Export(obj model.Object, path string, opts ...Option) (err error) {
	var buf bytes.Buffer
	if err := Encode(&buf, obj.Value, opts...); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating blob file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing blob file: %w", cerr)
		}
	}()

	_, err = buf.WriteTo(f)
	return err
}

// Import reads the value stored at path.
func Import(path string, opts ...Option) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening blob file: %w", err)
	}
	defer f.Close()

	return Decode(bufio.NewReader(f), opts...)
}
