package model

import (
	"strconv"
	"time"
)

// Kind identifies the type of a cell Value.
type Kind int

const (
	// KindEmpty indicates a cell without a value.
	KindEmpty Kind = iota
	// KindText indicates a string value.
	KindText
	// KindInt indicates an integer value.
	KindInt
	// KindReal indicates a floating point value.
	KindReal
	// KindBool indicates a boolean value.
	KindBool
	// KindDate indicates a date/time value.
	KindDate
	// KindFormula indicates a formula; the value is the formula text.
	KindFormula
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindReal:
		return "real"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindFormula:
		return "formula"
	default:
		return "unknown"
	}
}

// Value is a workbook cell value.
type Value interface {
	Kind() Kind
	// String returns the value as display text.
	String() string

	value()
}

// Text is a string cell.
type Text string

// Int is an integer cell.
type Int int64

// Real is a floating point cell.
type Real float64

// Bool is a boolean cell.
type Bool bool

// Date is a date/time cell.
type Date time.Time

// Formula is a formula cell holding the formula text without the leading '='.
type Formula string

// Empty is a cell without a value.
type Empty struct{}

func (Text) Kind() Kind    { return KindText }
func (Int) Kind() Kind     { return KindInt }
func (Real) Kind() Kind    { return KindReal }
func (Bool) Kind() Kind    { return KindBool }
func (Date) Kind() Kind    { return KindDate }
func (Formula) Kind() Kind { return KindFormula }
func (Empty) Kind() Kind   { return KindEmpty }

func (v Text) String() string    { return string(v) }
func (v Int) String() string     { return strconv.FormatInt(int64(v), 10) }
func (v Real) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Bool) String() string    { return strconv.FormatBool(bool(v)) }
func (v Date) String() string    { return time.Time(v).Format(time.RFC3339) }
func (v Formula) String() string { return string(v) }
func (Empty) String() string     { return "" }

func (Text) value()    {}
func (Int) value()     {}
func (Real) value()    {}
func (Bool) value()    {}
func (Date) value()    {}
func (Formula) value() {}
func (Empty) value()   {}

// Time returns the value as a time.Time.
func (v Date) Time() time.Time {
	return time.Time(v)
}

// Row builds a row of values from plain Go values. Strings, integers,
// floats, booleans and time.Time are converted to their Value; a Value is
// kept as is; anything else becomes Empty.
func Row(values ...any) []Value {
	row := make([]Value, len(values))
	for i, v := range values {
		row[i] = ValueOf(v)
	}
	return row
}

// ValueOf converts a plain Go value to a Value.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return Text(x)
	case int:
		return Int(x)
	case int32:
		return Int(x)
	case int64:
		return Int(x)
	case float32:
		return Real(x)
	case float64:
		return Real(x)
	case bool:
		return Bool(x)
	case time.Time:
		return Date(x)
	default:
		return Empty{}
	}
}
