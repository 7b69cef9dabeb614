package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the concrete type carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

// Value is a tagged field-update value. Partial updates arrive as loosely
// typed JSON; decoding tags each value with its concrete kind so the
// persistence layer binds a properly typed argument instead of an untyped
// interface blob.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	b    bool
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps an integer value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float wraps a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time wraps a timestamp value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind reports which concrete type the value carries.
func (v Value) Kind() Kind { return v.kind }

// Arg returns the value in a form suitable for binding as a SQL argument.
func (v Value) Arg() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// UnmarshalJSON decodes a raw JSON value into a tagged Value. Numbers without
// a fractional part become KindInt, everything else numeric becomes KindFloat.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch {
	case s == "null":
		*v = Null()
		return nil
	case s == "true":
		*v = Bool(true)
		return nil
	case s == "false":
		*v = Bool(false)
		return nil
	case len(s) > 0 && s[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = String(str)
		return nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		*v = Int(i)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("unsupported field value %s", s)
	}
	*v = Float(f)
	return nil
}

// MarshalJSON encodes the tagged value back to plain JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Arg())
}

// Fields is a partial-update instruction set: field name to new value.
// A valid set is non-empty; whether each name maps to a real mutable
// attribute is decided by the persistence layer.
type Fields map[string]Value
