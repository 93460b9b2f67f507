package core

import (
	"encoding/json"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// DateLayout is the canonical text form of date cells.
const DateLayout = "2006-01-02"

// Value is a single cell: empty, string, number, boolean or date.
// The zero Value is empty.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	t    time.Time
}

// Empty returns the empty Value.
func Empty() Value { return Value{} }

// Text wraps a string. An empty string yields the empty Value.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindString, s: s}
}

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date wraps a time, truncated to the calendar day in its own location.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v holds no data.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Float returns the numeric value, if v is a number.
func (v Value) Float() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// Time returns the date value, if v is a date.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindDate
}

// Boolean returns the boolean value, if v is a bool.
func (v Value) Boolean() (bool, bool) {
	return v.b, v.kind == KindBool
}

// String renders v the way filters and stores see it:
// numbers in shortest decimal form, booleans as true/false,
// dates as YYYY-MM-DD and empty values as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.t.Format(DateLayout)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return v.s == o.s && v.n == o.n && v.b == o.b
	}
}

// MarshalJSON encodes v as its natural JSON type.
// Dates are encoded as YYYY-MM-DD strings and empty values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindNumber:
		return json.Marshal(v.n)
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(v.t.Format(DateLayout))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes numbers, booleans and strings. Strings are kept as
// text; use ParseCell to coerce them to a column type.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Empty()
	case string:
		*v = Text(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	default:
		*v = Text(string(data))
	}
	return nil
}
