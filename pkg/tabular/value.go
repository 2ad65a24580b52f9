package tabular

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindNumber
	KindString
)

// Value is a single cell value: a number, a string, or absent.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Absent is the zero Value.
var Absent = Value{}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Text returns the display form of the value. Absent values render as "".
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	}
	return ""
}

// Float reports the numeric interpretation of the value. Strings count as
// numeric when they parse as a float after trimming whitespace; the empty
// string and absent values are never numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// IsNumeric reports whether Float would succeed.
func (v Value) IsNumeric() bool {
	_, ok := v.Float()
	return ok
}

// Truthy mirrors a loose truthiness check: absent, zero and "" are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	}
	return false
}

// compareValues orders two values numerically when both are numeric and
// lexicographically by Text otherwise.
func compareValues(a, b Value) int {
	af, aok := a.Float()
	bf, bok := b.Float()
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Text(), b.Text())
}

func (v Value) String() string {
	return v.Text()
}

// MarshalJSON writes numbers as JSON numbers, strings as JSON strings and
// absent values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts any JSON scalar. Booleans are kept as their string
// form; nested objects and arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	parsed, err := valueFromToken(tok)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func valueFromToken(tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Absent, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Absent, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case float64:
		return Number(t), nil
	case string:
		return String(t), nil
	case bool:
		return String(strconv.FormatBool(t)), nil
	}
	return Absent, fmt.Errorf("unsupported cell value %v", tok)
}
