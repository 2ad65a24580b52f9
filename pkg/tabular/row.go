package tabular

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// StyleKey is the row key whose value overrides the row's CSS class.
const StyleKey = "_Style"

// Row maps column names to values, remembering the order in which the
// columns first appeared.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow builds a row from alternating key/value pairs.
func NewRow(pairs ...interface{}) Row {
	r := Row{}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("tabular: NewRow key %v is not a string", pairs[i]))
		}
		r.Set(key, toValue(pairs[i+1]))
	}
	return r
}

func toValue(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Absent
	case Value:
		return t
	case string:
		return String(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	}
	return String(fmt.Sprintf("%v", v))
}

// Set stores v under key, appending key to the column order if new.
func (r *Row) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value under key, or Absent. An empty key is always absent
// so unset option columns never match anything.
func (r Row) Get(key string) Value {
	if key == "" || r.values == nil {
		return Absent
	}
	return r.values[key]
}

// Has reports whether key was present in the source object.
func (r Row) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the column names in source order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Len() int { return len(r.keys) }

// MarshalJSON writes the row as an object with keys in source order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object, preserving key order.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	row, err := decodeRow(dec)
	if err != nil {
		return err
	}
	*r = row
	return nil
}

func decodeRow(dec *json.Decoder) (Row, error) {
	var row Row
	tok, err := dec.Token()
	if err != nil {
		return row, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return row, fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return row, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return row, fmt.Errorf("expected object key, got %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return row, err
		}
		if d, ok := valTok.(json.Delim); ok {
			return row, fmt.Errorf("column %q: nested %v values are not supported", key, d)
		}
		v, err := valueFromToken(valTok)
		if err != nil {
			return row, fmt.Errorf("column %q: %w", key, err)
		}
		row.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return row, err
	}
	if row.values == nil {
		row.values = make(map[string]Value)
	}
	return row, nil
}

// DecodeRows reads a JSON array of flat objects.
func DecodeRows(r io.Reader) ([]Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("decode rows: expected array, got %v", tok)
	}
	rows := []Row{}
	for dec.More() {
		row, err := decodeRow(dec)
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}
