package tabular

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRows_PreservesKeyOrder(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader(`[{"z":1,"a":"x","m":null,"b":true}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, []string{"z", "a", "m", "b"}, row.Keys())
	assert.Equal(t, KindNumber, row.Get("z").Kind())
	assert.Equal(t, "x", row.Get("a").Text())
	assert.True(t, row.Has("m"))
	assert.True(t, row.Get("m").IsAbsent())
	assert.Equal(t, "true", row.Get("b").Text())
	assert.False(t, row.Has("missing"))
}

func TestDecodeRows_Errors(t *testing.T) {
	for name, input := range map[string]string{
		"not an array":   `{"a":1}`,
		"nested object":  `[{"a":{"b":1}}]`,
		"nested array":   `[{"a":[1]}]`,
		"row not object": `[1]`,
		"truncated":      `[{"a":1}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRows(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestDecodeRows_EmptyArray(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRow_JSONRoundTrip(t *testing.T) {
	row := NewRow("Name", "ICU", "Census", 12, "note", nil)
	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"ICU","Census":12,"note":null}`, string(out))
	assert.True(t, strings.HasPrefix(string(out), `{"Name"`))

	var back Row
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, row.Keys(), back.Keys())
}

func TestValue_Numeric(t *testing.T) {
	tests := []struct {
		v       Value
		numeric bool
		text    string
	}{
		{Number(12), true, "12"},
		{Number(2.5), true, "2.5"},
		{String(" 7 "), true, " 7 "},
		{String("1e3"), true, "1e3"},
		{String(""), false, ""},
		{String("ICU"), false, "ICU"},
		{Absent, false, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.numeric, tt.v.IsNumeric(), tt.text)
		assert.Equal(t, tt.text, tt.v.Text())
	}
}

func TestValue_Truthy(t *testing.T) {
	assert.True(t, Number(1).Truthy())
	assert.False(t, Number(0).Truthy())
	assert.True(t, String("0").Truthy())
	assert.False(t, String("").Truthy())
	assert.False(t, Absent.Truthy())
}
