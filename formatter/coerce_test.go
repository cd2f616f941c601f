package formatter

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	var nilPtr *int
	seven := "7"
	stamp := time.Date(2023, 10, 3, 10, 0, 0, 123e6, time.FixedZone("CEST", 2*60*60))

	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{"nil", nil, nil},
		{"nil pointer", nilPtr, nil},
		{"nil slice", []string(nil), nil},
		{"integer string", "42", 42.0},
		{"leading zeros", "007", 7.0},
		{"fraction string", "0.029", 0.029},
		{"trailing dot", "1.", "1."},
		{"signed string", "-3", "-3"},
		{"exponent string", "1e3", "1e3"},
		{"true", "true", true},
		{"false", "false", false},
		{"capitalized bool", "True", "True"},
		{"plain string", "Aerotech", "Aerotech"},
		{"empty string", "", ""},
		{"pointer to string", &seven, 7.0},
		{"time", stamp, "2023-10-03T08:00:00.123Z"},
		{"NaN", math.NaN(), nil},
		{"infinity", math.Inf(-1), nil},
		{"float32 infinity", float32(math.Inf(1)), nil},
		{"finite float", 1.5, 1.5},
		{"integer", 12, 12},
		{"bool", true, true},
		{"string slice", []string{"4", "x", "false"}, []any{4.0, "x", false}},
		{"nested slice", [][]float64{{1, math.NaN()}}, []any{[]any{1.0, nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Coerce(tt.input))
		})
	}
}

func TestCoerce_Objects(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			"fields keep order",
			Fields{{Name: "value", Value: "49.6"}, {Name: "unit", Value: "Ns"}, {Name: "approx", Value: "true"}},
			`{"value":49.6,"unit":"Ns","approx":true}`,
		},
		{
			"map keys sorted",
			map[string]any{"b": "2", "a": nil},
			`{"a":null,"b":2}`,
		},
		{
			"empty fields",
			Fields{},
			`{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			appendJSON(&b, Coerce(tt.input))
			require.Equal(t, tt.expected, b.String())
		})
	}
}
