package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "x": {"type": "number"},
    "y": {"type": "number"}
  },
  "required": ["x", "y"]
}`

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			raw:  `{"x": 1}`,
			want: `{"x": 1}`,
			ok:   true,
		},
		{
			name: "object in prose",
			raw:  `Sure, here you go: {"x": 1, "y": 2} and that should be all.`,
			want: `{"x": 1, "y": 2}`,
			ok:   true,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"x\": 1}\n```",
			want: "{\"x\": 1}",
			ok:   true,
		},
		{
			name: "bare fence",
			raw:  "```\n{\"x\": 1}\n```",
			want: "{\"x\": 1}",
			ok:   true,
		},
		{
			name: "nested objects",
			raw:  `prefix {"a": {"b": {"c": 1}}} suffix {"d": 2}`,
			want: `{"a": {"b": {"c": 1}}}`,
			ok:   true,
		},
		{
			name: "braces inside strings",
			raw:  `{"msg": "use {curly} braces", "esc": "quote \" and brace }"}`,
			want: `{"msg": "use {curly} braces", "esc": "quote \" and brace }"}`,
			ok:   true,
		},
		{
			name: "no object",
			raw:  "there is nothing structured here",
		},
		{
			name: "unterminated object",
			raw:  `{"x": 1,`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Extract(tt.raw)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ValidPayload(t *testing.T) {
	t.Parallel()

	payload, err := Parse(`{"x": 1, "y": 2}`, pointSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 1, "y": 2}`, string(payload))
}

func TestParse_RecoversFromFencesAndProse(t *testing.T) {
	t.Parallel()

	raw := "Certainly! The coordinates are:\n```json\n{\"x\": 3, \"y\": 4}\n```\nAnything else?"
	payload, err := Parse(raw, pointSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 3, "y": 4}`, string(payload))
}

func TestParse_NoJSONIsMalformed(t *testing.T) {
	t.Parallel()

	_, err := Parse("no structure at all", pointSchema)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestParse_TruncatedJSONIsMalformed(t *testing.T) {
	t.Parallel()

	_, err := Parse(`{"x": 1, "y":`, pointSchema)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestParse_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := Parse(`{"x": "not a number"}`, pointSchema)
	require.Error(t, err)
	require.True(t, IsSchemaError(err))

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	// Both the wrong type and the missing field are reported at once.
	assert.Len(t, se.Violations, 2)
	assert.Contains(t, err.Error(), "schema violation")
}

func TestIsSchemaError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSchemaError(&SchemaError{Violations: []string{"v"}}))
	assert.False(t, IsSchemaError(ErrMalformedOutput))
	assert.False(t, IsSchemaError(nil))
}
