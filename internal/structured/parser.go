// Package structured turns free-form model replies into schema-validated JSON
// payloads. The debate orchestrator never inspects raw text itself: it either
// gets a validated payload or a classified failure from here.
package structured

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMalformedOutput marks raw text from which no JSON object could be
// recovered.
var ErrMalformedOutput = errors.New("malformed output: no JSON object found")

// SchemaError reports a structurally valid payload that does not satisfy the
// target schema.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "schema violation: " + strings.Join(e.Violations, "; ")
}

// IsSchemaError reports whether err is a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// Parse extracts a JSON object from raw and validates it against schema.
// It first attempts a strict decode of the whole text, then falls back to
// pulling the first balanced object out of surrounding prose or fences.
// Failure is ErrMalformedOutput when nothing decodes, or a *SchemaError when
// the payload does not match the schema.
func Parse(raw, schema string) (json.RawMessage, error) {
	payload := strings.TrimSpace(raw)
	if !json.Valid([]byte(payload)) {
		extracted, ok := Extract(payload)
		if !ok || !json.Valid([]byte(extracted)) {
			return nil, ErrMalformedOutput
		}
		payload = extracted
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(payload),
	)
	if err != nil {
		// The payload decoded but could not be loaded for validation.
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, schemaErr := range result.Errors() {
			violations = append(violations, schemaErr.String())
		}
		sort.Strings(violations)
		return nil, &SchemaError{Violations: violations}
	}

	return json.RawMessage(payload), nil
}
