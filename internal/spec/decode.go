package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voletro/consilium/internal/structured"
)

// DecodeProposal parses raw model output as a provisional specification.
func DecodeProposal(raw string) (ProjectSpec, error) {
	var s ProjectSpec
	if err := decode(raw, ProposalSchema, &s); err != nil {
		return ProjectSpec{}, err
	}
	return s, nil
}

// DecodeConsensus parses raw model output as a candidate consensus
// specification. Callers still run Validate on the result; this only
// guarantees the shape.
func DecodeConsensus(raw string) (ProjectSpec, error) {
	var s ProjectSpec
	if err := decode(raw, ConsensusSchema, &s); err != nil {
		return ProjectSpec{}, err
	}
	return s, nil
}

// DecodeCritique parses raw model output as an auditor critique and enforces
// the distinct-weaknesses invariant. A critique short of distinct weaknesses
// is reported as a schema violation so the caller's repair path applies.
func DecodeCritique(raw string) (Critique, error) {
	var c Critique
	if err := decode(raw, CritiqueSchema, &c); err != nil {
		return Critique{}, err
	}
	if n := c.DistinctWeaknesses(); n < MinWeaknesses {
		return Critique{}, &structured.SchemaError{Violations: []string{
			fmt.Sprintf("critique must name at least %d distinct weaknesses, got %d", MinWeaknesses, n),
		}}
	}
	return c, nil
}

func decode(raw, schema string, v any) error {
	payload, err := structured.Parse(raw, schema)
	if err != nil {
		return err
	}
	coerced, err := coercePayload(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(coerced, v)
}

// coercePayload smooths over the shape quirks models produce: integer task
// ids, verification given as a list of steps, and nested objects where a
// string field is expected.
func coercePayload(payload json.RawMessage) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	if ap, ok := doc["architecture_proposal"]; ok {
		doc["architecture_proposal"] = asString(ap)
	}
	if rawTasks, ok := doc["tasks"].([]any); ok {
		for _, rt := range rawTasks {
			task, ok := rt.(map[string]any)
			if !ok {
				continue
			}
			if id, ok := task["id"]; ok {
				task["id"] = asString(id)
			}
			if tr, ok := task["technical_requirement"]; ok {
				task["technical_requirement"] = asString(tr)
			}
			if ver, ok := task["verification"].([]any); ok {
				steps := make([]string, 0, len(ver))
				for _, s := range ver {
					steps = append(steps, asString(s))
				}
				task["verification"] = strings.Join(steps, "; ")
			}
			if deps, ok := task["dependencies"].([]any); ok {
				ids := make([]any, 0, len(deps))
				for _, d := range deps {
					ids = append(ids, asString(d))
				}
				task["dependencies"] = ids
			}
		}
	}

	return json.Marshal(doc)
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
