// Package schemayaml loads the persisted schema format from YAML. Documents
// are normalized into the JSON value model and handed to schemajson, so both
// formats share one semantic path.
package schemayaml

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/shapecheck/shapecheck"
	"github.com/shapecheck/shapecheck/schemajson"
)

// Decode parses a YAML schema document ({root: ..., validators: [...]}) and
// returns a compiled schema.
func Decode(data []byte) (*shapecheck.Schema, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &shapecheck.SchemaError{Path: "", Err: err}
	}
	normalized, err := normalize(raw)
	if err != nil {
		return nil, &shapecheck.SchemaError{Path: "", Err: err}
	}
	buf, err := json.Marshal(normalized)
	if err != nil {
		return nil, &shapecheck.SchemaError{Path: "", Err: err}
	}
	return schemajson.Decode(buf)
}

// normalize rewrites yaml.v3 container types into the JSON value model.
// Non-string mapping keys are rejected: the schema format has none.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			nv, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string mapping key %v", k)
			}
			nv, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			nv, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}
