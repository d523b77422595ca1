package schemajson

import (
	json "github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck"
)

// Encode renders a schema back into the persisted format. The output decodes
// to an equivalent schema; modifier flags are always written so the result
// reads the same with or without knowledge of the defaults.
func Encode(s *shapecheck.Schema) ([]byte, error) {
	if s == nil || s.Root == nil {
		return nil, schemaErrf("", "missing root node")
	}
	root, err := encodeNode(s.Root, "/root")
	if err != nil {
		return nil, err
	}
	validators := s.Validators
	if validators == nil {
		validators = []string{}
	}
	return json.Marshal(map[string]any{
		"root":       root,
		"validators": validators,
	})
}

// EncodeNode renders a single node.
func EncodeNode(n shapecheck.Node) ([]byte, error) {
	obj, err := encodeNode(n, "")
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

func encodeNode(n shapecheck.Node, at string) (map[string]any, error) {
	switch t := n.(type) {
	case *shapecheck.Dict:
		fields := make(map[string]any, len(t.Fields))
		for k, child := range t.Fields {
			enc, err := encodeNode(child, at+"/fields/"+k)
			if err != nil {
				return nil, err
			}
			fields[k] = enc
		}
		obj := tagged("Dict", t.Optional, t.Nullable)
		obj["fields"] = fields
		if t.AnyFields != nil {
			anyFields := make(map[string]any, len(t.AnyFields))
			for k, child := range t.AnyFields {
				enc, err := encodeNode(child, at+"/any_fields/"+k)
				if err != nil {
					return nil, err
				}
				anyFields[k] = enc
			}
			obj["any_fields"] = anyFields
		}
		if t.Others != nil {
			enc, err := encodeNode(t.Others, at+"/others")
			if err != nil {
				return nil, err
			}
			obj["others"] = enc
		}
		return obj, nil
	case *shapecheck.List:
		if t.Element == nil {
			return nil, schemaErrf(at, "nil element_type")
		}
		elem, err := encodeNode(t.Element, at+"/element_type")
		if err != nil {
			return nil, err
		}
		obj := tagged("List", t.Optional, t.Nullable)
		obj["element_type"] = elem
		if t.Limit != nil {
			obj["limit"] = *t.Limit
		}
		return obj, nil
	case *shapecheck.String:
		obj := tagged("String", t.Optional, t.Nullable)
		if t.Length != nil {
			obj["length"] = *t.Length
		}
		if t.Pattern != nil {
			obj["regex"] = *t.Pattern
		}
		return obj, nil
	case *shapecheck.Literal:
		obj := tagged("Literal", t.Optional, t.Nullable)
		candidate := t.Candidate
		if candidate == nil {
			candidate = []string{}
		}
		obj["candidate"] = candidate
		return obj, nil
	case *shapecheck.Boolean:
		return tagged("Boolean", t.Optional, t.Nullable), nil
	case *shapecheck.Number:
		obj := tagged("Number", t.Optional, t.Nullable)
		if t.Min != nil {
			obj["min"] = *t.Min
		}
		if t.Max != nil {
			obj["max"] = *t.Max
		}
		return obj, nil
	default:
		return nil, schemaErrf(at, "unsupported node type %T", n)
	}
}

func tagged(typ string, optional, nullable bool) map[string]any {
	return map[string]any{
		"type":     typ,
		"optional": optional,
		"nullable": nullable,
	}
}
