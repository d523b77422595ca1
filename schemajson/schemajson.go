// Package schemajson reads and writes the persisted schema format: one JSON
// object per node, tagged by a "type" discriminant, with variant fields
// sibling to it. Malformed input is rejected with a *shapecheck.SchemaError
// naming the offending node path; it never surfaces as a document verdict.
package schemajson

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck"
)

// Decode parses a persisted schema document of the form
//
//	{"root": <node>, "validators": ["id", ...]}
//
// and returns a compiled, ready-to-share schema.
func Decode(data []byte) (*shapecheck.Schema, error) {
	var raw struct {
		Root       json.RawMessage `json:"root"`
		Validators []string        `json:"validators"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &shapecheck.SchemaError{Path: "", Err: err}
	}
	if len(raw.Root) == 0 || string(raw.Root) == "null" {
		return nil, schemaErrf("", "missing root node")
	}
	root, err := decodeNode(raw.Root, "/root")
	if err != nil {
		return nil, err
	}
	if err := compileAt(root, "/root"); err != nil {
		return nil, err
	}
	return &shapecheck.Schema{Root: root, Validators: raw.Validators}, nil
}

// DecodeNode parses and compiles a single tagged node.
func DecodeNode(data []byte) (shapecheck.Node, error) {
	n, err := decodeNode(data, "")
	if err != nil {
		return nil, err
	}
	if err := shapecheck.Compile(n); err != nil {
		return nil, err
	}
	return n, nil
}

func schemaErrf(path, format string, a ...any) *shapecheck.SchemaError {
	return &shapecheck.SchemaError{Path: path, Err: fmt.Errorf(format, a...)}
}

// compileAt compiles a node and rebases any error path onto the node's
// position in the persisted document.
func compileAt(n shapecheck.Node, at string) error {
	err := shapecheck.Compile(n)
	if err == nil {
		return nil
	}
	var serr *shapecheck.SchemaError
	if errors.As(err, &serr) {
		return &shapecheck.SchemaError{Path: at + serr.Path, Err: serr.Err}
	}
	return err
}

func mods(optional, nullable bool) shapecheck.Modifiers {
	return shapecheck.Modifiers{Optional: optional, Nullable: nullable}
}

func decodeNode(data []byte, at string) (shapecheck.Node, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, &shapecheck.SchemaError{Path: at, Err: err}
	}
	switch tag.Type {
	case "Dict":
		return decodeDict(data, at)
	case "List":
		return decodeList(data, at)
	case "String":
		return decodeString(data, at)
	case "Literal":
		return decodeLiteral(data, at)
	case "Boolean":
		var body struct {
			Optional bool `json:"optional"`
			Nullable bool `json:"nullable"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, &shapecheck.SchemaError{Path: at, Err: err}
		}
		return &shapecheck.Boolean{Modifiers: mods(body.Optional, body.Nullable)}, nil
	case "Number":
		var body struct {
			Optional bool   `json:"optional"`
			Nullable bool   `json:"nullable"`
			Min      *int64 `json:"min"`
			Max      *int64 `json:"max"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, &shapecheck.SchemaError{Path: at, Err: err}
		}
		return &shapecheck.Number{Modifiers: mods(body.Optional, body.Nullable), Min: body.Min, Max: body.Max}, nil
	case "":
		return nil, schemaErrf(at, "missing type discriminant")
	default:
		return nil, schemaErrf(at, "unknown type %q", tag.Type)
	}
}

func decodeDict(data []byte, at string) (shapecheck.Node, error) {
	var body struct {
		Optional  bool                       `json:"optional"`
		Nullable  bool                       `json:"nullable"`
		Fields    map[string]json.RawMessage `json:"fields"`
		AnyFields map[string]json.RawMessage `json:"any_fields"`
		Others    json.RawMessage            `json:"others"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, &shapecheck.SchemaError{Path: at, Err: err}
	}
	if body.Fields == nil {
		return nil, schemaErrf(at, "missing fields")
	}
	d := &shapecheck.Dict{
		Modifiers: mods(body.Optional, body.Nullable),
		Fields:    make(map[string]shapecheck.Node, len(body.Fields)),
	}
	for k, rawChild := range body.Fields {
		child, err := decodeNode(rawChild, at+"/fields/"+k)
		if err != nil {
			return nil, err
		}
		d.Fields[k] = child
	}
	if body.AnyFields != nil {
		d.AnyFields = make(map[string]shapecheck.Node, len(body.AnyFields))
		for k, rawChild := range body.AnyFields {
			child, err := decodeNode(rawChild, at+"/any_fields/"+k)
			if err != nil {
				return nil, err
			}
			d.AnyFields[k] = child
		}
	}
	if len(body.Others) > 0 && string(body.Others) != "null" {
		others, err := decodeNode(body.Others, at+"/others")
		if err != nil {
			return nil, err
		}
		d.Others = others
	}
	return d, nil
}

func decodeList(data []byte, at string) (shapecheck.Node, error) {
	var body struct {
		Optional    bool            `json:"optional"`
		Nullable    bool            `json:"nullable"`
		ElementType json.RawMessage `json:"element_type"`
		Limit       *int            `json:"limit"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, &shapecheck.SchemaError{Path: at, Err: err}
	}
	if len(body.ElementType) == 0 || string(body.ElementType) == "null" {
		return nil, schemaErrf(at, "missing element_type")
	}
	elem, err := decodeNode(body.ElementType, at+"/element_type")
	if err != nil {
		return nil, err
	}
	return &shapecheck.List{Modifiers: mods(body.Optional, body.Nullable), Element: elem, Limit: body.Limit}, nil
}

func decodeString(data []byte, at string) (shapecheck.Node, error) {
	var body struct {
		Optional bool    `json:"optional"`
		Nullable bool    `json:"nullable"`
		Length   *int    `json:"length"`
		Regex    *string `json:"regex"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, &shapecheck.SchemaError{Path: at, Err: err}
	}
	return &shapecheck.String{Modifiers: mods(body.Optional, body.Nullable), Length: body.Length, Pattern: body.Regex}, nil
}

func decodeLiteral(data []byte, at string) (shapecheck.Node, error) {
	var body struct {
		Optional  bool     `json:"optional"`
		Nullable  bool     `json:"nullable"`
		Candidate []string `json:"candidate"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, &shapecheck.SchemaError{Path: at, Err: err}
	}
	if body.Candidate == nil {
		return nil, schemaErrf(at, "missing candidate")
	}
	return &shapecheck.Literal{Modifiers: mods(body.Optional, body.Nullable), Candidate: body.Candidate}, nil
}
