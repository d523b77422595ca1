package shapecheck

import (
	"fmt"
	"regexp"
	"sort"
)

// SchemaError reports a schema-definition problem: a malformed node detected
// at construction time (Compile, the format loaders) or a misconfigured tree
// discovered mid-validation. It is deliberately distinct from Issues, which
// describe the document, never the schema.
type SchemaError struct {
	// Path locates the offending node inside the schema tree
	// (for example: /fields/user/element_type).
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %v at %s", e.Err, normalizePath(e.Path))
}

func (e *SchemaError) Unwrap() error { return e.Err }

func schemaErrf(path, format string, a ...any) *SchemaError {
	return &SchemaError{Path: path, Err: fmt.Errorf(format, a...)}
}

// Compile checks a node tree for schema-definition errors and caches the
// anchored regular expressions of String nodes. It must be called once before
// a hand-built tree is shared; trees produced by schemajson/schemayaml are
// compiled by their loaders. After Compile the tree is never mutated again.
func Compile(root Node) error {
	if root == nil {
		return schemaErrf("", "nil root node")
	}
	return compileNode(root, "")
}

func compileNode(n Node, at string) error {
	switch t := n.(type) {
	case *Dict:
		if err := compileFieldMap(t.Fields, joinPointer(at, "fields")); err != nil {
			return err
		}
		if err := compileFieldMap(t.AnyFields, joinPointer(at, "any_fields")); err != nil {
			return err
		}
		if t.Others != nil {
			return compileNode(t.Others, joinPointer(at, "others"))
		}
		return nil
	case *List:
		if t.Element == nil {
			return schemaErrf(at, "nil element_type")
		}
		if t.Limit != nil && *t.Limit < 0 {
			return schemaErrf(at, "negative limit %d", *t.Limit)
		}
		return compileNode(t.Element, joinPointer(at, "element_type"))
	case *String:
		if t.Length != nil && *t.Length < 0 {
			return schemaErrf(at, "negative length %d", *t.Length)
		}
		if t.Pattern != nil {
			re, err := compilePattern(*t.Pattern)
			if err != nil {
				return &SchemaError{Path: at, Err: fmt.Errorf("invalid regex %q: %w", *t.Pattern, err)}
			}
			t.re = re
		}
		return nil
	case *Literal:
		seen := make(map[string]struct{}, len(t.Candidate))
		for _, c := range t.Candidate {
			if _, dup := seen[c]; dup {
				return schemaErrf(at, "duplicate candidate %q", c)
			}
			seen[c] = struct{}{}
		}
		return nil
	case *Boolean:
		return nil
	case *Number:
		if t.Min != nil && t.Max != nil && *t.Min > *t.Max {
			return schemaErrf(at, "min %d greater than max %d", *t.Min, *t.Max)
		}
		return nil
	default:
		return schemaErrf(at, "unsupported node type %T", n)
	}
}

func compileFieldMap(fields map[string]Node, at string) error {
	for _, k := range sortedKeys(fields) {
		child := fields[k]
		if child == nil {
			return schemaErrf(joinPointer(at, k), "nil node")
		}
		if err := compileNode(child, joinPointer(at, k)); err != nil {
			return err
		}
	}
	return nil
}

// compilePattern anchors the pattern at both ends so a substring match never
// counts as conformance.
func compilePattern(p string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + p + ")$")
}

// sortedKeys returns map keys in ascending order for deterministic behavior.
func sortedKeys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
