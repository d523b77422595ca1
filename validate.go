package shapecheck

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/shapecheck/shapecheck/i18n"
)

// DefaultMaxDepth bounds recursion when ValidateOpt.MaxDepth is zero.
// Pathologically deep documents fail with a max_depth issue instead of
// exhausting the stack.
const DefaultMaxDepth = 256

// ValidateOpt bundles validation options.
type ValidateOpt struct {
	// FailFast stops at the first violation.
	FailFast bool
	// MaxDepth bounds recursion into nested containers. Zero selects
	// DefaultMaxDepth; a negative value disables the bound.
	MaxDepth int
}

// ValidateNode walks a document value against a single node. It returns nil
// on conformance, Issues on document violations, and *SchemaError when the
// tree is misconfigured (for example an uncompiled String node carrying an
// unparsable pattern). The walk never mutates the node tree or the document,
// so a compiled tree may serve concurrent calls.
func ValidateNode(n Node, doc any, opts ...ValidateOpt) error {
	if n == nil {
		return schemaErrf("", "nil node")
	}
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	maxDepth := opt.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	w := &walker{failFast: opt.FailFast, maxDepth: maxDepth}
	iss, err := w.walk(n, doc, "", 0)
	if err != nil {
		return err
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

type walker struct {
	failFast bool
	maxDepth int
}

// walk dispatches on the node variant with a single typed extraction per
// variant: the shape check is the extraction, so the constraint phase can
// never disagree with it.
func (w *walker) walk(n Node, v any, path string, depth int) (Issues, error) {
	if w.maxDepth > 0 && depth > w.maxDepth {
		return Issues{{
			Path:    normalizePath(path),
			Code:    CodeMaxDepth,
			Message: i18n.T(CodeMaxDepth, nil),
			Params:  map[string]any{"max": w.maxDepth},
		}}, nil
	}
	if v == nil {
		if n.mods().Nullable {
			return nil, nil
		}
		return Issues{w.invalidType(path, n, v)}, nil
	}

	switch t := n.(type) {
	case *Dict:
		obj, ok := v.(map[string]any)
		if !ok {
			return Issues{w.invalidType(path, n, v)}, nil
		}
		return w.walkDict(t, obj, path, depth)
	case *List:
		arr, ok := v.([]any)
		if !ok {
			return Issues{w.invalidType(path, n, v)}, nil
		}
		return w.walkList(t, arr, path, depth)
	case *String:
		s, ok := v.(string)
		if !ok {
			return Issues{w.invalidType(path, n, v)}, nil
		}
		return w.walkString(t, s, path)
	case *Literal:
		s, ok := v.(string)
		if !ok {
			return Issues{w.invalidType(path, n, v)}, nil
		}
		return w.walkLiteral(t, s, path), nil
	case *Boolean:
		if _, ok := v.(bool); !ok {
			return Issues{w.invalidType(path, n, v)}, nil
		}
		return nil, nil
	case *Number:
		f, ok := numberValue(v)
		if !ok {
			return Issues{w.invalidType(path, n, v)}, nil
		}
		return w.walkNumber(t, f, path), nil
	default:
		return nil, schemaErrf(path, "unsupported node type %T", n)
	}
}

func (w *walker) walkDict(d *Dict, obj map[string]any, path string, depth int) (Issues, error) {
	var iss Issues
	for _, k := range sortedKeys(obj) {
		child := resolveField(d, k)
		if child == nil {
			iss = AppendIssues(iss, Issue{
				Path:    joinPointer(path, k),
				Code:    CodeUnknownKey,
				Message: i18n.T(CodeUnknownKey, nil),
				Params:  map[string]any{"key": k},
			})
			if w.failFast {
				return iss, nil
			}
			continue
		}
		ci, err := w.walk(child, obj[k], joinPointer(path, k), depth+1)
		if err != nil {
			return nil, err
		}
		if len(ci) > 0 {
			iss = AppendIssues(iss, ci...)
			if w.failFast {
				return iss, nil
			}
		}
	}
	// Required-field pass: AnyFields entries are extension fields and are
	// never required.
	for _, k := range sortedKeys(d.Fields) {
		if _, present := obj[k]; present {
			continue
		}
		if d.Fields[k].mods().Optional {
			continue
		}
		iss = AppendIssues(iss, Issue{
			Path:    joinPointer(path, k),
			Code:    CodeRequired,
			Message: i18n.T(CodeRequired, nil),
			Params:  map[string]any{"key": k},
		})
		if w.failFast {
			return iss, nil
		}
	}
	return iss, nil
}

// resolveField looks a present key up through Fields, then AnyFields, then
// Others. A nil result marks the key as unknown.
func resolveField(d *Dict, key string) Node {
	if n, ok := d.Fields[key]; ok {
		return n
	}
	if n, ok := d.AnyFields[key]; ok {
		return n
	}
	return d.Others
}

func (w *walker) walkList(l *List, arr []any, path string, depth int) (Issues, error) {
	var iss Issues
	if l.Limit != nil && len(arr) > *l.Limit {
		iss = AppendIssues(iss, Issue{
			Path:    normalizePath(path),
			Code:    CodeTooLong,
			Message: i18n.T(CodeTooLong, nil),
			Hint:    "array exceeds limit",
			Params:  map[string]any{"limit": *l.Limit, "got": len(arr)},
		})
		if w.failFast {
			return iss, nil
		}
	}
	for i, el := range arr {
		ci, err := w.walk(l.Element, el, joinPointer(path, strconv.Itoa(i)), depth+1)
		if err != nil {
			return nil, err
		}
		if len(ci) > 0 {
			iss = AppendIssues(iss, ci...)
			if w.failFast {
				return iss, nil
			}
		}
	}
	return iss, nil
}

func (w *walker) walkString(n *String, s, path string) (Issues, error) {
	var iss Issues
	if n.Length != nil && utf8.RuneCountInString(s) > *n.Length {
		iss = AppendIssues(iss, Issue{
			Path:    normalizePath(path),
			Code:    CodeTooLong,
			Message: i18n.T(CodeTooLong, nil),
			Hint:    "string exceeds length",
			Params:  map[string]any{"length": *n.Length, "got": utf8.RuneCountInString(s)},
		})
		if w.failFast {
			return iss, nil
		}
	}
	if n.Pattern != nil {
		re := n.re
		if re == nil {
			// Uncompiled tree: compile transiently, without caching, so the
			// shared tree stays free of data races.
			var err error
			re, err = compilePattern(*n.Pattern)
			if err != nil {
				return nil, &SchemaError{Path: path, Err: fmt.Errorf("invalid regex %q: %w", *n.Pattern, err)}
			}
		}
		if !re.MatchString(s) {
			iss = AppendIssues(iss, Issue{
				Path:    normalizePath(path),
				Code:    CodePattern,
				Message: i18n.T(CodePattern, nil),
				Params:  map[string]any{"pattern": *n.Pattern},
			})
		}
	}
	return iss, nil
}

func (w *walker) walkLiteral(n *Literal, s, path string) Issues {
	for _, c := range n.Candidate {
		if s == c {
			return nil
		}
	}
	return Issues{{
		Path:    normalizePath(path),
		Code:    CodeInvalidEnum,
		Message: i18n.T(CodeInvalidEnum, nil),
		Params:  map[string]any{"got": s, "candidate": n.Candidate},
	}}
}

func (w *walker) walkNumber(n *Number, f float64, path string) Issues {
	var iss Issues
	if n.Min != nil && f < float64(*n.Min) {
		iss = AppendIssues(iss, Issue{
			Path:    normalizePath(path),
			Code:    CodeTooSmall,
			Message: i18n.T(CodeTooSmall, nil),
			Params:  map[string]any{"min": *n.Min, "got": f},
		})
		if w.failFast {
			return iss
		}
	}
	if n.Max != nil && f > float64(*n.Max) {
		iss = AppendIssues(iss, Issue{
			Path:    normalizePath(path),
			Code:    CodeTooBig,
			Message: i18n.T(CodeTooBig, nil),
			Params:  map[string]any{"max": *n.Max, "got": f},
		})
	}
	return iss
}

func (w *walker) invalidType(path string, n Node, v any) Issue {
	expected := expectedKind(n)
	return Issue{
		Path:    normalizePath(path),
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, nil),
		Hint:    "expected " + expected.String(),
		Params:  map[string]any{"expected": expected.String(), "got": KindOf(v).String()},
	}
}

// numberValue extracts a comparable numeric value. A json.Number whose text
// does not parse counts as a shape mismatch, not a bounds violation.
func numberValue(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}
