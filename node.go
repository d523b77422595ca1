package shapecheck

import (
	"encoding/json"
	"regexp"
)

// Node is one constraint unit in a schema tree. Exactly six variants
// implement it: *Dict, *List, *String, *Literal, *Boolean and *Number.
// The set is closed; the validator rejects anything else as a schema error.
type Node interface {
	// mods seals the interface and exposes the shared modifier flags.
	mods() Modifiers
}

// Modifiers carries the flags shared by every node variant. The zero value
// means required and non-nullable, matching the persisted-format defaults.
type Modifiers struct {
	// Optional permits the node's absence when it appears as a dict field.
	// It has no effect at the document root or on list elements.
	Optional bool
	// Nullable lets a JSON null satisfy the node regardless of variant.
	Nullable bool
}

func (m Modifiers) mods() Modifiers { return m }

// Dict describes a JSON object. Present keys resolve through Fields, then
// AnyFields, then Others; a key covered by none of them is an unknown_key
// violation. Declared Fields that are absent and not Optional are required
// violations.
type Dict struct {
	Modifiers
	Fields map[string]Node
	// AnyFields declares named extension fields: keys matched here are
	// validated against the mapped node but are never required.
	AnyFields map[string]Node
	// Others is the catch-all applied to keys covered by neither Fields
	// nor AnyFields.
	Others Node
}

// List describes a JSON array whose every element must satisfy Element.
type List struct {
	Modifiers
	Element Node
	Limit   *int // inclusive maximum length
}

// String describes a JSON string.
type String struct {
	Modifiers
	Length *int // inclusive maximum rune count, not bytes
	// Pattern must match the whole string; it is anchored at both ends
	// during Compile.
	Pattern *string

	re *regexp.Regexp // cached by Compile
}

// Literal describes a closed, case-sensitive string enumeration. An empty
// candidate set rejects every string.
type Literal struct {
	Modifiers
	Candidate []string
}

// Boolean describes a JSON boolean; any boolean value conforms.
type Boolean struct {
	Modifiers
}

// Number describes a JSON number with optional inclusive bounds.
type Number struct {
	Modifiers
	Min *int64
	Max *int64
}

// Kind classifies a document value into the JSON value model.
type Kind int

const (
	KindInvalid Kind = iota // outside the JSON value set
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf reports the JSON kind of a decoded document value. Numbers may
// arrive as json.Number (DecodeDocument), float64 (plain unmarshal) or any
// native Go numeric type (hand-built documents).
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

// expectedKind reports the document kind a variant accepts (before the
// nullable short-circuit).
func expectedKind(n Node) Kind {
	switch n.(type) {
	case *Dict:
		return KindObject
	case *List:
		return KindArray
	case *String, *Literal:
		return KindString
	case *Boolean:
		return KindBoolean
	case *Number:
		return KindNumber
	default:
		return KindInvalid
	}
}
