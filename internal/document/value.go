package document

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is either a scalar (string or boolean) or a composite (a nested
// Map). The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	b    bool
	m    *Map
}

// String returns a scalar string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool returns a scalar boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Composite returns a Value wrapping m. A nil m is treated as an empty map.
func Composite(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsComposite reports whether v holds a nested Map.
func (v Value) IsComposite() bool {
	return v.kind == KindMap
}

// Str returns the string held by v. ok is false when v is not a string.
func (v Value) Str() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Boolean returns the boolean held by v. ok is false when v is not a bool.
func (v Value) Boolean() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Map returns the nested Map held by v, or nil when v is a scalar.
func (v Value) Map() *Map {
	if v.kind != KindMap {
		return nil
	}
	return v.m
}

// String renders v for human consumption.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindMap:
		return fmt.Sprintf("[%d entries]", v.m.Len())
	default:
		return v.str
	}
}

// Equal reports whether v and o hold the same variant and content.
// Composites compare entry by entry, in order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindMap:
		return v.m.Equal(o.m)
	default:
		return v.str == o.str
	}
}
