package diff

import (
	"strconv"
	"strings"

	"github.com/capdb/capdiff/internal/document"
)

// Asymmetric returns what a has that b lacks or contradicts. Keys only
// present in b are ignored; call Asymmetric(b, a) for the other direction.
//
// The result keeps a's iteration order. Composite values are compared
// recursively at any depth and only non-empty sub-results are kept. Scalars
// are compared with LooseEqual, and a's value is the one recorded.
func Asymmetric(a, b *document.Map) *document.Map {
	diffs := document.NewMap()

	for _, key := range a.Keys() {
		left, _ := a.Get(key)
		right, ok := b.Get(key)

		switch {
		case !ok:
			diffs.Set(key, left)
		case left.IsComposite():
			if !right.IsComposite() {
				diffs.Set(key, left)
				continue
			}
			if child := Asymmetric(left.Map(), right.Map()); child.Len() > 0 {
				diffs.Set(key, document.Composite(child))
			}
		default:
			if !LooseEqual(left, right) {
				diffs.Set(key, left)
			}
		}
	}

	return diffs
}

// LooseEqual compares two values permissively:
//
//   - a bool and a string are equal when the string's truthiness matches the
//     bool ("" and "0" are false, any other string is true), so true equals
//     "true" and also "false";
//   - two numeric strings are equal when their numbers are ("1.0" == "1");
//   - other strings compare byte-wise;
//   - a scalar never equals a composite;
//   - two composites are equal when neither has entries the other lacks.
func LooseEqual(a, b document.Value) bool {
	if a.IsComposite() || b.IsComposite() {
		if !a.IsComposite() || !b.IsComposite() {
			return false
		}
		return Asymmetric(a.Map(), b.Map()).Len() == 0 &&
			Asymmetric(b.Map(), a.Map()).Len() == 0
	}

	ab, aIsBool := a.Boolean()
	bb, bIsBool := b.Boolean()
	switch {
	case aIsBool && bIsBool:
		return ab == bb
	case aIsBool:
		s, _ := b.Str()
		return ab == truthy(s)
	case bIsBool:
		s, _ := a.Str()
		return bb == truthy(s)
	}

	as, _ := a.Str()
	bs, _ := b.Str()
	if ai, ok := integer(as); ok {
		if bi, ok := integer(bs); ok {
			return ai == bi
		}
	}
	if an, ok := numeric(as); ok {
		if bn, ok := numeric(bs); ok {
			return an == bn
		}
	}
	return as == bs
}

func truthy(s string) bool {
	return s != "" && s != "0"
}

// integer parses s as a base-10 integer, after leading whitespace. Integers
// are compared exactly so that values beyond float64 precision stay distinct.
func integer(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if strings.Contains(s, "_") {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// numeric parses s as a number when the whole string, after leading
// whitespace, is decimal or floating-point syntax.
func numeric(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if s == "" {
		return 0, false
	}
	// ParseFloat also accepts hex floats, underscores, inf and nan.
	if strings.ContainsAny(strings.ToLower(s), "xpn_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
