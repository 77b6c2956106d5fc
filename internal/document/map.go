package document

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered mapping from string keys to Values.
type Map struct {
	entries *orderedmap.OrderedMap[string, Value]
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{entries: orderedmap.New[string, Value]()}
}

// Set stores v under key. A new key is appended to the iteration order; an
// existing key keeps its position.
func (m *Map) Set(key string, v Value) {
	m.entries.Set(key, v)
}

// Get returns the Value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	return m.entries.Get(key)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in iteration order. The returned slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.Len()
}

// Equal reports whether m and o hold equal Values under the same keys in the
// same order.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	a, b := m.entries.Oldest(), o.entries.Oldest()
	for ; a != nil && b != nil; a, b = a.Next(), b.Next() {
		if a.Key != b.Key || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}

// Sorted returns a copy of m with keys sorted lexicographically at every
// nesting level.
func (m *Map) Sorted() *Map {
	keys := m.Keys()
	sort.Strings(keys)

	sorted := NewMap()
	for _, k := range keys {
		v, _ := m.Get(k)
		if v.IsComposite() {
			v = Composite(v.m.Sorted())
		}
		sorted.Set(k, v)
	}
	return sorted
}
