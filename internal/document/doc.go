// Package document models capability databases as nested, insertion-ordered
// mappings.
//
// A document is a *Map whose values are sections; a section is a *Map whose
// values are scalars. Values are a tagged union:
//
//	String("1.0")      // scalar string
//	Bool(true)         // scalar boolean
//	Composite(section) // nested map
//
// Callers dispatch on Value.Kind rather than on dynamic types. The model
// does not limit nesting depth.
//
// Documents are read from INI text with Load or Parse:
//
//	doc, err := document.Load("full_capabilities.ini", document.WithSort())
package document
