// Package diff compares two capability documents structurally.
//
// Asymmetric computes the one-directional difference "what A has that B
// lacks or contradicts". Compare runs it in both directions and triages the
// results into a Report: whole sections present on one side only, properties
// present on one side only, and properties whose values differ. Each event
// counts as exactly one difference.
//
// Scalar values are compared with LooseEqual, which treats a
// boolean and its string forms as equal and compares numeric strings by
// value. The comparison never sorts; ordering is the loader's concern.
package diff
