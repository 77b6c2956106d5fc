package diff

import (
	"fmt"

	"github.com/capdb/capdiff/internal/document"
)

// EventKind classifies a single difference.
type EventKind int

const (
	SectionOnlyLeft EventKind = iota
	SectionOnlyRight
	PropertyOnlyLeft
	PropertyOnlyRight
	PropertyChanged
)

func (k EventKind) String() string {
	switch k {
	case SectionOnlyLeft:
		return "SectionOnlyLeft"
	case SectionOnlyRight:
		return "SectionOnlyRight"
	case PropertyOnlyLeft:
		return "PropertyOnlyLeft"
	case PropertyOnlyRight:
		return "PropertyOnlyRight"
	case PropertyChanged:
		return "PropertyChanged"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one difference between the left and right documents. Property,
// Left and Right are unset for section events; Right is only set for
// PropertyChanged, and PropertyOnlyRight carries its value in Right.
type Event struct {
	Kind     EventKind
	Section  string
	Property string
	Left     document.Value
	Right    document.Value
}

// Report is the ordered outcome of a comparison. Events of one section are
// contiguous.
type Report struct {
	Events []Event
}

// Count returns the number of differences found.
func (r Report) Count() int {
	return len(r.Events)
}

// Empty reports whether the documents were found equivalent.
func (r Report) Empty() bool {
	return len(r.Events) == 0
}
