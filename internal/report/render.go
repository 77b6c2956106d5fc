package report

import (
	"fmt"

	"github.com/capdb/capdiff/internal/diff"
	"github.com/capdb/capdiff/internal/l10n"
)

// Render writes r to sink as a human-readable transcript: a header, one
// block per section with one line per property difference, and a summary
// line with the total count. An empty report produces a single line.
func Render(sink Sink, r diff.Report) {
	if r.Empty() {
		sink.Emit(l10n.T("No differences found, hooray!"))
		return
	}

	sink.Emit(l10n.T("The following differences have been found:"))

	current := ""
	for i, e := range r.Events {
		if i == 0 || e.Section != current {
			sink.Emit(e.Section)
			current = e.Section
		}
		sink.Emit(eventLine(e))
	}

	sink.Emit("")
	sink.Emit(Summary(r.Count()))
}

// Summary returns the closing sentence for count differences.
func Summary(count int) string {
	return l10n.TN(
		"There was %d difference found in the comparison.",
		"There were %d differences found in the comparison.",
		count, count)
}

func eventLine(e diff.Event) string {
	switch e.Kind {
	case diff.SectionOnlyLeft:
		return l10n.T("Whole section only on LEFT")
	case diff.SectionOnlyRight:
		return l10n.T("Whole section only on RIGHT")
	case diff.PropertyOnlyLeft:
		return l10n.T("\"%s\" is only on the LEFT", e.Property)
	case diff.PropertyOnlyRight:
		return l10n.T("\"%s\" is only on the RIGHT", e.Property)
	case diff.PropertyChanged:
		return l10n.T("\"%s\" differs (L / R): %s / %s", e.Property, e.Left, e.Right)
	default:
		return fmt.Sprintf("unknown difference %v in %s", e.Kind, e.Section)
	}
}
