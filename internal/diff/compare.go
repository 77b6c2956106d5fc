package diff

import "github.com/capdb/capdiff/internal/document"

// Compare diffs left against right in both directions and merges the two
// asymmetric results into a single Report. Every section is visited once: a
// section handled while walking the left-to-right diff is skipped when
// walking the right-to-left one.
func Compare(left, right *document.Map) Report {
	ltr := Asymmetric(left, right)
	rtl := Asymmetric(right, left)

	b := &builder{}
	visited := make(map[string]bool, ltr.Len())

	for _, section := range ltr.Keys() {
		props, _ := ltr.Get(section)
		if full, ok := right.Get(section); ok && full.IsComposite() && props.IsComposite() {
			rightProps, _ := rtl.Get(section)
			b.compareSection(section, props.Map(), rightProps.Map(), full.Map())
		} else {
			b.add(Event{Kind: SectionOnlyLeft, Section: section})
		}
		visited[section] = true
	}

	for _, section := range rtl.Keys() {
		if visited[section] {
			continue
		}

		props, _ := rtl.Get(section)
		if full, ok := left.Get(section); ok && full.IsComposite() {
			leftProps, _ := ltr.Get(section)
			rightFull, _ := right.Get(section)
			b.compareSection(section, leftProps.Map(), props.Map(), rightFull.Map())
		} else {
			b.add(Event{Kind: SectionOnlyRight, Section: section})
		}
	}

	return Report{Events: b.events}
}

type builder struct {
	events []Event
}

func (b *builder) add(e Event) {
	b.events = append(b.events, e)
}

// compareSection triages the properties of a section present on both sides.
// leftDiff and rightDiff may be nil; rightFull supplies the current right
// hand value of properties that changed.
func (b *builder) compareSection(section string, leftDiff, rightDiff, rightFull *document.Map) {
	seen := make(map[string]bool, leftDiff.Len())

	for _, prop := range leftDiff.Keys() {
		value, _ := leftDiff.Get(prop)
		if current, ok := rightFull.Get(prop); ok {
			b.add(Event{Kind: PropertyChanged, Section: section, Property: prop, Left: value, Right: current})
		} else {
			b.add(Event{Kind: PropertyOnlyLeft, Section: section, Property: prop, Left: value})
		}
		seen[prop] = true
	}

	for _, prop := range rightDiff.Keys() {
		if seen[prop] {
			continue
		}
		value, _ := rightDiff.Get(prop)
		b.add(Event{Kind: PropertyOnlyRight, Section: section, Property: prop, Right: value})
	}
}
