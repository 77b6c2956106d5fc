package baseline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"github.com/capdb/capdiff/internal/document"
)

// VersionSection is the leading section recording collection metadata.
const VersionSection = "Capabilities_Version"

// Metadata annotates a rendered baseline.
type Metadata struct {
	Version  string
	Released time.Time
	// Comments are written as a header block, one comment line each.
	Comments []string
}

// DefaultComments returns the standard header for a baseline created at
// created.
func DefaultComments(created time.Time) []string {
	return []string{
		"Capability database baseline generated by capdiff",
		"Created on " + created.Format("Monday, January 2, 2006 at 03:04 PM MST"),
		"This file is a comparison reference and is not meant for distribution.",
		"Regenerate it by running capdiff diff without a right-hand file.",
	}
}

// Render writes doc as INI text that document.Parse reads back into an
// equivalent document, preceded by the version section.
func Render(w io.Writer, doc *document.Map, meta Metadata) error {
	file := ini.Empty(document.LoadOptions())

	version, err := file.NewSection(VersionSection)
	if err != nil {
		return fail("render", err)
	}
	var comments []string
	for _, c := range meta.Comments {
		if c = strings.TrimSpace(c); c != "" {
			comments = append(comments, c)
		}
	}
	version.Comment = strings.Join(comments, "\n")
	if _, err := version.NewKey("Version", meta.Version); err != nil {
		return fail("render", err)
	}
	if _, err := version.NewKey("Released", meta.Released.Format(time.RFC1123Z)); err != nil {
		return fail("render", err)
	}

	for _, name := range doc.Keys() {
		if name == VersionSection {
			return fail("render", fmt.Errorf("section name %q is reserved", name))
		}
		value, _ := doc.Get(name)
		if !value.IsComposite() {
			return fail("render", fmt.Errorf("top-level entry %q is not a section", name))
		}

		section, err := file.NewSection(name)
		if err != nil {
			return fail("render", err)
		}
		props := value.Map()
		for _, key := range props.Keys() {
			v, _ := props.Get(key)
			if v.IsComposite() {
				return fail("render", fmt.Errorf("section %q property %q is nested", name, key))
			}
			raw, err := quoteValue(v.String())
			if err != nil {
				return fail("render", fmt.Errorf("section %q property %q: %w", name, key, err))
			}
			if _, err := section.NewKey(key, raw); err != nil {
				return fail("render", fmt.Errorf("section %q: %w", name, err))
			}
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fail("render", err)
	}
	return nil
}

// quoteValue wraps v in single or double quotes when the loader would
// otherwise strip quotes or blanks from it. Values holding a newline or a
// backtick are left alone; the ini writer puts those in triple quotes.
func quoteValue(v string) (string, error) {
	if strings.ContainsAny(v, "\n`") {
		return v, nil
	}
	if !surrounded(v, '"') && !surrounded(v, '\'') &&
		!strings.HasPrefix(v, `"""`) && strings.TrimSpace(v) == v {
		return v, nil
	}
	switch {
	case !strings.ContainsRune(v, '\''):
		return "'" + v + "'", nil
	case !strings.ContainsRune(v, '"'):
		return `"` + v + `"`, nil
	default:
		return "", fmt.Errorf("value %q cannot be quoted", v)
	}
}

// surrounded reports whether s starts and ends with q and holds no other q.
func surrounded(s string, q byte) bool {
	return len(s) >= 2 && s[0] == q && s[len(s)-1] == q &&
		strings.IndexByte(s[1:], q) == len(s)-2
}
