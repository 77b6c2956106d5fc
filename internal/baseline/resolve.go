package baseline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/capdb/capdiff/internal/document"
)

// ParentProperty links a section to the section it inherits from.
const ParentProperty = "Parent"

// propertyOrder lists well-known properties in output order. Properties not
// listed follow in alphabetical order.
var propertyOrder = []string{
	ParentProperty,
	"Comment",
	"Browser",
	"Browser_Type",
	"Browser_Bits",
	"Browser_Maker",
	"Browser_Modus",
	"Version",
	"MajorVer",
	"MinorVer",
	"Platform",
	"Platform_Version",
	"Platform_Description",
	"Platform_Bits",
	"Platform_Maker",
	"Alpha",
	"Beta",
	"Win16",
	"Win32",
	"Win64",
	"Frames",
	"IFrames",
	"Tables",
	"Cookies",
	"BackgroundSounds",
	"JavaScript",
	"VBScript",
	"JavaApplets",
	"ActiveXControls",
	"isMobileDevice",
	"isTablet",
	"isSyndicationReader",
	"Crawler",
	"isFake",
	"isAnonymized",
	"isModified",
	"CssVersion",
	"AolVersion",
	"Device_Name",
	"Device_Maker",
	"Device_Type",
	"Device_Pointing_Method",
	"Device_Code_Name",
	"Device_Brand_Name",
	"RenderingEngine_Name",
	"RenderingEngine_Version",
	"RenderingEngine_Description",
	"RenderingEngine_Maker",
}

var propertyRank = func() map[string]int {
	rank := make(map[string]int, len(propertyOrder))
	for i, p := range propertyOrder {
		rank[p] = i
	}
	return rank
}()

type rawSection struct {
	name  string
	props map[string]document.Value
}

// Resolve turns a collection into a generation-ready document. Every user
// agent and every child becomes a section, in collection order, carrying
// the full set of properties inherited through its Parent chain.
func Resolve(c *Collection) (*document.Map, error) {
	var order []string
	raw := make(map[string]rawSection)

	add := func(name string, props map[string]interface{}, parent string) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("section without a name")
		}
		if _, ok := raw[name]; ok {
			return fmt.Errorf("duplicate section %q", name)
		}
		section := rawSection{name: name, props: make(map[string]document.Value, len(props)+1)}
		for k, v := range props {
			value, err := scalarValue(v)
			if err != nil {
				return fmt.Errorf("section %q property %q: %w", name, k, err)
			}
			section.props[k] = value
		}
		if parent != "" {
			section.props[ParentProperty] = document.String(parent)
		}
		raw[name] = section
		order = append(order, name)
		return nil
	}

	for _, division := range c.Divisions {
		for _, ua := range division.UserAgents {
			if err := add(ua.UserAgent, ua.Properties, ""); err != nil {
				return nil, fail("resolve", fmt.Errorf("%s: %w", division.File, err))
			}
			for _, child := range ua.Children {
				if err := add(child.Match, child.Properties, ua.UserAgent); err != nil {
					return nil, fail("resolve", fmt.Errorf("%s: %w", division.File, err))
				}
			}
		}
	}

	r := &resolver{raw: raw, done: make(map[string]map[string]document.Value), active: make(map[string]bool)}
	doc := document.NewMap()
	for _, name := range order {
		props, err := r.resolve(name)
		if err != nil {
			return nil, fail("resolve", err)
		}
		doc.Set(name, document.Composite(ordered(props)))
	}

	return doc, nil
}

type resolver struct {
	raw    map[string]rawSection
	done   map[string]map[string]document.Value
	active map[string]bool
}

func (r *resolver) resolve(name string) (map[string]document.Value, error) {
	if props, ok := r.done[name]; ok {
		return props, nil
	}
	if r.active[name] {
		return nil, fmt.Errorf("section %q inherits from itself", name)
	}
	section, ok := r.raw[name]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", name)
	}

	r.active[name] = true
	defer delete(r.active, name)

	props := make(map[string]document.Value)
	if parent, ok := section.props[ParentProperty]; ok {
		parentName, isString := parent.Str()
		if !isString {
			return nil, fmt.Errorf("section %q has a non-string %s", name, ParentProperty)
		}
		inherited, err := r.resolve(parentName)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
		for k, v := range inherited {
			props[k] = v
		}
	}
	for k, v := range section.props {
		props[k] = v
	}

	r.done[name] = props
	return props, nil
}

func ordered(props map[string]document.Value) *document.Map {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iKnown := propertyRank[keys[i]]
		rj, jKnown := propertyRank[keys[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return keys[i] < keys[j]
		}
	})

	m := document.NewMap()
	for _, k := range keys {
		m.Set(k, props[k])
	}
	return m
}

func scalarValue(v interface{}) (document.Value, error) {
	switch v := v.(type) {
	case string:
		return document.String(v), nil
	case bool:
		return document.Bool(v), nil
	case float64:
		return document.String(strconv.FormatFloat(v, 'f', -1, 64)), nil
	default:
		return document.Value{}, fmt.Errorf("unsupported value of type %T", v)
	}
}
