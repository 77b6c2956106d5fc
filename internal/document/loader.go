package document

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// loadOptions is shared by the loader and the baseline renderer so that a
// rendered file reads back into the same document.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
	IgnoreContinuation:  true,
	KeyValueDelimiters:  "=",
}

// LoadOptions returns the ini options used to parse capability documents.
func LoadOptions() ini.LoadOptions {
	return loadOptions
}

type loaderConfig struct {
	sort bool
}

// LoadOption customizes Load and Parse.
type LoadOption func(*loaderConfig)

// WithSort sorts sections and properties by name after parsing.
func WithSort() LoadOption {
	return func(c *loaderConfig) {
		c.sort = true
	}
}

// Load reads the capability document stored at path.
func Load(path string, opts ...LoadOption) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return doc, nil
}

// Parse decodes INI-formatted data into a document. Every section becomes a
// composite Value; the unnamed default section is kept only when it carries
// keys.
func Parse(data []byte, opts ...LoadOption) (*Map, error) {
	var cfg loaderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, err
	}

	doc := NewMap()
	for _, sec := range file.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}

		props := NewMap()
		for _, key := range keys {
			props.Set(key.Name(), scalar(key.Value()))
		}
		doc.Set(sec.Name(), Composite(props))
	}

	if cfg.sort {
		doc = doc.Sorted()
	}

	return doc, nil
}

// scalar converts a raw property value to a Value. Only the exact literals
// "true" and "false" become booleans.
func scalar(raw string) Value {
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	default:
		return String(raw)
	}
}
