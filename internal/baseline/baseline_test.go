package baseline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/capdb/capdiff/internal/diff"
	"github.com/capdb/capdiff/internal/document"
)

const defaultsDivision = `{
  "division": "DefaultProperties",
  "sortIndex": 0,
  "userAgents": [
    {
      "userAgent": "DefaultProperties",
      "properties": {
        "Comment": "DefaultProperties",
        "Browser": "DefaultProperties",
        "Version": "0.0",
        "isMobileDevice": false,
        "Frames": false
      }
    }
  ]
}`

const chromeDivision = `{
  "division": "Chrome 1.0",
  "sortIndex": 10,
  "userAgents": [
    {
      "userAgent": "Chrome 1.0",
      "properties": {
        "Parent": "DefaultProperties",
        "Browser": "Chrome",
        "Version": "1.0",
        "Frames": true,
        "CssVersion": 3
      },
      "children": [
        {
          "match": "Mozilla/5.0 (*Windows NT 10.0*) Chrome/1.0*",
          "properties": {"Platform": "Win10", "Zeta": "last"}
        }
      ]
    }
  ]
}`

func writeResources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return dir
}

func assertGenerationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got none")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Errorf("expected a *GenerationError, got %T: %v", err, err)
	}
}

func TestCreateCollection(t *testing.T) {
	dir := writeResources(t, map[string]string{
		"browsers/chrome.json": chromeDivision,
		"core/defaults.json":   defaultsDivision,
		"README.md":            "not a division",
	})

	collection, err := CreateCollection(DefaultVersion, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, d := range collection.Divisions {
		names = append(names, d.Name)
	}
	if diff := cmp.Diff([]string{"DefaultProperties", "Chrome 1.0"}, names); diff != "" {
		t.Errorf("division order mismatch (-want +got):\n%s", diff)
	}
	if collection.Version != DefaultVersion {
		t.Errorf("expected version %q, got %q", DefaultVersion, collection.Version)
	}
	if collection.GeneratedAt.IsZero() {
		t.Error("expected a generation time")
	}
}

func TestCreateCollection_Manifest(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{name: "spaced", manifest: "version = 6001\n"},
		{name: "compact", manifest: "version=6001\n"},
		{name: "quoted", manifest: "version = \"6001\"\n"},
		{name: "indented", manifest: "  version  =  6001  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeResources(t, map[string]string{
				"defaults.json": defaultsDivision,
				ManifestFile:    tt.manifest,
			})

			collection, err := CreateCollection(DefaultVersion, dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if collection.Version != "6001" {
				t.Errorf("expected version 6001, got %q", collection.Version)
			}
		})
	}
}

func TestCreateCollection_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing")
			},
		},
		{
			name: "not a directory",
			setup: func(t *testing.T) string {
				dir := writeResources(t, map[string]string{"file.json": defaultsDivision})
				return filepath.Join(dir, "file.json")
			},
		},
		{
			name: "no division files",
			setup: func(t *testing.T) string {
				return writeResources(t, map[string]string{"notes.txt": "empty"})
			},
		},
		{
			name: "malformed division",
			setup: func(t *testing.T) string {
				return writeResources(t, map[string]string{"broken.json": `{"division": `})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateCollection(DefaultVersion, tt.setup(t))
			assertGenerationError(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	dir := writeResources(t, map[string]string{
		"core/defaults.json":   defaultsDivision,
		"browsers/chrome.json": chromeDivision,
	})
	collection, err := CreateCollection(DefaultVersion, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := Resolve(collection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := "Mozilla/5.0 (*Windows NT 10.0*) Chrome/1.0*"
	if diff := cmp.Diff([]string{"DefaultProperties", "Chrome 1.0", child}, doc.Keys()); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}

	section, _ := doc.Get(child)
	props := section.Map()
	wantKeys := []string{
		"Parent", "Comment", "Browser", "Version", "Platform",
		"Frames", "isMobileDevice", "CssVersion", "Zeta",
	}
	if diff := cmp.Diff(wantKeys, props.Keys()); diff != "" {
		t.Errorf("property order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]string{
		"Parent":         "Chrome 1.0",
		"Comment":        "DefaultProperties",
		"Browser":        "Chrome",
		"Version":        "1.0",
		"Platform":       "Win10",
		"Frames":         "true",
		"isMobileDevice": "false",
		"CssVersion":     "3",
		"Zeta":           "last",
	}
	got := map[string]string{}
	for _, k := range props.Keys() {
		v, _ := props.Get(k)
		got[k] = v.String()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved properties mismatch (-want +got):\n%s", diff)
	}

	frames, _ := props.Get("Frames")
	if b, ok := frames.Boolean(); !ok || !b {
		t.Errorf("expected Frames to stay a boolean true, got %v", frames)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name      string
		divisions []Division
	}{
		{
			name: "unknown parent",
			divisions: []Division{{UserAgents: []UserAgent{
				{UserAgent: "Orphan", Properties: map[string]interface{}{"Parent": "Nobody"}},
			}}},
		},
		{
			name: "inheritance cycle",
			divisions: []Division{{UserAgents: []UserAgent{
				{UserAgent: "A", Properties: map[string]interface{}{"Parent": "B"}},
				{UserAgent: "B", Properties: map[string]interface{}{"Parent": "A"}},
			}}},
		},
		{
			name: "duplicate section",
			divisions: []Division{
				{UserAgents: []UserAgent{{UserAgent: "A"}}},
				{UserAgents: []UserAgent{{UserAgent: "A"}}},
			},
		},
		{
			name: "nested property value",
			divisions: []Division{{UserAgents: []UserAgent{
				{UserAgent: "A", Properties: map[string]interface{}{"Browser": map[string]interface{}{"x": "y"}}},
			}}},
		},
		{
			name: "empty section name",
			divisions: []Division{{UserAgents: []UserAgent{
				{UserAgent: " "},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(&Collection{Divisions: tt.divisions})
			assertGenerationError(t, err)
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	doc := document.NewMap()
	defaults := document.NewMap()
	defaults.Set("Comment", document.String("Default Browser"))
	defaults.Set("Browser", document.String("Default; Browser #1"))
	defaults.Set("isMobileDevice", document.Bool(false))
	defaults.Set("Empty", document.String(""))
	defaults.Set("Quoted", document.String(`"quoted"`))
	defaults.Set("TripleQuoted", document.String(`"""x"""`))
	defaults.Set("SingleQuoted", document.String(`'single'`))
	defaults.Set("Padded", document.String("  padded "))
	defaults.Set("Path", document.String(`C:\`))
	defaults.Set("AfterPath", document.String("kept"))
	doc.Set("DefaultProperties", document.Composite(defaults))
	chrome := document.NewMap()
	chrome.Set("Parent", document.String("DefaultProperties"))
	chrome.Set("Frames", document.Bool(true))
	doc.Set("Mozilla/5.0 (compatible; MSIE 9.0; *Windows NT 6.1*)*", document.Composite(chrome))

	released := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := Render(&buf, doc, Metadata{
		Version:  "6001",
		Released: released,
		Comments: DefaultComments(released),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "Created on Saturday, October 17, 2026 at 09:30 AM UTC") {
		t.Errorf("expected the creation date in the header, got:\n%s", buf.String())
	}

	loaded, err := document.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("failed to parse rendered output: %v", err)
	}

	version, ok := loaded.Get(VersionSection)
	if !ok {
		t.Fatalf("expected a %s section, got %v", VersionSection, loaded.Keys())
	}
	v, _ := version.Map().Get("Version")
	if s, _ := v.Str(); s != "6001" {
		t.Errorf("expected Version=6001, got %v", v)
	}
	r, _ := version.Map().Get("Released")
	if s, _ := r.Str(); s != released.Format(time.RFC1123Z) {
		t.Errorf("expected Released=%s, got %v", released.Format(time.RFC1123Z), r)
	}

	expected := document.NewMap()
	expected.Set(VersionSection, version)
	for _, k := range doc.Keys() {
		section, _ := doc.Get(k)
		expected.Set(k, section)
	}
	if report := diff.Compare(expected, loaded); !report.Empty() {
		t.Errorf("round trip produced %d differences: %+v", report.Count(), report.Events)
	}
	if diff := cmp.Diff(expected.Keys(), loaded.Keys()); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  func() *document.Map
	}{
		{
			name: "reserved section name",
			doc: func() *document.Map {
				m := document.NewMap()
				m.Set(VersionSection, document.Composite(nil))
				return m
			},
		},
		{
			name: "scalar at top level",
			doc: func() *document.Map {
				m := document.NewMap()
				m.Set("flat", document.String("x"))
				return m
			},
		},
		{
			name: "value that cannot be quoted",
			doc: func() *document.Map {
				inner := document.NewMap()
				inner.Set("Comment", document.String(`"it's"`))
				m := document.NewMap()
				m.Set("Browser", document.Composite(inner))
				return m
			},
		},
		{
			name: "nested property",
			doc: func() *document.Map {
				inner := document.NewMap()
				inner.Set("deep", document.Composite(nil))
				m := document.NewMap()
				m.Set("Browser", document.Composite(inner))
				return m
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assertGenerationError(t, Render(&buf, tt.doc(), Metadata{}))
		})
	}
}

func TestSynthesizer(t *testing.T) {
	resources := writeResources(t, map[string]string{
		"core/defaults.json":   defaultsDivision,
		"browsers/chrome.json": chromeDivision,
	})
	cacheRoot := filepath.Join(t.TempDir(), "cache")
	fixed := time.Date(2026, time.October, 17, 9, 30, 0, 123, time.UTC)

	s := &Synthesizer{
		ResourceDir: resources,
		CacheRoot:   cacheRoot,
		Now:         func() time.Time { return fixed },
	}

	first, err := s.Synthesize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Synthesize()
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}

	if first == second {
		t.Errorf("expected distinct paths for runs at the same instant, got %s twice", first)
	}
	for _, path := range []string{first, second} {
		if filepath.Base(path) != BaselineFile {
			t.Errorf("expected file name %s, got %s", BaselineFile, path)
		}
		dir := filepath.Dir(path)
		if filepath.Dir(dir) != cacheRoot {
			t.Errorf("expected %s below %s", dir, cacheRoot)
		}
		if !strings.HasPrefix(filepath.Base(dir), "1792229400000000123-") {
			t.Errorf("expected a timestamp-qualified directory, got %s", filepath.Base(dir))
		}
	}

	loaded, err := document.Load(first)
	if err != nil {
		t.Fatalf("failed to load synthesized baseline: %v", err)
	}
	if diff := cmp.Diff(
		[]string{VersionSection, "DefaultProperties", "Chrome 1.0", "Mozilla/5.0 (*Windows NT 10.0*) Chrome/1.0*"},
		loaded.Keys(),
	); diff != "" {
		t.Errorf("synthesized sections mismatch (-want +got):\n%s", diff)
	}
	version, _ := loaded.Get(VersionSection)
	v, _ := version.Map().Get("Version")
	if s, _ := v.Str(); s != DefaultVersion {
		t.Errorf("expected Version=%s, got %v", DefaultVersion, v)
	}
}

func TestSynthesizer_MissingResources(t *testing.T) {
	s := &Synthesizer{
		ResourceDir: filepath.Join(t.TempDir(), "missing"),
		CacheRoot:   t.TempDir(),
	}
	_, err := s.Synthesize()
	assertGenerationError(t, err)
}
