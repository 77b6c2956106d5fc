package baseline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.sr.ht/~spc/go-ini"
	"github.com/goccy/go-json"
)

// ManifestFile is the optional file in a resource directory that pins the
// collection version.
const ManifestFile = "version.ini"

// Division is one resource file: a group of related user agents.
type Division struct {
	Name       string      `json:"division"`
	SortIndex  int         `json:"sortIndex"`
	UserAgents []UserAgent `json:"userAgents"`

	// File is the path the division was read from.
	File string `json:"-"`
}

// UserAgent defines a section and the sections derived from it.
type UserAgent struct {
	UserAgent  string                 `json:"userAgent"`
	Properties map[string]interface{} `json:"properties"`
	Children   []Child                `json:"children"`
}

// Child is a section whose Parent is the enclosing UserAgent.
type Child struct {
	Match      string                 `json:"match"`
	Properties map[string]interface{} `json:"properties"`
}

// Collection is the complete set of divisions loaded from a resource
// directory.
type Collection struct {
	Version     string
	GeneratedAt time.Time
	Divisions   []Division
}

type manifest struct {
	Version string `ini:"version"`
}

// CreateCollection loads every *.json division below dir. Divisions are
// ordered by SortIndex, then by path. version is used unless the directory
// carries a version.ini with a non-empty version key.
func CreateCollection(version, dir string) (*Collection, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fail("load resources", err)
	}
	if !info.IsDir() {
		return nil, fail("load resources", fmt.Errorf("%s is not a directory", dir))
	}

	pinned, err := readManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fail("load resources", err)
	}
	if pinned != "" {
		version = pinned
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fail("load resources", err)
	}
	if len(paths) == 0 {
		return nil, fail("load resources", fmt.Errorf("no division files found in %s", dir))
	}

	collection := &Collection{
		Version:     version,
		GeneratedAt: time.Now().UTC(),
	}
	for _, path := range paths {
		division, err := readDivision(path)
		if err != nil {
			return nil, fail("load resources", err)
		}
		collection.Divisions = append(collection.Divisions, division)
	}

	sort.SliceStable(collection.Divisions, func(i, j int) bool {
		return collection.Divisions[i].SortIndex < collection.Divisions[j].SortIndex
	})

	return collection, nil
}

func readManifest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m manifest
	if err := ini.Unmarshal(normalizeManifest(data), &m); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return strings.TrimSpace(m.Version), nil
}

// normalizeManifest trims the blanks around each key and value and drops a
// pair of surrounding double quotes from values, so "version = 6001" and
// `version="6001"` decode like "version=6001".
func normalizeManifest(data []byte) []byte {
	var b strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if key, value, ok := strings.Cut(line, "="); ok && !strings.HasPrefix(line, "[") {
			value = strings.TrimSpace(value)
			if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
				value = value[1 : len(value)-1]
			}
			line = strings.TrimSpace(key) + "=" + value
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func readDivision(path string) (Division, error) {
	var division Division

	data, err := os.ReadFile(path)
	if err != nil {
		return division, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &division); err != nil {
		return division, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	division.File = path

	return division, nil
}
