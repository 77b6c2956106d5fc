package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BaselineFile is the name of the synthesized file inside its cache
// directory.
const BaselineFile = "full_capabilities.ini"

// DefaultVersion is stamped on collections whose resources do not pin a
// version.
const DefaultVersion = "temporary-version"

// DefaultCacheRoot returns the directory below which baselines are written
// when no cache root is configured.
func DefaultCacheRoot() string {
	return filepath.Join(os.TempDir(), "capdiff")
}

// Synthesizer builds a baseline document from a resource directory and
// writes it to a fresh cache directory. Written files are never removed.
type Synthesizer struct {
	ResourceDir string
	// CacheRoot defaults to DefaultCacheRoot().
	CacheRoot string
	// Version defaults to DefaultVersion.
	Version string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Synthesize writes the baseline and returns its path. Each call uses a new
// directory named after the current time and a random UUID, so concurrent
// invocations do not share files.
func (s *Synthesizer) Synthesize() (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	version := s.Version
	if version == "" {
		version = DefaultVersion
	}
	root := s.CacheRoot
	if root == "" {
		root = DefaultCacheRoot()
	}

	collection, err := CreateCollection(version, s.ResourceDir)
	if err != nil {
		return "", err
	}
	collection.GeneratedAt = now()

	doc, err := Resolve(collection)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(root, fmt.Sprintf("%d-%s", collection.GeneratedAt.UnixNano(), uuid.NewString()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fail("write", err)
	}

	path := filepath.Join(dir, BaselineFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fail("write", err)
	}

	meta := Metadata{
		Version:  collection.Version,
		Released: collection.GeneratedAt,
		Comments: DefaultComments(collection.GeneratedAt),
	}
	if err := Render(f, doc, meta); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fail("write", err)
	}

	return path, nil
}
