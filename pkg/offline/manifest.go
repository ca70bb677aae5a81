// Package offline is a cache-first wrapper for the static page: a versioned
// cache namespace pre-populated from a fixed URL list, consulted before the
// network for every fetch.
package offline

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultCacheName is the versioned namespace the page's assets live under.
const DefaultCacheName = "hufspace-cache-v2"

// Manifest names a cache and the resources installed into it.
type Manifest struct {
	CacheName string   `yaml:"cache_name" json:"cache_name"`
	URLs      []string `yaml:"urls" json:"urls"`
}

// DefaultManifest returns the page's precache list.
func DefaultManifest() Manifest {
	return Manifest{
		CacheName: DefaultCacheName,
		URLs: []string{
			"/",
			"/static/style.css",
			"/static/Symbol.png",
			"/static/HUFS.png",
			"/static/manifest-v2.json",
		},
	}
}

// Validate checks that the manifest has a name and only path URLs.
func (m Manifest) Validate() error {
	if strings.TrimSpace(m.CacheName) == "" {
		return errors.New("manifest has no cache name")
	}
	if len(m.URLs) == 0 {
		return errors.Errorf("manifest %s lists no urls", m.CacheName)
	}
	seen := make(map[string]bool, len(m.URLs))
	for _, u := range m.URLs {
		if !strings.HasPrefix(u, "/") {
			return errors.Errorf("manifest %s: url %q must be an absolute path", m.CacheName, u)
		}
		key := normalizeKey(u)
		if seen[key] {
			return errors.Errorf("manifest %s: duplicate url %q", m.CacheName, u)
		}
		seen[key] = true
	}
	return nil
}

// LoadManifest reads a YAML manifest. Missing fields fall back to the default
// manifest's values.
func LoadManifest(path string) (Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return Manifest{}, errors.Wrapf(err, "failed to parse manifest %s", path)
	}

	def := DefaultManifest()
	if m.CacheName == "" {
		m.CacheName = def.CacheName
	}
	if len(m.URLs) == 0 {
		m.URLs = def.URLs
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
