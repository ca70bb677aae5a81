package offline

import (
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"
)

// Entry is a stored response.
type Entry struct {
	URL      string
	Status   int
	Header   http.Header
	Body     []byte
	StoredAt time.Time
}

func (e *Entry) clone() *Entry {
	c := *e
	c.Header = e.Header.Clone()
	c.Body = append([]byte(nil), e.Body...)
	return &c
}

// Cache is one named cache of responses keyed by request URL.
type Cache struct {
	name    string
	mu      sync.RWMutex
	entries map[string]*Entry
}

func newCache(name string) *Cache {
	return &Cache{name: name, entries: make(map[string]*Entry)}
}

// Name returns the cache's namespace.
func (c *Cache) Name() string {
	return c.name
}

// Match returns a copy of the entry stored for rawURL.
func (c *Cache) Match(rawURL string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[normalizeKey(rawURL)]
	if !ok {
		return nil, false
	}
	return e.clone(), true
}

// Put stores e under its URL, replacing any previous entry.
func (c *Cache) Put(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[normalizeKey(e.URL)] = e.clone()
}

// putAll replaces the entries for every URL in es in one step.
func (c *Cache) putAll(es []*Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range es {
		c.entries[normalizeKey(e.URL)] = e.clone()
	}
}

// Delete removes the entry for rawURL and reports whether one existed.
func (c *Cache) Delete(rawURL string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := normalizeKey(rawURL)
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Keys returns the stored URLs in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Storage holds every named cache.
type Storage struct {
	mu     sync.RWMutex
	caches map[string]*Cache
	order  []string
}

// NewStorage returns empty storage.
func NewStorage() *Storage {
	return &Storage{caches: make(map[string]*Cache)}
}

// Open returns the named cache, creating it if needed.
func (s *Storage) Open(name string) *Cache {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.caches[name]; ok {
		return c
	}
	c := newCache(name)
	s.caches[name] = c
	s.order = append(s.order, name)
	return c
}

// Has reports whether the named cache exists.
func (s *Storage) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.caches[name]
	return ok
}

// Delete drops the named cache and reports whether it existed.
func (s *Storage) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.caches[name]; !ok {
		return false
	}
	delete(s.caches, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns cache names in creation order.
func (s *Storage) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Match searches every cache, oldest first, for rawURL.
func (s *Storage) Match(rawURL string) (*Entry, bool) {
	s.mu.RLock()
	caches := make([]*Cache, 0, len(s.order))
	for _, n := range s.order {
		caches = append(caches, s.caches[n])
	}
	s.mu.RUnlock()

	for _, c := range caches {
		if e, ok := c.Match(rawURL); ok {
			return e, true
		}
	}
	return nil, false
}

// normalizeKey reduces a URL to path and query, dropping scheme, host and
// fragment. Unparseable input is used as-is.
func normalizeKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	key := u.EscapedPath()
	if key == "" {
		key = "/"
	}
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key
}
