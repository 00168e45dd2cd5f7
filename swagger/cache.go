package swagger

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Entry is a built document with its serialized forms. Entries are never
// modified after they are cached.
type Entry struct {
	Scope    string
	Document *Document
	JSON     []byte

	yamlOnce sync.Once
	yaml     []byte
	yamlErr  error

	v3Once sync.Once
	v3     []byte
	v3Err  error
}

// YAML returns the YAML rendering, computed on first use.
func (e *Entry) YAML() ([]byte, error) {
	e.yamlOnce.Do(func() {
		e.yaml, e.yamlErr = jsonToYAML(e.JSON)
	})
	return e.yaml, e.yamlErr
}

// OpenAPI3 returns the OpenAPI 3.0 rendering, computed on first use.
func (e *Entry) OpenAPI3() ([]byte, error) {
	e.v3Once.Do(func() {
		e.v3, e.v3Err = convertV3(e.JSON)
	})
	return e.v3, e.v3Err
}

// Cache holds one document per scope for the life of the process. Each
// scope is built at most once even under concurrent requests; a failed
// build is not cached, so the next request retries it.
type Cache struct {
	builder *Builder
	group   singleflight.Group

	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewCache creates a cache building documents with b.
func NewCache(b *Builder) *Cache {
	return &Cache{
		builder: b,
		entries: make(map[string]*Entry),
	}
}

// Builder returns the builder used for cache misses.
func (c *Cache) Builder() *Builder {
	return c.builder
}

// Get returns the entry for scope, building it on first use.
func (c *Cache) Get(scope string) (*Entry, error) {
	if e, ok := c.Lookup(scope); ok {
		return e, nil
	}

	v, err, _ := c.group.Do(scope, func() (any, error) {
		if e, ok := c.Lookup(scope); ok {
			return e, nil
		}

		doc, err := c.builder.Build(scope)
		if err != nil {
			return nil, err
		}
		data, err := Serialize(doc)
		if err != nil {
			return nil, err
		}

		e := &Entry{Scope: scope, Document: doc, JSON: data}

		c.mu.Lock()
		c.entries[scope] = e
		c.mu.Unlock()

		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

// Lookup returns the cached entry for scope without building it.
func (c *Cache) Lookup(scope string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[scope]
	return e, ok
}

// Keys returns the cached scopes in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Closest returns the cached scope best matching path, or "" when the
// cache is empty. See ClosestKey.
func (c *Cache) Closest(path string) string {
	return ClosestKey(c.Keys(), path)
}

// ClosestKey picks the key best matching path:
//   - a key equal to path
//   - else the longest key that is a path segment prefix of path
//   - else the key sharing the longest common prefix with path; ties go to
//     the shortest key, then to the lexically smallest
//
// It returns "" when keys is empty.
func ClosestKey(keys []string, path string) string {
	if len(keys) == 0 {
		return ""
	}

	sorted := append([]string(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) < len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	for _, k := range sorted {
		if k == path {
			return k
		}
	}

	segment := ""
	found := false
	for _, k := range sorted {
		if segmentPrefix(k, path) && (!found || len(k) > len(segment)) {
			segment, found = k, true
		}
	}
	if found {
		return segment
	}

	best, bestLen := sorted[0], -1
	for _, k := range sorted {
		if n := commonPrefixLen(k, path); n > bestLen {
			best, bestLen = k, n
		}
	}
	return best
}

// segmentPrefix reports whether key covers path on a segment boundary:
// "/docs" covers "/docs/index.html" but not "/docsets".
func segmentPrefix(key, path string) bool {
	trimmed := strings.TrimRight(key, "/")
	if trimmed == "" {
		return strings.HasPrefix(path, "/") || key == ""
	}
	if !strings.HasPrefix(path, trimmed) {
		return false
	}
	rest := path[len(trimmed):]
	return rest == "" || rest[0] == '/'
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
